// Package filters provides symbol trading filter lookups per exchange.
package filters

import (
	"context"

	"github.com/adshao/go-binance/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/crossbot/internal/domain"
)

// BinanceFilterProvider fetches symbol filters from Binance exchange info.
type BinanceFilterProvider struct {
	client *binance.Client
}

// NewBinanceFilterProvider creates a new Binance filter provider.
func NewBinanceFilterProvider(client *binance.Client) *BinanceFilterProvider {
	return &BinanceFilterProvider{client: client}
}

// GetSymbolFilter returns the LOT_SIZE step for the pair.
func (f *BinanceFilterProvider) GetSymbolFilter(ctx context.Context, pair domain.Pair) (domain.SymbolFilter, error) {
	info, err := f.client.NewExchangeInfoService().Symbols(pair.Symbol()).Do(ctx)
	if err != nil {
		return domain.SymbolFilter{}, errors.Wrapf(err, "failed to fetch exchange info for %s", pair.String())
	}

	for _, s := range info.Symbols {
		if s.Symbol != pair.Symbol() {
			continue
		}

		lot := s.LotSizeFilter()
		if lot == nil {
			break
		}

		step, err := decimal.NewFromString(lot.StepSize)
		if err != nil {
			return domain.SymbolFilter{}, errors.Wrapf(err, "failed to parse step size %q", lot.StepSize)
		}

		return domain.SymbolFilter{StepSize: step}, nil
	}

	return domain.SymbolFilter{}, errors.Errorf("no LOT_SIZE filter reported for %s", pair.Symbol())
}
