package filters

import (
	"context"

	bybit "github.com/hirokisan/bybit/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/crossbot/internal/domain"
)

// BybitFilterProvider fetches symbol filters from Bybit instruments info.
type BybitFilterProvider struct {
	client *bybit.Client
}

// NewBybitFilterProvider creates a new Bybit filter provider.
func NewBybitFilterProvider(client *bybit.Client) *BybitFilterProvider {
	return &BybitFilterProvider{client: client}
}

// GetSymbolFilter returns the quantity step for the pair. Bybit spot reports
// the step as the instrument's base precision.
func (f *BybitFilterProvider) GetSymbolFilter(_ context.Context, pair domain.Pair) (domain.SymbolFilter, error) {
	symbol := bybit.SymbolV5(pair.Symbol())

	res, err := f.client.V5().Market().GetInstrumentsInfo(bybit.V5GetInstrumentsInfoParam{
		Category: bybit.CategoryV5Spot,
		Symbol:   &symbol,
	})
	if err != nil {
		return domain.SymbolFilter{}, errors.Wrapf(err, "failed to fetch instruments info for %s", pair.String())
	}

	if res.Result.Spot == nil {
		return domain.SymbolFilter{}, errors.Errorf("no spot instrument info returned for %s", pair.Symbol())
	}

	for _, item := range res.Result.Spot.List {
		if string(item.Symbol) != pair.Symbol() {
			continue
		}

		step, err := decimal.NewFromString(item.LotSizeFilter.BasePrecision)
		if err != nil {
			return domain.SymbolFilter{}, errors.Wrapf(err, "failed to parse base precision %q", item.LotSizeFilter.BasePrecision)
		}

		return domain.SymbolFilter{StepSize: step}, nil
	}

	return domain.SymbolFilter{}, errors.Errorf("no instrument info reported for %s", pair.Symbol())
}
