// Package trader provides market order submission and balance lookups per
// exchange. Order quantities are expected to be pre-quantized by the caller.
package trader

import (
	"context"

	"github.com/adshao/go-binance/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/crossbot/internal/domain"
)

type BinanceTrader struct {
	client *binance.Client
	pair   domain.Pair
}

func NewBinanceTrader(client *binance.Client, pair domain.Pair) *BinanceTrader {
	return &BinanceTrader{
		pair:   pair,
		client: client,
	}
}

func (t *BinanceTrader) Buy(ctx context.Context, quantity decimal.Decimal) error {
	_, err := t.client.NewCreateOrderService().Symbol(t.pair.Symbol()).
		Side(binance.SideTypeBuy).Type(binance.OrderTypeMarket).
		Quantity(quantity.String()).
		Do(ctx)
	return errors.Wrap(err, "failed to create buy order")
}

func (t *BinanceTrader) Sell(ctx context.Context, quantity decimal.Decimal) error {
	_, err := t.client.NewCreateOrderService().Symbol(t.pair.Symbol()).
		Side(binance.SideTypeSell).Type(binance.OrderTypeMarket).
		Quantity(quantity.String()).
		Do(ctx)
	return errors.Wrap(err, "failed to create sell order")
}

func (t *BinanceTrader) GetBalance(ctx context.Context, asset string) (domain.Balance, error) {
	account, err := t.client.NewGetAccountService().Do(ctx)
	if err != nil {
		return domain.Balance{}, errors.Wrap(err, "failed to get binance account balance")
	}

	for _, b := range account.Balances {
		if b.Asset != asset {
			continue
		}
		free, err := decimal.NewFromString(b.Free)
		if err != nil {
			return domain.Balance{}, errors.Wrapf(err, "failed to parse free balance for %s", asset)
		}
		locked, err := decimal.NewFromString(b.Locked)
		if err != nil {
			return domain.Balance{}, errors.Wrapf(err, "failed to parse locked balance for %s", asset)
		}
		return domain.Balance{Asset: asset, Free: free, Locked: locked}, nil
	}

	// the asset is simply absent from the account
	return domain.Balance{Asset: asset, Free: decimal.Zero, Locked: decimal.Zero}, nil
}
