package trader

import (
	"context"

	"github.com/hirokisan/bybit/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/crossbot/internal/domain"
)

type BybitTrader struct {
	client *bybit.Client
	pair   domain.Pair
}

func NewBybitTrader(client *bybit.Client, pair domain.Pair) *BybitTrader {
	return &BybitTrader{pair: pair, client: client}
}

func (t *BybitTrader) Buy(_ context.Context, quantity decimal.Decimal) error {
	_, err := t.client.V5().Order().CreateOrder(bybit.V5CreateOrderParam{
		Category:   "spot",
		Symbol:     bybit.SymbolV5(t.pair.Symbol()),
		Side:       bybit.SideBuy,
		OrderType:  bybit.OrderTypeMarket,
		Qty:        quantity.String(),
		IsLeverage: nil,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create buy order")
	}
	return nil
}

func (t *BybitTrader) Sell(_ context.Context, quantity decimal.Decimal) error {
	_, err := t.client.V5().Order().CreateOrder(bybit.V5CreateOrderParam{
		Category:   "spot",
		Symbol:     bybit.SymbolV5(t.pair.Symbol()),
		Side:       bybit.SideSell,
		OrderType:  bybit.OrderTypeMarket,
		Qty:        quantity.String(),
		IsLeverage: nil,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create sell order")
	}
	return nil
}

func (t *BybitTrader) GetBalance(_ context.Context, asset string) (domain.Balance, error) {
	res, err := t.client.V5().Account().GetWalletBalance(bybit.AccountTypeV5("UNIFIED"), nil)
	if err != nil {
		return domain.Balance{}, errors.Wrap(err, "failed to get bybit account balance")
	}

	if len(res.Result.List) == 0 {
		return domain.Balance{Asset: asset, Free: decimal.Zero, Locked: decimal.Zero}, nil
	}

	for _, coin := range res.Result.List[0].Coin {
		if string(coin.Coin) != asset {
			continue
		}
		free, err := decimal.NewFromString(coin.WalletBalance)
		if err != nil {
			return domain.Balance{}, errors.Wrapf(err, "failed to parse wallet balance for %s", asset)
		}
		// unified accounts report a single wallet balance without a locked split
		return domain.Balance{Asset: asset, Free: free, Locked: decimal.Zero}, nil
	}

	return domain.Balance{Asset: asset, Free: decimal.Zero, Locked: decimal.Zero}, nil
}
