package internal

import (
	"context"
	"fmt"

	binance "github.com/adshao/go-binance/v2"
	bybit "github.com/hirokisan/bybit/v2"
	"github.com/shopspring/decimal"

	"github.com/vadiminshakov/crossbot/internal/domain"
	"github.com/vadiminshakov/crossbot/internal/services/market/collector"
	"github.com/vadiminshakov/crossbot/internal/services/market/filters"
	"github.com/vadiminshakov/crossbot/internal/services/pricer"
	"github.com/vadiminshakov/crossbot/internal/services/trader"
)

type traderService interface {
	Buy(ctx context.Context, quantity decimal.Decimal) error
	Sell(ctx context.Context, quantity decimal.Decimal) error
	GetBalance(ctx context.Context, asset string) (domain.Balance, error)
}

type priceService interface {
	GetPrice(ctx context.Context, pair domain.Pair) (decimal.Decimal, error)
}

type klineProvider interface {
	GetKlines(ctx context.Context, pair domain.Pair, interval string, limit int) ([]domain.Candle, error)
}

type filterProvider interface {
	GetSymbolFilter(ctx context.Context, pair domain.Pair) (domain.SymbolFilter, error)
}

// ServiceProvider defines a factory interface for creating platform-specific services.
type ServiceProvider interface {
	Trader(pair domain.Pair) traderService
	Pricer() priceService
	KlineProvider() klineProvider
	FilterProvider() filterProvider
}

// NewServiceProvider creates a new service provider based on the client type.
// This is the single point of truth for dispatching to platform-specific implementations.
func NewServiceProvider(client any) (ServiceProvider, error) {
	switch c := client.(type) {
	case *binance.Client:
		return &binanceProvider{client: c}, nil
	case *bybit.Client:
		return &bybitProvider{client: c}, nil
	default:
		return nil, fmt.Errorf("unsupported client type: %T", client)
	}
}

type binanceProvider struct {
	client *binance.Client
}

func (p *binanceProvider) Trader(pair domain.Pair) traderService {
	return trader.NewBinanceTrader(p.client, pair)
}
func (p *binanceProvider) Pricer() priceService {
	return pricer.NewBinancePricer(p.client)
}
func (p *binanceProvider) KlineProvider() klineProvider {
	return collector.NewBinanceKlineProvider(p.client)
}
func (p *binanceProvider) FilterProvider() filterProvider {
	return filters.NewBinanceFilterProvider(p.client)
}

type bybitProvider struct {
	client *bybit.Client
}

func (p *bybitProvider) Trader(pair domain.Pair) traderService {
	return trader.NewBybitTrader(p.client, pair)
}
func (p *bybitProvider) Pricer() priceService {
	return pricer.NewBybitPricer(p.client)
}
func (p *bybitProvider) KlineProvider() klineProvider {
	return collector.NewBybitKlineProvider(p.client)
}
func (p *bybitProvider) FilterProvider() filterProvider {
	return filters.NewBybitFilterProvider(p.client)
}
