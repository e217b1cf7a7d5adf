// Package crossover implements a moving-average crossover trading strategy:
// a golden cross buys a fixed quote notional, a death cross sells the whole
// base position.
package crossover

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/crossbot/internal/domain"
	"github.com/vadiminshakov/crossbot/pkg/retrier"
	"go.uber.org/zap"
)

type tradersvc interface {
	// Buy submits a market buy for the given BASE currency quantity.
	Buy(ctx context.Context, quantity decimal.Decimal) error
	// Sell submits a market sell for the given BASE currency quantity.
	Sell(ctx context.Context, quantity decimal.Decimal) error
	// GetBalance returns the account balance for a single asset.
	GetBalance(ctx context.Context, asset string) (domain.Balance, error)
}

type pricer interface {
	GetPrice(ctx context.Context, pair domain.Pair) (decimal.Decimal, error)
}

type klineProvider interface {
	GetKlines(ctx context.Context, pair domain.Pair, interval string, limit int) ([]domain.Candle, error)
}

type filterProvider interface {
	GetSymbolFilter(ctx context.Context, pair domain.Pair) (domain.SymbolFilter, error)
}

// Strategy polls market data and trades on moving-average crossovers.
// All exchange access goes through the small consumer interfaces above, so
// the decision logic stays deterministic under test.
type Strategy struct {
	pair          domain.Pair
	amount        decimal.Decimal
	shortPeriod   int
	longPeriod    int
	klineInterval string
	lookback      int
	step          decimal.Decimal
	pricer        pricer
	trader        tradersvc
	klines        klineProvider
	filters       filterProvider
	retrier       *retrier.Retrier
	l             *zap.Logger
}

// NewStrategy returns a configured crossover strategy.
func NewStrategy(l *zap.Logger, pair domain.Pair, amount decimal.Decimal,
	shortPeriod, longPeriod int, klineInterval string, lookback int,
	pricer pricer, trader tradersvc, klines klineProvider, filters filterProvider) (*Strategy, error) {

	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("amount must be positive, got %s", amount.String())
	}
	if shortPeriod < 1 {
		return nil, fmt.Errorf("short period must be at least 1, got %d", shortPeriod)
	}
	if shortPeriod >= longPeriod {
		return nil, fmt.Errorf("short period %d must be less than long period %d", shortPeriod, longPeriod)
	}
	if lookback < longPeriod+1 {
		return nil, fmt.Errorf("lookback %d is too small for long period %d, need at least %d",
			lookback, longPeriod, longPeriod+1)
	}

	return &Strategy{
		pair:          pair,
		amount:        amount,
		shortPeriod:   shortPeriod,
		longPeriod:    longPeriod,
		klineInterval: klineInterval,
		lookback:      lookback,
		step:          domain.DefaultStepSize,
		pricer:        pricer,
		trader:        trader,
		klines:        klines,
		filters:       filters,
		retrier:       retrier.New(),
		l:             l,
	}, nil
}

// Initialize fetches the symbol trading filter once. The step size changes
// rarely, so a startup fetch with backoff is enough; when the exchange call
// keeps failing the strategy falls back to the default step and keeps going.
func (s *Strategy) Initialize(ctx context.Context) error {
	filter, err := retrier.DoWithData(s.retrier, ctx, func(ctx context.Context) (domain.SymbolFilter, error) {
		return s.filters.GetSymbolFilter(ctx, s.pair)
	})
	if err != nil {
		s.l.Warn("failed to fetch symbol filter, using default step size",
			zap.String("pair", s.pair.String()),
			zap.String("step", domain.DefaultStepSize.String()),
			zap.Error(err))
		s.step = domain.DefaultStepSize
		return nil
	}

	if filter.StepSize.LessThanOrEqual(decimal.Zero) {
		s.l.Warn("exchange reported no step size, using default",
			zap.String("pair", s.pair.String()))
		s.step = domain.DefaultStepSize
		return nil
	}

	s.step = filter.StepSize
	s.l.Info("symbol filter loaded",
		zap.String("pair", s.pair.String()),
		zap.String("step", s.step.String()))
	return nil
}

// Trade runs a single polling cycle: fetch fresh market data, derive the
// signal and submit at most one market order. A nil event means the cycle
// ended with Hold or a logged skip.
func (s *Strategy) Trade(ctx context.Context) (*domain.TradeEvent, error) {
	price, err := s.pricer.GetPrice(ctx, s.pair)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get price for %s", s.pair.String())
	}

	candles, err := s.klines.GetKlines(ctx, s.pair, s.klineInterval, s.lookback)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get candles for %s", s.pair.String())
	}

	signal, err := SignalFromCandles(candles, s.shortPeriod, s.longPeriod)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to compute signal for %s", s.pair.String())
	}

	switch signal {
	case domain.SignalBuy:
		return s.executeBuy(ctx, price)
	case domain.SignalSell:
		return s.executeSell(ctx, price)
	default:
		s.l.Debug("no crossover detected",
			zap.String("pair", s.pair.String()),
			zap.Int("candles", len(candles)))
		return nil, nil
	}
}

func (s *Strategy) executeBuy(ctx context.Context, price decimal.Decimal) (*domain.TradeEvent, error) {
	quote, err := s.trader.GetBalance(ctx, s.pair.To)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get %s balance", s.pair.To)
	}

	if quote.Free.LessThan(s.amount) {
		s.l.Info("buy signal skipped: insufficient balance",
			zap.String("pair", s.pair.String()),
			zap.String("free", quote.Free.String()),
			zap.String("required", s.amount.String()))
		return nil, nil
	}

	quantity := SizeQuantity(s.amount, price, s.step)
	if quantity.IsZero() {
		s.l.Info("buy signal skipped: sized quantity is zero",
			zap.String("pair", s.pair.String()),
			zap.String("price", price.String()),
			zap.String("step", s.step.String()))
		return nil, nil
	}

	if err := s.trader.Buy(ctx, quantity); err != nil {
		return nil, errors.Wrapf(err, "failed to buy %s %s", quantity.String(), s.pair.From)
	}

	return &domain.TradeEvent{
		Signal:   domain.SignalBuy,
		Pair:     s.pair,
		Quantity: quantity,
		Price:    price,
	}, nil
}

func (s *Strategy) executeSell(ctx context.Context, price decimal.Decimal) (*domain.TradeEvent, error) {
	base, err := s.trader.GetBalance(ctx, s.pair.From)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get %s balance", s.pair.From)
	}

	// sell the entire free position, aligned to the step
	quantity := Quantize(base.Free, s.step)
	if quantity.IsZero() {
		s.l.Info("sell signal skipped: nothing to sell",
			zap.String("pair", s.pair.String()),
			zap.String("free", base.Free.String()))
		return nil, nil
	}

	if err := s.trader.Sell(ctx, quantity); err != nil {
		return nil, errors.Wrapf(err, "failed to sell %s %s", quantity.String(), s.pair.From)
	}

	return &domain.TradeEvent{
		Signal:   domain.SignalSell,
		Pair:     s.pair,
		Quantity: quantity,
		Price:    price,
	}, nil
}

// Close releases strategy resources. The crossover strategy holds none.
func (s *Strategy) Close() error {
	return nil
}
