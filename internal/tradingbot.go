package internal

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/vadiminshakov/crossbot/config"
	"github.com/vadiminshakov/crossbot/internal/domain"
	"github.com/vadiminshakov/crossbot/internal/services/strategy/crossover"
)

// TradingStrategy runs one trading cycle per Trade call.
type TradingStrategy interface {
	Initialize(ctx context.Context) error
	Trade(ctx context.Context) (*domain.TradeEvent, error)
	Close() error
}

// TradingBot represents a single trading instance: one pair, one strategy,
// one polling loop.
type TradingBot struct {
	Config   config.Config
	strategy TradingStrategy
	logger   *zap.Logger
}

// NewTradingBot creates a new trading bot instance for the given exchange client.
func NewTradingBot(conf config.Config, client any, logger *zap.Logger) (*TradingBot, error) {
	provider, err := NewServiceProvider(client)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create service provider")
	}

	strategyLogger := logger.With(zap.String("pair", conf.Pair.String()))
	strategy, err := crossover.NewStrategy(
		strategyLogger,
		conf.Pair,
		conf.Amount,
		conf.ShortWindow,
		conf.LongWindow,
		conf.KlineInterval,
		conf.Lookback,
		provider.Pricer(),
		provider.Trader(conf.Pair),
		provider.KlineProvider(),
		provider.FilterProvider(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create crossover strategy")
	}

	return &TradingBot{
		Config:   conf,
		strategy: strategy,
		logger:   logger,
	}, nil
}

// Close closes the trading bot.
func (b *TradingBot) Close() {
	if err := b.strategy.Close(); err != nil {
		b.logger.Error("failed to close strategy", zap.Error(err))
	}
}

// Run executes the polling loop until the context is cancelled. A failed
// cycle is logged and the loop moves on to the next tick: exchange outages
// and bad market data are recoverable by definition, the next cycle fetches
// everything fresh.
func (b *TradingBot) Run(ctx context.Context) error {
	if err := b.strategy.Initialize(ctx); err != nil {
		return errors.Wrap(err, "failed to initialize trading strategy")
	}

	ticker := time.NewTicker(b.Config.PollInterval)
	defer ticker.Stop()

	b.logger.Info("starting trading loop",
		zap.String("pair", b.Config.Pair.String()),
		zap.Duration("poll_interval", b.Config.PollInterval))

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("context done, stopping trading loop",
				zap.String("pair", b.Config.Pair.String()))
			return ctx.Err()
		case <-ticker.C:
			tradeEvent, err := b.strategy.Trade(ctx)
			if err != nil {
				b.logger.Error("trade cycle failed, will retry next cycle",
					zap.String("pair", b.Config.Pair.String()),
					zap.Error(err))
				continue
			}

			if tradeEvent != nil {
				b.logger.Info("trade executed",
					zap.String("pair", b.Config.Pair.String()),
					zap.String("event", tradeEvent.String()))
			}
		}
	}
}
