// Command crossbot runs a moving-average crossover trading bot.
// It polls spot market data from the configured exchange, detects golden and
// death crosses of two simple moving averages and submits market orders.
//
// Usage:
//
//	crossbot --config config.yaml
//	crossbot setup        (interactive config wizard)
//	crossbot              (uses CLI arguments)
//
// Required environment variables:
//
//	For Binance: BINANCE_API_KEY, BINANCE_API_SECRET
//	For Bybit: BYBIT_API_KEY, BYBIT_API_SECRET
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vadiminshakov/crossbot/config"
	"github.com/vadiminshakov/crossbot/internal"
	"github.com/vadiminshakov/crossbot/internal/clients"
	"github.com/vadiminshakov/crossbot/internal/setup"
)

const restartWaitSec = 30

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(errors.Wrap(err, "failed to initialize logger"))
	}
	defer logger.Sync()

	if len(os.Args) > 1 && os.Args[1] == "setup" {
		if err := setup.RunTUI(); err != nil {
			logger.Fatal("setup failed", zap.Error(err))
		}
		return
	}

	configs, err := config.Get()
	if err != nil {
		logger.Fatal("failed to get configuration", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	g := new(errgroup.Group)
	for _, c := range configs {
		conf := c
		g.Go(func() error {
			for ctx.Err() == nil {
				client, err := newExchangeClient(conf.Platform)
				if err != nil {
					return err
				}

				bot, err := internal.NewTradingBot(conf, client, logger)
				if err != nil {
					logger.Error(fmt.Sprintf("failed to create trading bot for pair %s, recreate after %ds",
						conf.Pair.String(), restartWaitSec), zap.Error(err))
					time.Sleep(restartWaitSec * time.Second)
					continue
				}

				err = bot.Run(ctx)
				bot.Close()
				if errors.Is(err, context.Canceled) {
					return nil
				}

				logger.Error(fmt.Sprintf("trading bot stopped for pair %s, recreate after %ds",
					conf.Pair.String(), restartWaitSec), zap.Error(err))
				time.Sleep(restartWaitSec * time.Second)
			}
			return nil
		})
		logger.Info("started", zap.String("pair", conf.Pair.String()))
	}

	if err := g.Wait(); err != nil {
		logger.Error(err.Error())
	}
}

// newExchangeClient builds the exchange API client for the platform using
// credentials from the environment.
func newExchangeClient(platform string) (any, error) {
	switch platform {
	case "binance":
		apiKey := os.Getenv("BINANCE_API_KEY")
		apiSecret := os.Getenv("BINANCE_API_SECRET")
		if apiKey == "" || apiSecret == "" {
			return nil, errors.New("BINANCE_API_KEY and BINANCE_API_SECRET environment variables must be set")
		}
		return clients.NewBinanceClient(apiKey, apiSecret), nil
	case "bybit":
		apiKey := os.Getenv("BYBIT_API_KEY")
		apiSecret := os.Getenv("BYBIT_API_SECRET")
		if apiKey == "" || apiSecret == "" {
			return nil, errors.New("BYBIT_API_KEY and BYBIT_API_SECRET environment variables must be set")
		}
		return clients.NewBybitClient(apiKey, apiSecret), nil
	default:
		return nil, fmt.Errorf("unsupported platform %q", platform)
	}
}
