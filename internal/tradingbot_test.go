package internal

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vadiminshakov/crossbot/config"
	"github.com/vadiminshakov/crossbot/internal/domain"
)

type fakeStrategy struct {
	calls    atomic.Int64
	tradeErr error
}

func (f *fakeStrategy) Initialize(context.Context) error { return nil }

func (f *fakeStrategy) Trade(context.Context) (*domain.TradeEvent, error) {
	f.calls.Add(1)
	if f.tradeErr != nil {
		return nil, f.tradeErr
	}
	return nil, nil
}

func (f *fakeStrategy) Close() error { return nil }

func newTestBot(strategy TradingStrategy) *TradingBot {
	return &TradingBot{
		Config: config.Config{
			Pair:         domain.Pair{From: "BTC", To: "USDT"},
			PollInterval: 10 * time.Millisecond,
		},
		strategy: strategy,
		logger:   zap.NewNop(),
	}
}

func TestTradingBot_SurvivesTradeErrors(t *testing.T) {
	strategy := &fakeStrategy{tradeErr: errors.New("exchange is down")}
	bot := newTestBot(strategy)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := bot.Run(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	// the loop must keep polling through failures instead of exiting
	require.Greater(t, strategy.calls.Load(), int64(2))
}

func TestTradingBot_StopsOnCancel(t *testing.T) {
	strategy := &fakeStrategy{}
	bot := newTestBot(strategy)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- bot.Run(ctx)
	}()

	time.Sleep(35 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("bot did not stop after context cancellation")
	}
}
