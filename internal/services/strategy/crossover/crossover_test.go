package crossover

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/crossbot/internal/domain"
	"go.uber.org/zap"
)

var testPair = domain.Pair{From: "BTC", To: "USDT"}

type mockPricer struct {
	price decimal.Decimal
	err   error
}

func (m *mockPricer) GetPrice(context.Context, domain.Pair) (decimal.Decimal, error) {
	return m.price, m.err
}

type mockTrader struct {
	balances map[string]domain.Balance
	buys     []decimal.Decimal
	sells    []decimal.Decimal
	orderErr error
}

func (m *mockTrader) Buy(_ context.Context, quantity decimal.Decimal) error {
	if m.orderErr != nil {
		return m.orderErr
	}
	m.buys = append(m.buys, quantity)
	return nil
}

func (m *mockTrader) Sell(_ context.Context, quantity decimal.Decimal) error {
	if m.orderErr != nil {
		return m.orderErr
	}
	m.sells = append(m.sells, quantity)
	return nil
}

func (m *mockTrader) GetBalance(_ context.Context, asset string) (domain.Balance, error) {
	return m.balances[asset], nil
}

type mockKlines struct {
	candles []domain.Candle
	err     error
}

func (m *mockKlines) GetKlines(context.Context, domain.Pair, string, int) ([]domain.Candle, error) {
	return m.candles, m.err
}

type mockFilters struct {
	filter domain.SymbolFilter
	err    error
}

func (m *mockFilters) GetSymbolFilter(context.Context, domain.Pair) (domain.SymbolFilter, error) {
	return m.filter, m.err
}

func newTestStrategy(t *testing.T, pricer *mockPricer, trader *mockTrader, klines *mockKlines, filters *mockFilters) *Strategy {
	t.Helper()

	s, err := NewStrategy(zap.NewNop(), testPair, decimal.NewFromInt(100),
		2, 3, "1h", 4, pricer, trader, klines, filters)
	require.NoError(t, err)

	return s
}

func balances(quoteFree, baseFree decimal.Decimal) map[string]domain.Balance {
	return map[string]domain.Balance{
		"USDT": {Asset: "USDT", Free: quoteFree},
		"BTC":  {Asset: "BTC", Free: baseFree},
	}
}

func TestStrategy_BuyOnGoldenCross(t *testing.T) {
	pricer := &mockPricer{price: decimal.NewFromInt(50)}
	trader := &mockTrader{balances: balances(decimal.NewFromInt(1000), decimal.Zero)}
	klines := &mockKlines{candles: candlesFromCloses(12, 10, 10, 20)}
	filters := &mockFilters{filter: domain.SymbolFilter{StepSize: decimal.RequireFromString("0.1")}}

	s := newTestStrategy(t, pricer, trader, klines, filters)
	require.NoError(t, s.Initialize(context.Background()))

	event, err := s.Trade(context.Background())
	require.NoError(t, err)
	require.NotNil(t, event)
	require.Equal(t, domain.SignalBuy, event.Signal)

	require.Len(t, trader.buys, 1)
	require.True(t, trader.buys[0].Equal(decimal.NewFromInt(2)), "got %s", trader.buys[0])
	require.Empty(t, trader.sells)
}

func TestStrategy_BuySkippedOnInsufficientBalance(t *testing.T) {
	pricer := &mockPricer{price: decimal.NewFromInt(50)}
	trader := &mockTrader{balances: balances(decimal.NewFromInt(50), decimal.Zero)}
	klines := &mockKlines{candles: candlesFromCloses(12, 10, 10, 20)}

	s := newTestStrategy(t, pricer, trader, klines, &mockFilters{})

	event, err := s.Trade(context.Background())
	require.NoError(t, err)
	require.Nil(t, event)
	require.Empty(t, trader.buys, "no order must be placed with insufficient balance")
	require.Empty(t, trader.sells)
}

func TestStrategy_BuySkippedOnZeroPrice(t *testing.T) {
	pricer := &mockPricer{price: decimal.Zero}
	trader := &mockTrader{balances: balances(decimal.NewFromInt(1000), decimal.Zero)}
	klines := &mockKlines{candles: candlesFromCloses(12, 10, 10, 20)}

	s := newTestStrategy(t, pricer, trader, klines, &mockFilters{})

	event, err := s.Trade(context.Background())
	require.NoError(t, err)
	require.Nil(t, event)
	require.Empty(t, trader.buys, "a zero price sizes to zero and must skip the order")
}

func TestStrategy_SellWholeQuantizedBalance(t *testing.T) {
	pricer := &mockPricer{price: decimal.NewFromInt(50)}
	trader := &mockTrader{balances: balances(decimal.Zero, decimal.RequireFromString("1.23456789"))}
	klines := &mockKlines{candles: candlesFromCloses(8, 10, 10, 2)}
	filters := &mockFilters{filter: domain.SymbolFilter{StepSize: decimal.RequireFromString("0.001")}}

	s := newTestStrategy(t, pricer, trader, klines, filters)
	require.NoError(t, s.Initialize(context.Background()))

	event, err := s.Trade(context.Background())
	require.NoError(t, err)
	require.NotNil(t, event)
	require.Equal(t, domain.SignalSell, event.Signal)

	require.Len(t, trader.sells, 1)
	require.True(t, trader.sells[0].Equal(decimal.RequireFromString("1.234")), "got %s", trader.sells[0])
	require.Empty(t, trader.buys)
}

func TestStrategy_SellSkippedOnEmptyBalance(t *testing.T) {
	pricer := &mockPricer{price: decimal.NewFromInt(50)}
	trader := &mockTrader{balances: balances(decimal.NewFromInt(1000), decimal.Zero)}
	klines := &mockKlines{candles: candlesFromCloses(8, 10, 10, 2)}

	s := newTestStrategy(t, pricer, trader, klines, &mockFilters{})

	event, err := s.Trade(context.Background())
	require.NoError(t, err)
	require.Nil(t, event)
	require.Empty(t, trader.sells, "nothing to sell without a base position")
}

func TestStrategy_HoldOnShortHistory(t *testing.T) {
	pricer := &mockPricer{price: decimal.NewFromInt(50)}
	trader := &mockTrader{balances: balances(decimal.NewFromInt(1000), decimal.NewFromInt(1))}
	klines := &mockKlines{candles: candlesFromCloses(12, 10)}

	s := newTestStrategy(t, pricer, trader, klines, &mockFilters{})

	event, err := s.Trade(context.Background())
	require.NoError(t, err)
	require.Nil(t, event)
	require.Empty(t, trader.buys)
	require.Empty(t, trader.sells)
}

func TestStrategy_PriceErrorPropagates(t *testing.T) {
	pricer := &mockPricer{err: errors.New("connection reset")}
	trader := &mockTrader{balances: balances(decimal.NewFromInt(1000), decimal.Zero)}
	klines := &mockKlines{candles: candlesFromCloses(12, 10, 10, 20)}

	s := newTestStrategy(t, pricer, trader, klines, &mockFilters{})

	_, err := s.Trade(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to get price")
	require.Empty(t, trader.buys)
	require.Empty(t, trader.sells)
}

func TestStrategy_OrderErrorPropagates(t *testing.T) {
	pricer := &mockPricer{price: decimal.NewFromInt(50)}
	trader := &mockTrader{
		balances: balances(decimal.NewFromInt(1000), decimal.Zero),
		orderErr: errors.New("rate limited"),
	}
	klines := &mockKlines{candles: candlesFromCloses(12, 10, 10, 20)}

	s := newTestStrategy(t, pricer, trader, klines, &mockFilters{})

	_, err := s.Trade(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to buy")
}

func TestStrategy_InitializeFallsBackOnMissingStep(t *testing.T) {
	pricer := &mockPricer{price: decimal.NewFromInt(50)}
	trader := &mockTrader{balances: balances(decimal.NewFromInt(1000), decimal.Zero)}
	klines := &mockKlines{candles: candlesFromCloses(12, 10, 10, 20)}
	filters := &mockFilters{filter: domain.SymbolFilter{}} // no step reported

	s := newTestStrategy(t, pricer, trader, klines, filters)
	require.NoError(t, s.Initialize(context.Background()))
	require.True(t, s.step.Equal(domain.DefaultStepSize))
}

func TestNewStrategy_Validation(t *testing.T) {
	pricer := &mockPricer{}
	trader := &mockTrader{}
	klines := &mockKlines{}
	filters := &mockFilters{}

	_, err := NewStrategy(zap.NewNop(), testPair, decimal.Zero, 2, 3, "1h", 4, pricer, trader, klines, filters)
	require.Error(t, err, "non-positive amount")

	_, err = NewStrategy(zap.NewNop(), testPair, decimal.NewFromInt(100), 0, 3, "1h", 4, pricer, trader, klines, filters)
	require.Error(t, err, "short period below 1")

	_, err = NewStrategy(zap.NewNop(), testPair, decimal.NewFromInt(100), 3, 3, "1h", 4, pricer, trader, klines, filters)
	require.Error(t, err, "short period not below long period")

	_, err = NewStrategy(zap.NewNop(), testPair, decimal.NewFromInt(100), 2, 3, "1h", 3, pricer, trader, klines, filters)
	require.Error(t, err, "lookback too small")
}
