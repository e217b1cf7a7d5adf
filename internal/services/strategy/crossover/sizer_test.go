package crossover

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/crossbot/internal/domain"
)

func TestSizeQuantity(t *testing.T) {
	notional := decimal.NewFromInt(100)
	price := decimal.NewFromInt(50000)
	step := decimal.RequireFromString("0.00001")

	quantity := SizeQuantity(notional, price, step)
	require.True(t, quantity.Equal(decimal.RequireFromString("0.002")), "got %s", quantity)
}

func TestSizeQuantity_FloorsToStep(t *testing.T) {
	notional := decimal.NewFromInt(100)
	price := decimal.NewFromInt(30000)
	step := decimal.RequireFromString("0.001")

	// 100/30000 = 0.00333..., floored to 0.003
	quantity := SizeQuantity(notional, price, step)
	require.True(t, quantity.Equal(decimal.RequireFromString("0.003")), "got %s", quantity)
}

func TestSizeQuantity_Properties(t *testing.T) {
	cases := []struct {
		notional string
		price    string
		step     string
	}{
		{"100", "50000", "0.00001"},
		{"17.35", "2891.44", "0.0001"},
		{"1000", "0.072", "1"},
		{"5", "117000", "0.00001"},
		{"0.1", "50000", "0.00001"},
	}

	for _, tc := range cases {
		notional := decimal.RequireFromString(tc.notional)
		price := decimal.RequireFromString(tc.price)
		step := decimal.RequireFromString(tc.step)

		quantity := SizeQuantity(notional, price, step)

		require.True(t, quantity.GreaterThanOrEqual(decimal.Zero))
		require.True(t, quantity.Mod(step).IsZero(),
			"quantity %s is not a multiple of step %s", quantity, step)
		require.True(t, quantity.Mul(price).LessThanOrEqual(notional),
			"quantity %s at price %s exceeds notional %s", quantity, price, notional)

		// re-quantization is a no-op
		require.True(t, Quantize(quantity, step).Equal(quantity))
	}
}

func TestSizeQuantity_ZeroPrice(t *testing.T) {
	quantity := SizeQuantity(decimal.NewFromInt(100), decimal.Zero, decimal.RequireFromString("0.001"))
	require.True(t, quantity.IsZero())

	quantity = SizeQuantity(decimal.NewFromInt(100), decimal.NewFromInt(-5), decimal.RequireFromString("0.001"))
	require.True(t, quantity.IsZero())
}

func TestSizeQuantity_ZeroStepFallsBackToDefault(t *testing.T) {
	quantity := SizeQuantity(decimal.NewFromInt(100), decimal.NewFromInt(50000), decimal.Zero)
	require.True(t, quantity.Equal(decimal.RequireFromString("0.002")), "got %s", quantity)
	require.True(t, quantity.Mod(domain.DefaultStepSize).IsZero())
}

func TestQuantize_NegativeQuantity(t *testing.T) {
	quantity := Quantize(decimal.NewFromInt(-1), decimal.RequireFromString("0.001"))
	require.True(t, quantity.IsZero())
}
