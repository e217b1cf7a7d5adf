package crossover

import (
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/crossbot/internal/domain"
)

// Quantize floors quantity down to a non-negative multiple of step. A zero or
// negative step falls back to domain.DefaultStepSize.
func Quantize(quantity, step decimal.Decimal) decimal.Decimal {
	if step.LessThanOrEqual(decimal.Zero) {
		step = domain.DefaultStepSize
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return quantity.Div(step).Floor().Mul(step)
}

// SizeQuantity converts a quote-currency notional into a tradable base
// quantity aligned to the symbol's step size. The precision loss from
// flooring is intentional: exchanges reject quantities that are not an exact
// multiple of the step. A non-positive price yields zero and the caller must
// skip order placement.
func SizeQuantity(notional, price, step decimal.Decimal) decimal.Decimal {
	if price.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return Quantize(notional.Div(price), step)
}
