package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TradeEvent trading event produced by a completed order submission.
type TradeEvent struct {
	// Signal buy or sell.
	Signal Signal
	// Pair trading pair.
	Pair Pair
	// Quantity of the base currency.
	Quantity decimal.Decimal
	// Price price at the moment the order was submitted.
	Price decimal.Decimal
}

// String returns a human-readable string representation.
func (t *TradeEvent) String() string {
	return fmt.Sprintf("%s signal: %s quantity: %s price: %s",
		t.Pair.String(), t.Signal.String(), t.Quantity.String(), t.Price.String())
}
