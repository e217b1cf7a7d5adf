package domain

import "github.com/shopspring/decimal"

// DefaultStepSize is used when the exchange does not report a quantity step
// for the symbol.
var DefaultStepSize = decimal.RequireFromString("0.00001")

// SymbolFilter exchange-imposed trading constraints for a symbol.
type SymbolFilter struct {
	// StepSize minimum quantity increment; order quantities must be
	// a multiple of this value.
	StepSize decimal.Decimal
}
