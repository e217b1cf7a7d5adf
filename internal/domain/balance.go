package domain

import "github.com/shopspring/decimal"

// Balance account balance for a single asset.
type Balance struct {
	// Asset currency symbol, e.g. "BTC".
	Asset string
	// Free amount available for trading.
	Free decimal.Decimal
	// Locked amount reserved by open orders.
	Locked decimal.Decimal
}
