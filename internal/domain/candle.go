package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Candle candlestick data point for a single interval.
type Candle struct {
	// OpenTime time the candle opened.
	OpenTime time.Time
	// Open is the opening price.
	Open decimal.Decimal
	// High is the highest price.
	High decimal.Decimal
	// Low is the lowest price.
	Low decimal.Decimal
	// Close is the closing price.
	Close decimal.Decimal
	// Volume traded volume in base currency.
	Volume decimal.Decimal
	// CloseTime time the candle closed.
	CloseTime time.Time
}

// ClosePrices extracts close prices from a chronological candle series.
func ClosePrices(candles []Candle) []decimal.Decimal {
	closes := make([]decimal.Decimal, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}
	return closes
}
