// Package indicators provides moving average computation over close prices.
package indicators

import (
	"fmt"

	"github.com/cinar/indicator/v2/helper"
	"github.com/cinar/indicator/v2/trend"
	"github.com/shopspring/decimal"
)

// Snapshot holds the short and long moving averages computed for a single
// candle index where both windows have enough trailing history.
type Snapshot struct {
	Short decimal.Decimal
	Long  decimal.Decimal
}

// CalculateSMA calculates the Simple Moving Average for the given period.
// The result contains len(closes)-period+1 values: value i is the arithmetic
// mean of closes[i..i+period-1], so every average uses only candles at or
// before its index.
func CalculateSMA(closes []decimal.Decimal, period int) ([]decimal.Decimal, error) {
	if period < 1 {
		return nil, fmt.Errorf("period must be at least 1, got %d", period)
	}
	if len(closes) < period {
		return nil, fmt.Errorf("not enough data points: need %d, got %d", period, len(closes))
	}

	closesFloat := decimalsToFloat64(closes)

	sma := trend.NewSmaWithPeriod[float64](period)
	inputChan := helper.SliceToChan(closesFloat)
	outputChan := sma.Compute(inputChan)
	smaFloat := helper.ChanToSlice(outputChan)

	return float64ToDecimals(smaFloat), nil
}

// SnapshotSeries computes short and long SMAs over the close series and
// returns the aligned tail where both averages are defined. The result
// contains len(closes)-longPeriod+1 snapshots; snapshot i corresponds to
// candle index longPeriod-1+i.
func SnapshotSeries(closes []decimal.Decimal, shortPeriod, longPeriod int) ([]Snapshot, error) {
	if shortPeriod >= longPeriod {
		return nil, fmt.Errorf("short period %d must be less than long period %d", shortPeriod, longPeriod)
	}

	shortSMA, err := CalculateSMA(closes, shortPeriod)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate short SMA: %w", err)
	}

	longSMA, err := CalculateSMA(closes, longPeriod)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate long SMA: %w", err)
	}

	// the short series starts earlier; skip its warmup surplus so that both
	// averages describe the same candle
	offset := len(shortSMA) - len(longSMA)

	result := make([]Snapshot, len(longSMA))
	for i := range longSMA {
		result[i] = Snapshot{
			Short: shortSMA[offset+i],
			Long:  longSMA[i],
		}
	}

	return result, nil
}

// decimalsToFloat64 converts a slice of decimal.Decimal to []float64.
func decimalsToFloat64(decimals []decimal.Decimal) []float64 {
	result := make([]float64, len(decimals))
	for i, d := range decimals {
		result[i], _ = d.Float64()
	}
	return result
}

// float64ToDecimals converts a slice of float64 to []decimal.Decimal.
func float64ToDecimals(floats []float64) []decimal.Decimal {
	result := make([]decimal.Decimal, len(floats))
	for i, f := range floats {
		result[i] = decimal.NewFromFloat(f)
	}
	return result
}
