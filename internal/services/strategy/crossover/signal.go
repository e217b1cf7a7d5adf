package crossover

import (
	"github.com/vadiminshakov/crossbot/internal/domain"
	"github.com/vadiminshakov/crossbot/pkg/indicators"
)

// DetectCross compares two consecutive indicator snapshots and reports the
// crossover signal. Equality of the averages on either side is not a cross.
func DetectCross(prev, curr indicators.Snapshot) domain.Signal {
	if prev.Short.LessThan(prev.Long) && curr.Short.GreaterThan(curr.Long) {
		return domain.SignalBuy
	}
	if prev.Short.GreaterThan(prev.Long) && curr.Short.LessThan(curr.Long) {
		return domain.SignalSell
	}
	return domain.SignalHold
}

// SignalFromCandles derives the trading signal from a chronological candle
// series. Sequences too short to produce two defined snapshots yield Hold
// without attempting any computation.
func SignalFromCandles(candles []domain.Candle, shortPeriod, longPeriod int) (domain.Signal, error) {
	if len(candles) < longPeriod+1 {
		return domain.SignalHold, nil
	}

	snapshots, err := indicators.SnapshotSeries(domain.ClosePrices(candles), shortPeriod, longPeriod)
	if err != nil {
		return domain.SignalHold, err
	}
	if len(snapshots) < 2 {
		return domain.SignalHold, nil
	}

	return DetectCross(snapshots[len(snapshots)-2], snapshots[len(snapshots)-1]), nil
}
