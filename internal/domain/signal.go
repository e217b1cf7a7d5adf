package domain

// Signal represents the trading decision derived from indicator data.
type Signal int

const (
	// SignalHold means no action should be taken.
	SignalHold Signal = iota
	// SignalBuy means a golden cross occurred (short MA crossed above long MA).
	SignalBuy
	// SignalSell means a death cross occurred (short MA crossed below long MA).
	SignalSell
)

// signal string constants to avoid magic strings
const (
	signalStringHold = "hold"
	signalStringBuy  = "buy"
	signalStringSell = "sell"
)

// String returns the string representation of the signal
func (s Signal) String() string {
	switch s {
	case SignalHold:
		return signalStringHold
	case SignalBuy:
		return signalStringBuy
	case SignalSell:
		return signalStringSell
	default:
		return "unknown"
	}
}
