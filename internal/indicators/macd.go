package indicators

import (
	"fmt"

	errs "github.com/olaskid2005/SignalBot/internal/errors"
)

// MACD represents the Moving Average Convergence Divergence indicator
type MACD struct {
	shortPeriod  int
	longPeriod   int
	signalPeriod int
}

// MACDResult holds the three aligned MACD series
type MACDResult struct {
	MACD      Output
	Signal    Output
	Histogram Output
}

// NewMACD creates a new MACD instance; the short period must be below the long one
func NewMACD(shortPeriod, longPeriod, signalPeriod int) (*MACD, error) {
	if err := validatePeriod("MACD", "short_period", shortPeriod); err != nil {
		return nil, err
	}
	if err := validatePeriod("MACD", "long_period", longPeriod); err != nil {
		return nil, err
	}
	if err := validatePeriod("MACD", "signal_period", signalPeriod); err != nil {
		return nil, err
	}
	if shortPeriod >= longPeriod {
		return nil, errs.NewConfigurationError("MACD", "new", "short period must be less than long period").
			WithContext("short_period", shortPeriod).
			WithContext("long_period", longPeriod)
	}
	return &MACD{
		shortPeriod:  shortPeriod,
		longPeriod:   longPeriod,
		signalPeriod: signalPeriod,
	}, nil
}

// Calculate computes the MACD line, signal line, and histogram.
//
// The MACD line is defined from longPeriod-1. The signal line is an EMA of the
// defined MACD values, so it starts signalPeriod-1 bars later; the histogram
// follows the signal line.
func (m *MACD) Calculate(prices []float64) (*MACDResult, error) {
	if err := checkLength(m.GetName(), len(prices), m.longPeriod); err != nil {
		return nil, err
	}

	n := len(prices)
	shortEMA := newOutput(n)
	longEMA := newOutput(n)
	emaFrom(prices, 0, m.shortPeriod, 2.0/float64(m.shortPeriod+1), shortEMA)
	emaFrom(prices, 0, m.longPeriod, 2.0/float64(m.longPeriod+1), longEMA)

	res := &MACDResult{
		MACD:      newOutput(n),
		Signal:    newOutput(n),
		Histogram: newOutput(n),
	}
	start := m.longPeriod - 1
	for i := start; i < n; i++ {
		res.MACD[i] = shortEMA[i] - longEMA[i]
	}

	emaFrom(res.MACD, start, m.signalPeriod, 2.0/float64(m.signalPeriod+1), res.Signal)
	for i := start; i < n; i++ {
		if res.Signal.Defined(i) {
			res.Histogram[i] = res.MACD[i] - res.Signal[i]
		}
	}
	return res, nil
}

// GetName returns the indicator name
func (m *MACD) GetName() string {
	return fmt.Sprintf("MACD(%d,%d,%d)", m.shortPeriod, m.longPeriod, m.signalPeriod)
}

// GetRequiredPeriods returns the minimum input length
func (m *MACD) GetRequiredPeriods() int {
	return m.longPeriod
}

// SignalWarmup returns the number of prices needed before the signal line is defined
func (m *MACD) SignalWarmup() int {
	return m.longPeriod + m.signalPeriod - 1
}
