package indicators

import "fmt"

// EMA represents the Exponential Moving Average technical indicator
type EMA struct {
	period int
	alpha  float64
}

// NewEMA creates a new EMA indicator
func NewEMA(period int) (*EMA, error) {
	if err := validatePeriod("EMA", "period", period); err != nil {
		return nil, err
	}
	return &EMA{
		period: period,
		alpha:  2.0 / float64(period+1), // Standard EMA alpha calculation
	}, nil
}

// Calculate returns the EMA series. The first value sits at period-1 and is
// seeded with the simple mean of the first period prices.
func (e *EMA) Calculate(prices []float64) (Output, error) {
	if err := checkLength(e.GetName(), len(prices), e.period); err != nil {
		return nil, err
	}
	out := newOutput(len(prices))
	emaFrom(prices, 0, e.period, e.alpha, out)
	return out, nil
}

// emaFrom seeds at start+period-1 and applies (x - prev)*alpha + prev afterwards.
// Callers guarantee len(values)-start >= period or accept an all-undefined result.
func emaFrom(values []float64, start, period int, alpha float64, out Output) {
	seedIdx := start + period - 1
	if seedIdx >= len(values) {
		return
	}
	sum := 0.0
	for i := start; i <= seedIdx; i++ {
		sum += values[i]
	}
	prev := sum / float64(period)
	out[seedIdx] = prev
	for i := seedIdx + 1; i < len(values); i++ {
		prev = (values[i]-prev)*alpha + prev
		out[i] = prev
	}
}

// GetName returns the indicator name
func (e *EMA) GetName() string {
	return fmt.Sprintf("EMA(%d)", e.period)
}

// GetRequiredPeriods returns the minimum number of periods needed
func (e *EMA) GetRequiredPeriods() int {
	return e.period
}
