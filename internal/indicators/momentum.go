package indicators

import "fmt"

// Momentum is the raw price change over a fixed lookback
type Momentum struct {
	period int
}

// NewMomentum creates a new Momentum instance with the given lookback
func NewMomentum(period int) (*Momentum, error) {
	if err := validatePeriod("Momentum", "period", period); err != nil {
		return nil, err
	}
	return &Momentum{period: period}, nil
}

// Calculate returns prices[i] - prices[i-period], defined from index period
func (m *Momentum) Calculate(prices []float64) (Output, error) {
	if err := checkLength(m.GetName(), len(prices), m.period); err != nil {
		return nil, err
	}
	out := newOutput(len(prices))
	for i := m.period; i < len(prices); i++ {
		out[i] = prices[i] - prices[i-m.period]
	}
	return out, nil
}

// GetName returns the indicator name
func (m *Momentum) GetName() string {
	return fmt.Sprintf("Momentum(%d)", m.period)
}

// GetRequiredPeriods returns minimum periods needed for calculation
func (m *Momentum) GetRequiredPeriods() int {
	return m.period
}
