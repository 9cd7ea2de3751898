package indicators

import "fmt"

// SMA represents the Simple Moving Average technical indicator
type SMA struct {
	period int
}

// NewSMA creates a new SMA indicator
func NewSMA(period int) (*SMA, error) {
	if err := validatePeriod("SMA", "period", period); err != nil {
		return nil, err
	}
	return &SMA{period: period}, nil
}

// Calculate returns the trailing simple mean for every full window.
func (s *SMA) Calculate(prices []float64) (Output, error) {
	if err := checkLength(s.GetName(), len(prices), s.period); err != nil {
		return nil, err
	}
	out := newOutput(len(prices))
	trailingMean(prices, 0, s.period, out)
	return out, nil
}

// GetName returns the indicator name
func (s *SMA) GetName() string {
	return fmt.Sprintf("SMA(%d)", s.period)
}

// GetRequiredPeriods returns the minimum number of periods needed
func (s *SMA) GetRequiredPeriods() int {
	return s.period
}
