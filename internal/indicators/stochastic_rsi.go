package indicators

import (
	"fmt"
	"math"
)

// StochasticRSI places each RSI value within the range of its trailing window
type StochasticRSI struct {
	period int
}

// NewStochasticRSI creates a new Stochastic RSI with the given window
func NewStochasticRSI(period int) (*StochasticRSI, error) {
	if err := validatePeriod("StochRSI", "period", period); err != nil {
		return nil, err
	}
	return &StochasticRSI{period: period}, nil
}

// Calculate maps an RSI series (see RSI.Calculate) to (rsi-min)/(max-min) over
// the trailing window. A window counts only when all of its RSI values are
// defined; an undefined value restarts the window. A flat window yields 0.
func (s *StochasticRSI) Calculate(rsi []float64) (Output, error) {
	if err := checkLength(s.GetName(), len(rsi), s.period); err != nil {
		return nil, err
	}

	out := newOutput(len(rsi))
	maxQ := newMaxDeque(s.period)
	minQ := newMinDeque(s.period)
	run := 0
	for i, v := range rsi {
		if math.IsNaN(v) {
			maxQ.reset()
			minQ.reset()
			run = 0
			continue
		}
		run++
		maxQ.push(i, v)
		minQ.push(i, v)
		lo := i - s.period + 1
		maxQ.expire(lo)
		minQ.expire(lo)
		if run < s.period {
			continue
		}
		hi, low := maxQ.front(), minQ.front()
		if hi == low {
			out[i] = 0
		} else {
			out[i] = (v - low) / (hi - low)
		}
	}
	return out, nil
}

// GetName returns the indicator name
func (s *StochasticRSI) GetName() string {
	return fmt.Sprintf("StochRSI(%d)", s.period)
}

// GetRequiredPeriods returns the window length over the RSI series
func (s *StochasticRSI) GetRequiredPeriods() int {
	return s.period
}
