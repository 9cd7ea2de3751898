package indicators

import "fmt"

// RSI calculates the Relative Strength Index using Wilder smoothing
type RSI struct {
	period int
}

// NewRSI creates a new RSI instance with the given period
func NewRSI(period int) (*RSI, error) {
	if err := validatePeriod("RSI", "period", period); err != nil {
		return nil, err
	}
	return &RSI{period: period}, nil
}

// Calculate computes the RSI series for the given prices.
//
// The averages are seeded with the mean gain and mean loss of the first period
// deltas, then smoothed with avg = (avg*(period-1) + current) / period. The first
// value is at index period. A zero average loss saturates the value at 100.
func (r *RSI) Calculate(prices []float64) (Output, error) {
	if err := checkLength(r.GetName(), len(prices), r.GetRequiredPeriods()); err != nil {
		return nil, err
	}

	out := newOutput(len(prices))
	p := float64(r.period)

	gainSum, lossSum := 0.0, 0.0
	for i := 1; i <= r.period; i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			gainSum += change
		} else {
			lossSum -= change
		}
	}
	avgGain := gainSum / p
	avgLoss := lossSum / p
	out[r.period] = rsiValue(avgGain, avgLoss)

	for i := r.period + 1; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*(p-1) + gain) / p
		avgLoss = (avgLoss*(p-1) + loss) / p
		out[i] = rsiValue(avgGain, avgLoss)
	}

	return out, nil
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs))
}

// GetName returns the indicator name
func (r *RSI) GetName() string {
	return fmt.Sprintf("RSI(%d)", r.period)
}

// GetRequiredPeriods returns period+1: one extra price for the first delta
func (r *RSI) GetRequiredPeriods() int {
	return r.period + 1
}
