package indicators

import (
	"fmt"
	"math"

	errs "github.com/olaskid2005/SignalBot/internal/errors"
)

// BollingerBands represents the Bollinger Bands indicator
type BollingerBands struct {
	period         int
	stdDevMultiple float64
}

// BandsResult holds the upper, middle, and lower bands
type BandsResult struct {
	Upper  Output
	Middle Output
	Lower  Output
}

// NewBollingerBands creates a new BollingerBands instance with the given period and standard deviation multiplier
func NewBollingerBands(period int, multiplier float64) (*BollingerBands, error) {
	if err := validatePeriod("BollingerBands", "period", period); err != nil {
		return nil, err
	}
	if !(multiplier > 0) || math.IsInf(multiplier, 0) {
		return nil, errs.NewConfigurationError("BollingerBands", "new", "multiplier must be greater than 0").
			WithContext("multiplier", multiplier)
	}
	return &BollingerBands{
		period:         period,
		stdDevMultiple: multiplier,
	}, nil
}

// Calculate computes the bands from a rolling mean and population standard
// deviation. Mean and sum of squared deviations are maintained with a sliding
// Welford update, which stays stable for large prices.
func (bb *BollingerBands) Calculate(prices []float64) (*BandsResult, error) {
	if err := checkLength(bb.GetName(), len(prices), bb.period); err != nil {
		return nil, err
	}

	n := len(prices)
	res := &BandsResult{
		Upper:  newOutput(n),
		Middle: newOutput(n),
		Lower:  newOutput(n),
	}
	p := float64(bb.period)

	mean, m2 := 0.0, 0.0
	for i := 0; i < n; i++ {
		x := prices[i]
		if i < bb.period {
			delta := x - mean
			mean += delta / float64(i+1)
			m2 += delta * (x - mean)
		} else {
			old := prices[i-bb.period]
			prevMean := mean
			mean += (x - old) / p
			m2 += (x - old) * (x - mean + old - prevMean)
		}
		if m2 < 0 {
			m2 = 0
		}
		if i >= bb.period-1 {
			std := math.Sqrt(m2 / p)
			res.Middle[i] = mean
			res.Upper[i] = mean + bb.stdDevMultiple*std
			res.Lower[i] = mean - bb.stdDevMultiple*std
		}
	}
	return res, nil
}

// GetName returns the indicator name
func (bb *BollingerBands) GetName() string {
	return fmt.Sprintf("BB(%d,%.2f)", bb.period, bb.stdDevMultiple)
}

// GetRequiredPeriods returns the minimum number of periods needed
func (bb *BollingerBands) GetRequiredPeriods() int {
	return bb.period
}
