package indicators

import (
	"fmt"
	"math"

	"github.com/olaskid2005/SignalBot/pkg/types"
)

// ADX represents the Average Directional Index technical indicator
// ADX measures trend strength regardless of direction (0-100 scale)
// Values > 20 indicate trending market, > 40 indicate strong trend
type ADX struct {
	period int
}

// ADXResult holds the directional lines alongside the ADX itself
type ADXResult struct {
	ADX     Output
	PlusDI  Output
	MinusDI Output
	DX      Output
}

// NewADX creates a new ADX indicator
func NewADX(period int) (*ADX, error) {
	if err := validatePeriod("ADX", "period", period); err != nil {
		return nil, err
	}
	return &ADX{period: period}, nil
}

// Calculate computes +DI, -DI, DX and ADX.
//
// True range and directional movement start at index 1 (they need the previous
// bar). Each is smoothed with a trailing mean over period, so the DI lines are
// defined from index period and ADX, the trailing mean of DX, from 2*period-1.
// A zero smoothed true range yields DI values of 0, and a zero DI sum a DX of 0.
func (adx *ADX) Calculate(data []types.OHLCV) (*ADXResult, error) {
	if err := checkLength(adx.GetName(), len(data), adx.period); err != nil {
		return nil, err
	}

	n := len(data)
	trValues := make([]float64, n)
	plusDM := make([]float64, n)
	minusDM := make([]float64, n)

	for i := 1; i < n; i++ {
		current := data[i]
		previous := data[i-1]

		// True Range calculation
		trValues[i] = math.Max(current.High-current.Low,
			math.Max(math.Abs(current.High-previous.Close),
				math.Abs(current.Low-previous.Close)))

		plusDM[i], minusDM[i] = directionalMovement(current, previous)
	}

	smoothedTR := newOutput(n)
	smoothedPlus := newOutput(n)
	smoothedMinus := newOutput(n)
	trailingMean(trValues, 1, adx.period, smoothedTR)
	trailingMean(plusDM, 1, adx.period, smoothedPlus)
	trailingMean(minusDM, 1, adx.period, smoothedMinus)

	res := &ADXResult{
		ADX:     newOutput(n),
		PlusDI:  newOutput(n),
		MinusDI: newOutput(n),
		DX:      newOutput(n),
	}
	for i := adx.period; i < n; i++ {
		plusDI, minusDI := 0.0, 0.0
		if smoothedTR[i] > 0 {
			plusDI = smoothedPlus[i] / smoothedTR[i] * 100
			minusDI = smoothedMinus[i] / smoothedTR[i] * 100
		}
		dx := 0.0
		if diSum := plusDI + minusDI; diSum != 0 {
			dx = math.Abs(plusDI-minusDI) / diSum * 100
		}
		res.PlusDI[i] = plusDI
		res.MinusDI[i] = minusDI
		res.DX[i] = dx
	}

	trailingMean(res.DX, adx.period, adx.period, res.ADX)
	return res, nil
}

// directionalMovement returns +DM and -DM of current against previous. Only
// the larger positive move counts; equal moves cancel both to 0.
func directionalMovement(current, previous types.OHLCV) (plus, minus float64) {
	highDiff := current.High - previous.High
	lowDiff := previous.Low - current.Low
	if highDiff > lowDiff && highDiff > 0 {
		plus = highDiff
	}
	if lowDiff > highDiff && lowDiff > 0 {
		minus = lowDiff
	}
	return plus, minus
}

// GetName returns the indicator name
func (adx *ADX) GetName() string {
	return fmt.Sprintf("ADX(%d)", adx.period)
}

// GetRequiredPeriods returns minimum periods needed for calculation
func (adx *ADX) GetRequiredPeriods() int {
	return adx.period
}

// Warmup returns the number of bars needed before ADX itself is defined
func (adx *ADX) Warmup() int {
	return 2 * adx.period
}

// TrendStrength classifies an ADX reading
func TrendStrength(value float64) string {
	if value < 20 {
		return "weak_or_ranging"
	} else if value < 40 {
		return "trending"
	}
	return "strong_trending"
}
