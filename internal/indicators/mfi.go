package indicators

import (
	"fmt"

	"github.com/olaskid2005/SignalBot/pkg/types"
)

// MFI calculates the Money Flow Index, a volume-weighted RSI over typical prices
type MFI struct {
	period int
}

// NewMFI creates a new MFI instance with the given period
func NewMFI(period int) (*MFI, error) {
	if err := validatePeriod("MFI", "period", period); err != nil {
		return nil, err
	}
	return &MFI{period: period}, nil
}

// Calculate computes the MFI series.
//
// Raw money flow (typical price * volume) counts as positive when the typical
// price rose against the previous bar and negative when it fell. Positive and
// negative flow are re-summed over the trailing period for every bar, so a window
// without negative flow is exactly zero and is treated as 1. The first value is
// at index period.
func (m *MFI) Calculate(data []types.OHLCV) (Output, error) {
	if err := checkLength(m.GetName(), len(data), m.period); err != nil {
		return nil, err
	}

	n := len(data)
	out := newOutput(n)
	tp := TypicalPrices(data)
	posFlow := make([]float64, n)
	negFlow := make([]float64, n)
	for i := 1; i < n; i++ {
		flow := tp[i] * data[i].Volume
		if tp[i] > tp[i-1] {
			posFlow[i] = flow
		} else if tp[i] < tp[i-1] {
			negFlow[i] = flow
		}
	}

	for i := m.period; i < n; i++ {
		pos, neg := 0.0, 0.0
		for j := i - m.period + 1; j <= i; j++ {
			pos += posFlow[j]
			neg += negFlow[j]
		}
		if neg == 0 {
			neg = 1
		}
		out[i] = 100 - 100/(1+pos/neg)
	}
	return out, nil
}

// GetName returns the indicator name
func (m *MFI) GetName() string {
	return fmt.Sprintf("MFI(%d)", m.period)
}

// GetRequiredPeriods returns minimum periods needed for calculation
func (m *MFI) GetRequiredPeriods() int {
	return m.period
}
