package indicators

import "github.com/olaskid2005/SignalBot/pkg/types"

// VWAP is the cumulative volume-weighted average typical price from the start
// of the series
type VWAP struct{}

// NewVWAP creates a new VWAP calculator
func NewVWAP() *VWAP {
	return &VWAP{}
}

// Calculate computes the running VWAP. Positions before any volume has traded
// stay undefined.
func (v *VWAP) Calculate(data []types.OHLCV) (Output, error) {
	if err := checkLength(v.GetName(), len(data), 1); err != nil {
		return nil, err
	}

	out := newOutput(len(data))
	cumPV, cumVol := 0.0, 0.0
	for i, c := range data {
		cumPV += c.TypicalPrice() * c.Volume
		cumVol += c.Volume
		if cumVol > 0 {
			out[i] = cumPV / cumVol
		}
	}
	return out, nil
}

// GetName returns the indicator name
func (v *VWAP) GetName() string {
	return "VWAP"
}

// GetRequiredPeriods returns minimum periods needed for calculation
func (v *VWAP) GetRequiredPeriods() int {
	return 1
}
