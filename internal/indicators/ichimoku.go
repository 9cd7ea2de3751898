package indicators

import (
	"fmt"

	"github.com/olaskid2005/SignalBot/pkg/types"
)

// Ichimoku represents the Ichimoku Cloud indicator
type Ichimoku struct {
	tenkanPeriod  int // conversion line
	kijunPeriod   int // base line
	senkouBPeriod int // leading span B
	chikouLag     int // lagging span
}

// IchimokuResult holds the five Ichimoku lines.
//
// Values sit at the index they are computed from. Senkou spans are meant to be
// drawn LeadingShift() bars ahead; Chikou already holds close[i+lag] at i, so
// its last lag positions are undefined.
type IchimokuResult struct {
	Tenkan  Output
	Kijun   Output
	SenkouA Output
	SenkouB Output
	Chikou  Output
}

// NewIchimoku creates a new Ichimoku indicator; the classic setup is 9, 26, 52, 26
func NewIchimoku(tenkanPeriod, kijunPeriod, senkouBPeriod, chikouLag int) (*Ichimoku, error) {
	if err := validatePeriod("Ichimoku", "tenkan_period", tenkanPeriod); err != nil {
		return nil, err
	}
	if err := validatePeriod("Ichimoku", "kijun_period", kijunPeriod); err != nil {
		return nil, err
	}
	if err := validatePeriod("Ichimoku", "senkou_b_period", senkouBPeriod); err != nil {
		return nil, err
	}
	if err := validatePeriod("Ichimoku", "chikou_lag", chikouLag); err != nil {
		return nil, err
	}
	return &Ichimoku{
		tenkanPeriod:  tenkanPeriod,
		kijunPeriod:   kijunPeriod,
		senkouBPeriod: senkouBPeriod,
		chikouLag:     chikouLag,
	}, nil
}

// Calculate computes the Ichimoku lines for the given bars
func (ic *Ichimoku) Calculate(data []types.OHLCV) (*IchimokuResult, error) {
	if err := checkLength(ic.GetName(), len(data), ic.GetRequiredPeriods()); err != nil {
		return nil, err
	}

	n := len(data)
	highs := make([]float64, n)
	lows := make([]float64, n)
	for i, c := range data {
		highs[i] = c.High
		lows[i] = c.Low
	}

	res := &IchimokuResult{
		Tenkan:  midpointLine(highs, lows, ic.tenkanPeriod),
		Kijun:   midpointLine(highs, lows, ic.kijunPeriod),
		SenkouA: newOutput(n),
		SenkouB: midpointLine(highs, lows, ic.senkouBPeriod),
		Chikou:  newOutput(n),
	}

	for i := 0; i < n; i++ {
		if res.Tenkan.Defined(i) && res.Kijun.Defined(i) {
			res.SenkouA[i] = (res.Tenkan[i] + res.Kijun[i]) / 2
		}
	}
	for i := 0; i+ic.chikouLag < n; i++ {
		res.Chikou[i] = data[i+ic.chikouLag].Close
	}
	return res, nil
}

// LeadingShift is how many bars ahead the Senkou spans are plotted
func (ic *Ichimoku) LeadingShift() int {
	return ic.kijunPeriod
}

// LaggingShift is how many bars back the Chikou span is plotted
func (ic *Ichimoku) LaggingShift() int {
	return ic.chikouLag
}

// GetName returns the indicator name
func (ic *Ichimoku) GetName() string {
	return fmt.Sprintf("Ichimoku(%d,%d,%d,%d)", ic.tenkanPeriod, ic.kijunPeriod, ic.senkouBPeriod, ic.chikouLag)
}

// GetRequiredPeriods returns the longest of the three line windows
func (ic *Ichimoku) GetRequiredPeriods() int {
	return max(ic.tenkanPeriod, ic.kijunPeriod, ic.senkouBPeriod)
}
