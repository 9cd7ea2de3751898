package signal

// Threshold keys
const (
	RSIThresholdBuy     = "rsiThresholdBuy"
	RSIThresholdSell    = "rsiThresholdSell"
	MACDThresholdBuy    = "macdThresholdBuy"
	MACDThresholdSell   = "macdThresholdSell"
	BollingerMultiplier = "bollingerMultiplier"
)

// ThresholdKeys lists the known keys in display order
var ThresholdKeys = []string{
	RSIThresholdBuy, RSIThresholdSell, MACDThresholdBuy, MACDThresholdSell, BollingerMultiplier,
}

// Thresholds are the tunable fusion parameters keyed by name
type Thresholds map[string]float64

// DefaultThresholds returns a fresh map with the standard settings
func DefaultThresholds() Thresholds {
	return Thresholds{
		RSIThresholdBuy:     30,
		RSIThresholdSell:    70,
		MACDThresholdBuy:    0,
		MACDThresholdSell:   0,
		BollingerMultiplier: 2.0,
	}
}

// Get returns the value for key, falling back to the default for known keys
// and 0 for unknown ones
func (t Thresholds) Get(key string) float64 {
	if v, ok := t[key]; ok {
		return v
	}
	return DefaultThresholds()[key]
}

// Copy returns an independent copy
func (t Thresholds) Copy() Thresholds {
	out := make(Thresholds, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}
