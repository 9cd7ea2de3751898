package signal

import (
	"fmt"
	"math"
)

// Historical performance keys read by Tuner.Optimize
const (
	StatRSIBuySuccessRate    = "rsiBuySuccessRate"
	StatRSISellSuccessRate   = "rsiSellSuccessRate"
	StatBollingerPerformance = "bollingerPerformance"
)

const (
	defaultSuccessRate   = 0.5
	successRateTrigger   = 0.6
	rsiBuyFloor          = 20.0
	rsiSellCeiling       = 80.0
	rsiStep              = 1.0
	bollingerStep        = 0.1
	minBollingerMultiple = 1.0
)

// Adjustment records one parameter change made by Optimize
type Adjustment struct {
	Parameter string  `json:"parameter"`
	From      float64 `json:"from"`
	To        float64 `json:"to"`
}

func (a Adjustment) String() string {
	return fmt.Sprintf("%s: %.2f -> %.2f", a.Parameter, a.From, a.To)
}

// Tuner owns a Thresholds set and nudges it from historical success rates.
// It is not safe for concurrent use; each pipeline owns its own Tuner.
type Tuner struct {
	thresholds Thresholds
}

// NewTuner creates a tuner seeded with DefaultThresholds
func NewTuner() *Tuner {
	return &Tuner{thresholds: DefaultThresholds()}
}

// SetParameter sets a threshold value
func (t *Tuner) SetParameter(key string, value float64) {
	t.thresholds[key] = value
}

// Parameter returns a threshold value, or 0 when the key was never set
func (t *Tuner) Parameter(key string) float64 {
	return t.thresholds[key]
}

// Thresholds returns a copy of the current thresholds
func (t *Tuner) Thresholds() Thresholds {
	return t.thresholds.Copy()
}

// Optimize applies the rule-based nudges. Missing stats count as 0.5.
//   - rsiBuySuccessRate > 0.6 lowers the RSI buy threshold by 1, not below 20
//   - rsiSellSuccessRate > 0.6 raises the RSI sell threshold by 1, not above 80
//   - bollingerPerformance > 0.6 widens the multiplier by 0.1, otherwise it
//     narrows by 0.1, not below 1.0
func (t *Tuner) Optimize(stats map[string]float64) []Adjustment {
	var changes []Adjustment
	set := func(key string, value float64) {
		from := t.thresholds[key]
		if from == value {
			return
		}
		t.thresholds[key] = value
		changes = append(changes, Adjustment{Parameter: key, From: from, To: value})
	}

	if stat(stats, StatRSIBuySuccessRate) > successRateTrigger {
		set(RSIThresholdBuy, math.Max(rsiBuyFloor, t.thresholds[RSIThresholdBuy]-rsiStep))
	}
	if stat(stats, StatRSISellSuccessRate) > successRateTrigger {
		set(RSIThresholdSell, math.Min(rsiSellCeiling, t.thresholds[RSIThresholdSell]+rsiStep))
	}
	if stat(stats, StatBollingerPerformance) > successRateTrigger {
		set(BollingerMultiplier, t.thresholds[BollingerMultiplier]+bollingerStep)
	} else {
		set(BollingerMultiplier, math.Max(minBollingerMultiple, t.thresholds[BollingerMultiplier]-bollingerStep))
	}
	return changes
}

func stat(stats map[string]float64, key string) float64 {
	if v, ok := stats[key]; ok {
		return v
	}
	return defaultSuccessRate
}
