package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTuner_Defaults(t *testing.T) {
	tuner := NewTuner()
	assert.Equal(t, 30.0, tuner.Parameter(RSIThresholdBuy))
	assert.Equal(t, 70.0, tuner.Parameter(RSIThresholdSell))
	assert.Equal(t, 0.0, tuner.Parameter(MACDThresholdBuy))
	assert.Equal(t, 0.0, tuner.Parameter(MACDThresholdSell))
	assert.Equal(t, 2.0, tuner.Parameter(BollingerMultiplier))
	assert.Equal(t, 0.0, tuner.Parameter("unknown"))
}

func TestTuner_ThresholdsIsCopy(t *testing.T) {
	tuner := NewTuner()
	th := tuner.Thresholds()
	th[RSIThresholdBuy] = 10
	assert.Equal(t, 30.0, tuner.Parameter(RSIThresholdBuy))
}

func TestTuner_OptimizeSteps(t *testing.T) {
	tuner := NewTuner()
	changes := tuner.Optimize(map[string]float64{
		StatRSIBuySuccessRate:    0.7,
		StatRSISellSuccessRate:   0.65,
		StatBollingerPerformance: 0.8,
	})

	assert.Equal(t, 29.0, tuner.Parameter(RSIThresholdBuy))
	assert.Equal(t, 71.0, tuner.Parameter(RSIThresholdSell))
	assert.InDelta(t, 2.1, tuner.Parameter(BollingerMultiplier), 1e-12)
	require.Len(t, changes, 3)
	assert.Equal(t, Adjustment{Parameter: RSIThresholdBuy, From: 30, To: 29}, changes[0])
	assert.Equal(t, "rsiThresholdBuy: 30.00 -> 29.00", changes[0].String())
}

func TestTuner_ClampsAtBounds(t *testing.T) {
	tuner := NewTuner()
	tuner.SetParameter(RSIThresholdBuy, 20)
	tuner.SetParameter(RSIThresholdSell, 80)
	tuner.SetParameter(BollingerMultiplier, 1.0)

	changes := tuner.Optimize(map[string]float64{
		StatRSIBuySuccessRate:    0.9,
		StatRSISellSuccessRate:   0.9,
		StatBollingerPerformance: 0.1,
	})
	assert.Equal(t, 20.0, tuner.Parameter(RSIThresholdBuy))
	assert.Equal(t, 80.0, tuner.Parameter(RSIThresholdSell))
	assert.Equal(t, 1.0, tuner.Parameter(BollingerMultiplier))
	assert.Empty(t, changes)

	tuner.SetParameter(RSIThresholdBuy, 20.5)
	tuner.Optimize(map[string]float64{StatRSIBuySuccessRate: 0.9})
	assert.Equal(t, 20.0, tuner.Parameter(RSIThresholdBuy))
}

func TestTuner_MissingStatsDefaultToHalf(t *testing.T) {
	tuner := NewTuner()
	changes := tuner.Optimize(nil)

	assert.Equal(t, 30.0, tuner.Parameter(RSIThresholdBuy))
	assert.Equal(t, 70.0, tuner.Parameter(RSIThresholdSell))
	// 0.5 does not beat 0.6, so the multiplier narrows
	assert.InDelta(t, 1.9, tuner.Parameter(BollingerMultiplier), 1e-12)
	require.Len(t, changes, 1)
	assert.Equal(t, BollingerMultiplier, changes[0].Parameter)
}

func TestThresholds_GetFallsBackToDefaults(t *testing.T) {
	th := Thresholds{RSIThresholdBuy: 25}
	assert.Equal(t, 25.0, th.Get(RSIThresholdBuy))
	assert.Equal(t, 70.0, th.Get(RSIThresholdSell))
	assert.Equal(t, 2.0, th.Get(BollingerMultiplier))
	assert.Equal(t, 0.0, th.Get("unknown"))

	cp := th.Copy()
	cp[RSIThresholdBuy] = 10
	assert.Equal(t, 25.0, th[RSIThresholdBuy])
}
