package risk

import (
	"math"
	"testing"

	errs "github.com/olaskid2005/SignalBot/internal/errors"
	"github.com/olaskid2005/SignalBot/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSizer(t *testing.T) *Sizer {
	s, err := NewSizer(10000, 0.01)
	require.NoError(t, err)
	return s
}

func TestSizer_ReferenceNumbers(t *testing.T) {
	s := newTestSizer(t)
	assert.Equal(t, 100.0, s.RiskAmount())

	size, err := s.PositionSize(100)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, size, 1e-12)

	stop, err := s.StopLossPrice(50000, size)
	require.NoError(t, err)
	assert.InDelta(t, 49900.0, stop, 1e-9)

	target, err := s.TakeProfitPrice(50000, stop, 2.0)
	require.NoError(t, err)
	assert.InDelta(t, 50200.0, target, 1e-9)
}

func TestSizer_DegenerateInputs(t *testing.T) {
	s := newTestSizer(t)

	for _, d := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		_, err := s.PositionSize(d)
		assert.True(t, errs.IsDegenerateInput(err), "distance %v", d)
	}

	_, err := s.StopLossPrice(50000, 0)
	assert.True(t, errs.IsDegenerateInput(err))
	_, err = s.StopLossPrice(50000, -1)
	assert.True(t, errs.IsDegenerateInput(err))

	_, err = s.TakeProfitPrice(50000, 49900, 0)
	assert.True(t, errs.IsDegenerateInput(err))
	_, err = s.TakeProfitPrice(50000, 49900, -1)
	assert.True(t, errs.IsDegenerateInput(err))
}

func TestNewSizer_InvalidConfig(t *testing.T) {
	cases := []struct {
		balance, risk float64
	}{
		{0, 0.01},
		{-100, 0.01},
		{10000, 0},
		{10000, 1.5},
		{10000, math.NaN()},
	}
	for _, tc := range cases {
		_, err := NewSizer(tc.balance, tc.risk)
		assert.True(t, errs.IsConfiguration(err), "%+v", tc)
	}

	_, err := NewSizer(10000, 1)
	assert.NoError(t, err)
}

func TestSizer_ProposeBuy(t *testing.T) {
	s := newTestSizer(t)

	p, err := s.Propose(types.DecisionBuy, 50000, 1000, 2.0)
	require.NoError(t, err)
	assert.Equal(t, types.DecisionBuy, p.Decision)
	assert.InDelta(t, 0.1, p.PositionSize, 1e-12)
	assert.InDelta(t, 49000.0, p.StopLossPrice, 1e-9)
	assert.InDelta(t, 52000.0, p.TakeProfitPrice, 1e-9)
	assert.Equal(t, 2.0, p.RiskRewardRatio)
	assert.True(t, p.Actionable())
	assert.InDelta(t, 5000.0, p.Notional(), 1e-9)
}

func TestSizer_ProposeSellMirrorsStop(t *testing.T) {
	s := newTestSizer(t)

	p, err := s.Propose(types.DecisionSell, 50000, 1000, 2.0)
	require.NoError(t, err)
	assert.InDelta(t, 51000.0, p.StopLossPrice, 1e-9)
	assert.InDelta(t, 48000.0, p.TakeProfitPrice, 1e-9)
	assert.Greater(t, p.PositionSize, 0.0)
}

func TestSizer_ProposeHold(t *testing.T) {
	s := newTestSizer(t)

	p, err := s.Propose(types.DecisionHold, 50000, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.PositionSize)
	assert.Equal(t, 0.0, p.StopLossPrice)
	assert.False(t, p.Actionable())
}

func TestSizer_ProposeRejectsNegativeStop(t *testing.T) {
	s := newTestSizer(t)

	_, err := s.Propose(types.DecisionBuy, 50, 60, 2.0)
	assert.True(t, errs.IsDegenerateInput(err))

	_, err = s.Propose(types.DecisionBuy, 0, 10, 2.0)
	assert.True(t, errs.IsDegenerateInput(err))

	_, err = s.Propose(types.DecisionBuy, 50000, 100, 0)
	assert.True(t, errs.IsDegenerateInput(err))
}
