package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutput_DefinedHelpers(t *testing.T) {
	out := newOutput(4)
	assert.Equal(t, -1, out.FirstDefined())
	assert.Equal(t, 0, out.CountDefined())

	_, ok := out.Last()
	assert.False(t, ok)

	out[2] = 0
	out[3] = 5
	assert.False(t, out.Defined(1))
	assert.True(t, out.Defined(2), "computed zero must count as defined")
	assert.False(t, out.Defined(-1))
	assert.False(t, out.Defined(4))
	assert.Equal(t, 2, out.FirstDefined())
	assert.Equal(t, 2, out.CountDefined())

	last, ok := out.Last()
	assert.True(t, ok)
	assert.Equal(t, 5.0, last)
}

func TestTypicalPrices(t *testing.T) {
	data := barsFromCloses([]float64{10, 20})
	tp := TypicalPrices(data)
	assert.InDelta(t, 10.0, tp[0], 1e-12)
	assert.InDelta(t, 20.0, tp[1], 1e-12)
	assert.Equal(t, []float64{10, 20}, Closes(data))
}
