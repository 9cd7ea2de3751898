package indicators

import (
	"testing"

	errs "github.com/olaskid2005/SignalBot/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMACD_FirstDefinedIndices(t *testing.T) {
	macd, err := NewMACD(12, 26, 9)
	require.NoError(t, err)
	assert.Equal(t, 34, macd.SignalWarmup())

	prices := Closes(generateTestData(100))
	res, err := macd.Calculate(prices)
	require.NoError(t, err)

	assert.Len(t, res.MACD, len(prices))
	assert.Len(t, res.Signal, len(prices))
	assert.Len(t, res.Histogram, len(prices))

	assert.Equal(t, 25, res.MACD.FirstDefined())
	assert.Equal(t, 33, res.Signal.FirstDefined())
	assert.Equal(t, 33, res.Histogram.FirstDefined())

	for i := 33; i < len(prices); i++ {
		assert.InDelta(t, res.MACD[i]-res.Signal[i], res.Histogram[i], 1e-12)
	}
}

func TestMACD_MatchesEMADifference(t *testing.T) {
	prices := Closes(generateTestData(60))
	macd, err := NewMACD(5, 10, 3)
	require.NoError(t, err)
	res, err := macd.Calculate(prices)
	require.NoError(t, err)

	short, _ := NewEMA(5)
	long, _ := NewEMA(10)
	shortOut, _ := short.Calculate(prices)
	longOut, _ := long.Calculate(prices)
	for i := 9; i < len(prices); i++ {
		assert.InDelta(t, shortOut[i]-longOut[i], res.MACD[i], 1e-9)
	}
}

func TestMACD_ShortSeriesHasNoSignal(t *testing.T) {
	macd, err := NewMACD(12, 26, 9)
	require.NoError(t, err)

	res, err := macd.Calculate(Closes(generateTestData(30)))
	require.NoError(t, err)
	assert.True(t, res.MACD.Defined(29))
	assert.Equal(t, -1, res.Signal.FirstDefined())
}

func TestMACD_InvalidConfiguration(t *testing.T) {
	_, err := NewMACD(26, 12, 9)
	assert.True(t, errs.IsConfiguration(err))
	_, err = NewMACD(12, 12, 9)
	assert.True(t, errs.IsConfiguration(err))
	_, err = NewMACD(0, 26, 9)
	assert.True(t, errs.IsConfiguration(err))
	_, err = NewMACD(12, 26, 0)
	assert.True(t, errs.IsConfiguration(err))

	macd, _ := NewMACD(12, 26, 9)
	_, err = macd.Calculate(make([]float64, 25))
	assert.True(t, errs.IsInsufficientData(err))
}
