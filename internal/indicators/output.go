package indicators

import (
	"math"

	"github.com/olaskid2005/SignalBot/pkg/types"
)

// Undefined marks positions an indicator cannot compute yet (or, for lagging
// lines, anymore). It is NaN so it can never be mistaken for a computed zero.
var Undefined = math.NaN()

// Output is an indicator series aligned index-for-index with its input.
type Output []float64

func newOutput(n int) Output {
	out := make(Output, n)
	for i := range out {
		out[i] = Undefined
	}
	return out
}

// Defined reports whether position i holds a computed value.
func (o Output) Defined(i int) bool {
	return i >= 0 && i < len(o) && !math.IsNaN(o[i])
}

// At returns the value at i and whether it is defined.
func (o Output) At(i int) (float64, bool) {
	if !o.Defined(i) {
		return 0, false
	}
	return o[i], true
}

// Last returns the final value of the series and whether it is defined.
func (o Output) Last() (float64, bool) {
	return o.At(len(o) - 1)
}

// FirstDefined returns the index of the first computed value, or -1.
func (o Output) FirstDefined() int {
	for i := range o {
		if o.Defined(i) {
			return i
		}
	}
	return -1
}

// CountDefined returns the number of computed positions.
func (o Output) CountDefined() int {
	n := 0
	for i := range o {
		if o.Defined(i) {
			n++
		}
	}
	return n
}

// Closes extracts the close prices of a bar series.
func Closes(data []types.OHLCV) []float64 {
	closes := make([]float64, len(data))
	for i, c := range data {
		closes[i] = c.Close
	}
	return closes
}

// TypicalPrices extracts (high+low+close)/3 for every bar.
func TypicalPrices(data []types.OHLCV) []float64 {
	tp := make([]float64, len(data))
	for i, c := range data {
		tp[i] = c.TypicalPrice()
	}
	return tp
}
