package indicators

// trailingMean writes the mean of every full window of `period` values taken
// from values[start:] into out, keeping a running sum so each step is O(1).
// out[i] is written for i >= start+period-1.
func trailingMean(values []float64, start, period int, out Output) {
	sum := 0.0
	for i := start; i < len(values); i++ {
		sum += values[i]
		if i-start >= period {
			sum -= values[i-period]
		}
		if i-start >= period-1 {
			out[i] = sum / float64(period)
		}
	}
}

// monotonicDeque tracks the extreme of a sliding window in amortised O(1).
// With keep = a >= b it yields the maximum; with a <= b the minimum.
type monotonicDeque struct {
	idx  []int
	vals []float64
	keep func(a, b float64) bool
}

func newMaxDeque(capacity int) *monotonicDeque {
	return &monotonicDeque{
		idx:  make([]int, 0, capacity),
		vals: make([]float64, 0, capacity),
		keep: func(a, b float64) bool { return a >= b },
	}
}

func newMinDeque(capacity int) *monotonicDeque {
	return &monotonicDeque{
		idx:  make([]int, 0, capacity),
		vals: make([]float64, 0, capacity),
		keep: func(a, b float64) bool { return a <= b },
	}
}

// push adds the value at index i, evicting dominated entries.
func (d *monotonicDeque) push(i int, v float64) {
	for n := len(d.vals); n > 0 && !d.keep(d.vals[n-1], v); n = len(d.vals) {
		d.idx = d.idx[:n-1]
		d.vals = d.vals[:n-1]
	}
	d.idx = append(d.idx, i)
	d.vals = append(d.vals, v)
}

// expire drops entries with an index below lo.
func (d *monotonicDeque) expire(lo int) {
	k := 0
	for k < len(d.idx) && d.idx[k] < lo {
		k++
	}
	if k > 0 {
		d.idx = d.idx[k:]
		d.vals = d.vals[k:]
	}
}

func (d *monotonicDeque) front() float64 {
	return d.vals[0]
}

func (d *monotonicDeque) reset() {
	d.idx = d.idx[:0]
	d.vals = d.vals[:0]
}

// midpointLine returns (highest high + lowest low)/2 over each trailing window.
func midpointLine(highs, lows []float64, period int) Output {
	out := newOutput(len(highs))
	maxQ := newMaxDeque(period)
	minQ := newMinDeque(period)
	for i := range highs {
		maxQ.push(i, highs[i])
		minQ.push(i, lows[i])
		lo := i - period + 1
		maxQ.expire(lo)
		minQ.expire(lo)
		if lo >= 0 {
			out[i] = (maxQ.front() + minQ.front()) / 2
		}
	}
	return out
}
