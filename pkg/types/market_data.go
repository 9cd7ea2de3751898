package types

import "time"

// OHLCV is a single bar. Series of bars are expected in chronological order
// without duplicate timestamps; the indicator engine does not check this.
type OHLCV struct {
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
	Timestamp time.Time
}

// TypicalPrice returns (high+low+close)/3.
func (c OHLCV) TypicalPrice() float64 {
	return (c.High + c.Low + c.Close) / 3.0
}

// Ticker is a live 24h market summary for one symbol. Change24h is a
// fraction, so 0.01 is a 1% rise.
type Ticker struct {
	Symbol    string
	Price     float64
	Bid       float64
	Ask       float64
	High24h   float64
	Low24h    float64
	Volume    float64
	Change24h float64
	Timestamp time.Time
}
