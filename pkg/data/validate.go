package data

import (
	"fmt"
	"math"
	"time"

	"github.com/olaskid2005/SignalBot/pkg/types"
)

func validateBar(candle types.OHLCV) error {
	for _, v := range []float64{candle.Open, candle.High, candle.Low, candle.Close, candle.Volume} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("non-finite value")
		}
	}
	if candle.Open <= 0 || candle.High <= 0 || candle.Low <= 0 || candle.Close <= 0 {
		return fmt.Errorf("prices must be positive")
	}
	if candle.Volume < 0 {
		return fmt.Errorf("volume (%.4f) cannot be negative", candle.Volume)
	}
	if candle.High < candle.Low {
		return fmt.Errorf("high (%.4f) cannot be less than low (%.4f)", candle.High, candle.Low)
	}
	if candle.High < candle.Open || candle.High < candle.Close {
		return fmt.Errorf("high (%.4f) must be >= open (%.4f) and close (%.4f)", candle.High, candle.Open, candle.Close)
	}
	if candle.Low > candle.Open || candle.Low > candle.Close {
		return fmt.Errorf("low (%.4f) must be <= open (%.4f) and close (%.4f)", candle.Low, candle.Open, candle.Close)
	}
	return nil
}

// ValidateData checks every bar for sane prices and the series for strict
// chronological order
func ValidateData(data []types.OHLCV) error {
	if len(data) == 0 {
		return fmt.Errorf("no data provided")
	}
	for i, candle := range data {
		if err := validateBar(candle); err != nil {
			return fmt.Errorf("invalid price data at index %d: %w", i, err)
		}
	}
	return ValidateTimeSequence(data)
}

// ValidateTimeSequence ensures data is in chronological order without
// duplicate timestamps
func ValidateTimeSequence(data []types.OHLCV) error {
	for i := 1; i < len(data); i++ {
		if data[i].Timestamp.Before(data[i-1].Timestamp) {
			return fmt.Errorf("data not in chronological order at index %d: %s comes after %s",
				i, data[i].Timestamp.Format(time.RFC3339), data[i-1].Timestamp.Format(time.RFC3339))
		}
		if data[i].Timestamp.Equal(data[i-1].Timestamp) {
			return fmt.Errorf("duplicate timestamp at index %d: %s",
				i, data[i].Timestamp.Format(time.RFC3339))
		}
	}
	return nil
}
