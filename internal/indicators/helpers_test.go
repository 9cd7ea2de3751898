package indicators

import (
	"math"
	"time"

	"github.com/olaskid2005/SignalBot/pkg/types"
)

var testStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// generateTestData returns a deterministic oscillating series with a slight
// upward drift
func generateTestData(count int) []types.OHLCV {
	data := make([]types.OHLCV, count)
	prevClose := 100.0
	for i := 0; i < count; i++ {
		price := 100.0 + 10*math.Sin(float64(i)/5) + float64(i)*0.1
		data[i] = types.OHLCV{
			Timestamp: testStart.Add(time.Duration(i) * time.Hour),
			Open:      prevClose,
			High:      math.Max(prevClose, price) + 1.0,
			Low:       math.Min(prevClose, price) - 1.0,
			Close:     price,
			Volume:    1000.0 + float64(i%10)*10,
		}
		prevClose = price
	}
	return data
}

func barsFromCloses(closes []float64) []types.OHLCV {
	data := make([]types.OHLCV, len(closes))
	for i, c := range closes {
		data[i] = types.OHLCV{
			Timestamp: testStart.Add(time.Duration(i) * time.Hour),
			Open:      c,
			High:      c + 1,
			Low:       c - 1,
			Close:     c,
			Volume:    1000,
		}
	}
	return data
}

func risingPrices(count int) []float64 {
	prices := make([]float64, count)
	for i := range prices {
		prices[i] = 100 + float64(i)
	}
	return prices
}
