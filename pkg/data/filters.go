package data

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/olaskid2005/SignalBot/pkg/types"
)

// FilterByPeriod keeps the bars within period of the latest timestamp
func FilterByPeriod(data []types.OHLCV, period time.Duration) []types.OHLCV {
	if period <= 0 || len(data) == 0 {
		return data
	}

	cutoffTime := data[len(data)-1].Timestamp.Add(-period)
	startIdx := sort.Search(len(data), func(i int) bool {
		return !data[i].Timestamp.Before(cutoffTime)
	})
	return data[startIdx:]
}

// FilterByDateRange filters data to a specific inclusive date range
func FilterByDateRange(data []types.OHLCV, start, end time.Time) []types.OHLCV {
	var filtered []types.OHLCV
	for _, candle := range data {
		if !candle.Timestamp.Before(start) && !candle.Timestamp.After(end) {
			filtered = append(filtered, candle)
		}
	}
	return filtered
}

// ParseDate reads an RFC 3339 timestamp or a plain 2006-01-02 date, in UTC
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.ParseInLocation("2006-01-02", s, time.UTC)
}

// LastN returns the trailing n bars
func LastN(data []types.OHLCV, n int) []types.OHLCV {
	if n <= 0 || n >= len(data) {
		return data
	}
	return data[len(data)-n:]
}

// SortByTimestamp returns a copy sorted in ascending time order
func SortByTimestamp(data []types.OHLCV) []types.OHLCV {
	sorted := make([]types.OHLCV, len(data))
	copy(sorted, data)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	return sorted
}

// RemoveDuplicates drops bars whose timestamp equals the previous one,
// keeping the first occurrence. Input must be sorted.
func RemoveDuplicates(data []types.OHLCV) []types.OHLCV {
	if len(data) <= 1 {
		return data
	}
	filtered := make([]types.OHLCV, 0, len(data))
	filtered = append(filtered, data[0])
	for _, candle := range data[1:] {
		if !candle.Timestamp.Equal(filtered[len(filtered)-1].Timestamp) {
			filtered = append(filtered, candle)
		}
	}
	return filtered
}

// ParseTrailingPeriod parses period strings like "7d", "30d", "180days" or
// a Go duration such as "168h"
func ParseTrailingPeriod(s string) (time.Duration, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if strings.HasSuffix(s, "days") {
		s = strings.TrimSuffix(s, "days") + "d"
	}
	if strings.HasSuffix(s, "d") {
		n, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil || n <= 0 {
			return 0, false
		}
		return time.Duration(n) * 24 * time.Hour, true
	}
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d, true
	}
	return 0, false
}

// ConvertIntervalToMinutes converts interval strings like "5m", "1h", "4h" to
// the minute numbers Bybit expects. "D", "W" and "M" pass through unchanged.
func ConvertIntervalToMinutes(interval string) string {
	if _, err := strconv.Atoi(interval); err == nil {
		return interval
	}
	switch interval {
	case "D", "W", "M":
		return interval
	}

	interval = strings.ToLower(strings.TrimSpace(interval))
	if len(interval) < 2 {
		return interval
	}
	num, err := strconv.Atoi(interval[:len(interval)-1])
	if err != nil {
		return interval
	}

	switch interval[len(interval)-1:] {
	case "m":
		return strconv.Itoa(num)
	case "h":
		return strconv.Itoa(num * 60)
	case "d":
		if num == 1 {
			return "D"
		}
		return strconv.Itoa(num * 24 * 60)
	case "w":
		if num == 1 {
			return "W"
		}
		return strconv.Itoa(num * 7 * 24 * 60)
	default:
		return interval
	}
}
