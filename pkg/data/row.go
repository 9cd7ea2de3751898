package data

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/olaskid2005/SignalBot/pkg/types"
	"github.com/xuri/excelize/v2"
)

// fallback layouts tried after the configured one
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseTimestamp accepts the configured layout, common ISO layouts, unix
// seconds or milliseconds and, when allowSerial is set, Excel date serials
func parseTimestamp(raw, layout string, allowSerial bool) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if layout != "" {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	for _, l := range dateLayouts {
		if ts, err := time.Parse(l, raw); err == nil {
			return ts, nil
		}
	}

	num, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognised timestamp %q", raw)
	}
	switch {
	case num >= 1e11:
		return time.UnixMilli(int64(num)).UTC(), nil
	case num >= 1e8:
		return time.Unix(int64(num), 0).UTC(), nil
	case allowSerial:
		return excelize.ExcelDateToTime(num, false)
	default:
		return time.Time{}, fmt.Errorf("unrecognised timestamp %q", raw)
	}
}

// parseRow converts one record into a bar and checks OHLC sanity
func parseRow(record []string, format CSVColumnMapping, allowSerial bool) (types.OHLCV, error) {
	if len(record) < format.MinColumns {
		return types.OHLCV{}, fmt.Errorf("insufficient columns (expected %d, got %d)", format.MinColumns, len(record))
	}

	timestamp, err := parseTimestamp(record[format.TimestampCol], format.DateFormat, allowSerial)
	if err != nil {
		return types.OHLCV{}, err
	}

	names := [5]string{"open", "high", "low", "close", "volume"}
	cols := [5]int{format.OpenCol, format.HighCol, format.LowCol, format.CloseCol, format.VolumeCol}
	var values [5]float64
	for i, col := range cols {
		v, err := strconv.ParseFloat(strings.TrimSpace(record[col]), 64)
		if err != nil {
			return types.OHLCV{}, fmt.Errorf("invalid %s %q", names[i], record[col])
		}
		values[i] = v
	}

	bar := types.OHLCV{
		Timestamp: timestamp,
		Open:      values[0],
		High:      values[1],
		Low:       values[2],
		Close:     values[3],
		Volume:    values[4],
	}
	if err := validateBar(bar); err != nil {
		return types.OHLCV{}, err
	}
	return bar, nil
}
