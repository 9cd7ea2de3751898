package data

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/olaskid2005/SignalBot/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const sampleCSV = `timestamp,open,high,low,close,volume
2024-01-01 02:00:00,102,104,101,103,12
2024-01-01 00:00:00,100,101,99,100.5,10
2024-01-01 01:00:00,100.5,103,100,102,11
2024-01-01 01:00:00,100.5,103,100,102,11
2024-01-01 03:00:00,not-a-number,104,101,103,12
2024-01-01 04:00:00,103,102,101,103,12
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCSVProvider_LoadData(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	p := NewCSVProvider(logger.Wrap(zap.New(core)))

	bars, err := p.LoadData(context.Background(), writeTemp(t, "bars.csv", sampleCSV))
	require.NoError(t, err)
	require.Len(t, bars, 3)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), bars[0].Timestamp)
	assert.Equal(t, 100.5, bars[0].Close)
	assert.Equal(t, 102.0, bars[1].Close)
	assert.Equal(t, 103.0, bars[2].Close)
	assert.NoError(t, ValidateData(bars))

	// bad open and high below open
	assert.Equal(t, 2, logs.FilterMessage("skipping csv row").Len())

	reordered := logs.FilterMessage("reordered bars").All()
	require.Len(t, reordered, 1)
	assert.Equal(t, int64(1), reordered[0].ContextMap()["out_of_order"])
	dropped := logs.FilterMessage("dropped duplicate bars").All()
	require.Len(t, dropped, 1)
	assert.Equal(t, int64(1), dropped[0].ContextMap()["dropped"])
}

func TestCSVProvider_CleanInputLogsNoRepairs(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	p := NewCSVProvider(logger.Wrap(zap.New(core)))

	content := "timestamp,open,high,low,close,volume\n" +
		"2024-01-01 00:00:00,100,101,99,100.5,10\n" +
		"2024-01-01 01:00:00,100.5,103,100,102,11\n"
	bars, err := p.LoadData(context.Background(), writeTemp(t, "clean.csv", content))
	require.NoError(t, err)
	assert.Len(t, bars, 2)
	assert.Zero(t, logs.Len())
}

func TestCSVProvider_BybitFormat(t *testing.T) {
	content := "startTime,open,high,low,close,volume\n" +
		"1704067200000,100,101,99,100,5\n" +
		"1704070800000,100,102,99,101,6\n"
	p := NewCSVProviderWithFormat(BybitCSVFormat, nil)

	bars, err := p.LoadData(context.Background(), writeTemp(t, "klines.csv", content))
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), bars[0].Timestamp)
	assert.Equal(t, time.Hour, bars[1].Timestamp.Sub(bars[0].Timestamp))
}

func TestCSVProvider_Errors(t *testing.T) {
	p := NewCSVProvider(nil)
	_, err := p.LoadData(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)

	_, err = p.LoadData(context.Background(), writeTemp(t, "empty.csv", ""))
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.LoadData(ctx, writeTemp(t, "bars.csv", sampleCSV))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExcelProvider_LoadData(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Date", "Open", "High", "Low", "Close", "Volume"},
		{"2024-01-02", 101, 103, 100, 102, 20},
		{"2024-01-01", 100, 102, 99, 101, 10},
		{"bad", 1, 1, 1, 1, 1},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	path := filepath.Join(t.TempDir(), "bars.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	core, logs := observer.New(zapcore.WarnLevel)
	bars, err := NewExcelProvider("", logger.Wrap(zap.New(core))).LoadData(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), bars[0].Timestamp)
	assert.Equal(t, 102.0, bars[1].Close)
	assert.Equal(t, 1, logs.FilterMessage("skipping excel row").Len())
	assert.Equal(t, 1, logs.FilterMessage("reordered bars").Len())
	assert.Zero(t, logs.FilterMessage("dropped duplicate bars").Len())

	_, err = NewExcelProvider("Missing", nil).LoadData(context.Background(), path)
	assert.Error(t, err)
}

func TestParseTimestamp_ExcelSerial(t *testing.T) {
	ts, err := parseTimestamp("45292", "", true)
	require.NoError(t, err)
	assert.Equal(t, 2024, ts.Year())
	assert.Equal(t, time.January, ts.Month())
	assert.Equal(t, 1, ts.Day())

	_, err = parseTimestamp("45292", "", false)
	assert.Error(t, err)
}
