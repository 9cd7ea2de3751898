package data

import (
	"context"

	"github.com/olaskid2005/SignalBot/pkg/types"
)

// DataProvider loads a chronological bar series from a source
type DataProvider interface {
	// LoadData loads historical data from the specified source
	LoadData(ctx context.Context, source string) ([]types.OHLCV, error)

	// GetName returns the name of the data provider
	GetName() string
}

// CSVColumnMapping defines the column positions for different tabular formats
type CSVColumnMapping struct {
	TimestampCol int
	OpenCol      int
	HighCol      int
	LowCol       int
	CloseCol     int
	VolumeCol    int
	MinColumns   int
	DateFormat   string
}

// Predefined formats
var (
	DefaultCSVFormat = CSVColumnMapping{
		TimestampCol: 0,
		OpenCol:      1,
		HighCol:      2,
		LowCol:       3,
		CloseCol:     4,
		VolumeCol:    5,
		MinColumns:   6,
		DateFormat:   "2006-01-02 15:04:05",
	}

	// BybitCSVFormat matches kline exports: start time in unix milliseconds
	// followed by open, high, low, close, volume
	BybitCSVFormat = CSVColumnMapping{
		TimestampCol: 0,
		OpenCol:      1,
		HighCol:      2,
		LowCol:       3,
		CloseCol:     4,
		VolumeCol:    5,
		MinColumns:   6,
		DateFormat:   "",
	}
)
