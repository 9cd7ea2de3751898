package data

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/olaskid2005/SignalBot/internal/logger"
	"github.com/olaskid2005/SignalBot/pkg/types"
)

// CSVProvider implements DataProvider for CSV files. Malformed rows are
// logged and skipped; the result is sorted and de-duplicated.
type CSVProvider struct {
	format CSVColumnMapping
	log    logger.Logger
}

// NewCSVProvider creates a new CSV data provider with default format
func NewCSVProvider(log logger.Logger) *CSVProvider {
	return NewCSVProviderWithFormat(DefaultCSVFormat, log)
}

// NewCSVProviderWithFormat creates a new CSV data provider with custom format
func NewCSVProviderWithFormat(format CSVColumnMapping, log logger.Logger) *CSVProvider {
	if log == nil {
		log = logger.NewNop()
	}
	return &CSVProvider{format: format, log: log}
}

// GetName returns the name of the data provider
func (p *CSVProvider) GetName() string {
	return "CSV Provider"
}

// LoadData loads historical data from a CSV file with a header row
func (p *CSVProvider) LoadData(ctx context.Context, source string) ([]types.OHLCV, error) {
	file, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("open csv %s: %w", source, err)
	}
	defer file.Close()

	return p.read(ctx, file, source)
}

func (p *CSVProvider) read(ctx context.Context, r io.Reader, source string) ([]types.OHLCV, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	// Skip header
	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("csv %s is empty", source)
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	var data []types.OHLCV
	lineNum := 1
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("error reading CSV at line %d: %w", lineNum+1, err)
		}
		lineNum++

		bar, err := parseRow(record, p.format, false)
		if err != nil {
			p.log.Warn("skipping csv row",
				logger.String("source", source),
				logger.Int("line", lineNum),
				logger.Err(err))
			continue
		}
		data = append(data, bar)
	}

	data = normalizeBars(data, source, p.log)
	p.log.Debug("loaded bars", logger.String("source", source), logger.Int("bars", len(data)))
	return data, nil
}
