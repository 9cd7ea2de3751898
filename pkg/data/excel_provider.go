package data

import (
	"context"
	"fmt"

	"github.com/olaskid2005/SignalBot/internal/logger"
	"github.com/olaskid2005/SignalBot/pkg/types"
	"github.com/xuri/excelize/v2"
)

// ExcelProvider implements DataProvider for .xlsx workbooks. The first row of
// the sheet is a header; timestamps may be text, unix time or Excel serials.
type ExcelProvider struct {
	sheet  string
	format CSVColumnMapping
	log    logger.Logger
}

// NewExcelProvider reads sheet, or the first sheet when sheet is empty
func NewExcelProvider(sheet string, log logger.Logger) *ExcelProvider {
	if log == nil {
		log = logger.NewNop()
	}
	return &ExcelProvider{sheet: sheet, format: DefaultCSVFormat, log: log}
}

// GetName returns the name of the data provider
func (p *ExcelProvider) GetName() string {
	return "Excel Provider"
}

// LoadData loads historical data from an Excel workbook
func (p *ExcelProvider) LoadData(ctx context.Context, source string) ([]types.OHLCV, error) {
	f, err := excelize.OpenFile(source)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := p.sheet
	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("no sheets found in Excel file")
		}
		sheetName = sheets[0]
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("insufficient data in Excel file: %d rows", len(rows))
	}

	var data []types.OHLCV
	for i := 1; i < len(rows); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		bar, err := parseRow(rows[i], p.format, true)
		if err != nil {
			p.log.Warn("skipping excel row",
				logger.String("sheet", sheetName),
				logger.Int("row", i+1),
				logger.Err(err))
			continue
		}
		data = append(data, bar)
	}

	data = normalizeBars(data, source, p.log)
	p.log.Debug("loaded bars", logger.String("source", source), logger.String("sheet", sheetName), logger.Int("bars", len(data)))
	return data, nil
}
