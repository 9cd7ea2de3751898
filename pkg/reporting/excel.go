package reporting

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/olaskid2005/SignalBot/internal/indicators"
	"github.com/olaskid2005/SignalBot/internal/risk"
	"github.com/olaskid2005/SignalBot/pkg/types"
)

const (
	indicatorsSheet = "Indicators"
	proposalSheet   = "Proposal"
)

var barHeaders = []string{"Timestamp", "Open", "High", "Low", "Close", "Volume"}

// ExportExcel writes the bars with one column per indicator series. Cells
// for undefined positions are left blank. A proposal, when given, goes to
// its own sheet.
func ExportExcel(path string, bars []types.OHLCV, snap *indicators.Snapshot, proposal *risk.TradeProposal) error {
	if err := EnsureParentDir(path); err != nil {
		return err
	}

	fx := excelize.NewFile()
	defer fx.Close()

	if err := fx.SetSheetName(fx.GetSheetName(0), indicatorsSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	headerStyle, err := fx.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"366092"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeIndicatorSheet(fx, bars, snap, headerStyle); err != nil {
		return err
	}
	if proposal != nil {
		if err := writeProposalSheet(fx, proposal, headerStyle); err != nil {
			return err
		}
	}

	if err := fx.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func writeIndicatorSheet(fx *excelize.File, bars []types.OHLCV, snap *indicators.Snapshot, headerStyle int) error {
	var keys []string
	if snap != nil {
		keys = snap.Keys()
	}

	headers := append(append([]string{}, barHeaders...), keys...)
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := fx.SetCellValue(indicatorsSheet, cell, h); err != nil {
			return fmt.Errorf("failed to write header %s: %w", h, err)
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := fx.SetCellStyle(indicatorsSheet, "A1", lastHeader, headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for r, bar := range bars {
		row := r + 2
		values := []interface{}{
			bar.Timestamp.Format("2006-01-02 15:04:05"),
			bar.Open, bar.High, bar.Low, bar.Close, bar.Volume,
		}
		for _, key := range keys {
			if out := snap.Series[key]; out.Defined(r) {
				values = append(values, out[r])
			} else {
				values = append(values, nil)
			}
		}
		for c, v := range values {
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			if err := fx.SetCellValue(indicatorsSheet, cell, v); err != nil {
				return fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
	}

	if err := fx.SetPanes(indicatorsSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}
	return nil
}

func writeProposalSheet(fx *excelize.File, p *risk.TradeProposal, headerStyle int) error {
	if _, err := fx.NewSheet(proposalSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	rows := [][]interface{}{
		{"Field", "Value"},
		{"Decision", p.Decision.String()},
		{"Entry Price", p.EntryPrice},
		{"Position Size", p.PositionSize},
		{"Stop Loss", p.StopLossPrice},
		{"Take Profit", p.TakeProfitPrice},
		{"Risk/Reward", p.RiskRewardRatio},
		{"Risk Amount", p.RiskAmount},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := fx.SetSheetRow(proposalSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write proposal row: %w", err)
		}
	}
	return fx.SetCellStyle(proposalSheet, "A1", "B1", headerStyle)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
