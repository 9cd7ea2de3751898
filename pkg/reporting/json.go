package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/olaskid2005/SignalBot/internal/indicators"
	"github.com/olaskid2005/SignalBot/internal/risk"
	"github.com/olaskid2005/SignalBot/internal/signal"
	"github.com/olaskid2005/SignalBot/pkg/types"
)

// Report is the JSON document written for one pipeline run
type Report struct {
	Symbol      string              `json:"symbol"`
	Interval    string              `json:"interval"`
	GeneratedAt time.Time           `json:"generated_at"`
	BarTime     time.Time           `json:"bar_time"`
	Evaluation  *signal.Evaluation  `json:"evaluation,omitempty"`
	Proposal    *risk.TradeProposal `json:"proposal"`
	Indicators  map[string]*float64 `json:"indicators,omitempty"`
	Adjustments []signal.Adjustment `json:"adjustments,omitempty"`
	Ticker      *types.Ticker       `json:"ticker,omitempty"`
}

// LatestValues collects the last value of every series; undefined values
// become nulls
func LatestValues(snap *indicators.Snapshot) map[string]*float64 {
	if snap == nil {
		return nil
	}
	values := make(map[string]*float64, len(snap.Series))
	for _, key := range snap.Keys() {
		if v, ok := snap.Latest(key); ok {
			values[key] = &v
		} else {
			values[key] = nil
		}
	}
	return values
}

// MarshalReport formats a report as indented JSON
func MarshalReport(r *Report) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return data, nil
}

// WriteJSON writes the report to path
func WriteJSON(path string, r *Report) error {
	data, err := MarshalReport(r)
	if err != nil {
		return err
	}
	if err := EnsureParentDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
