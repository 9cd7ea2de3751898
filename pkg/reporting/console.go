package reporting

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/olaskid2005/SignalBot/internal/indicators"
	"github.com/olaskid2005/SignalBot/internal/risk"
	"github.com/olaskid2005/SignalBot/internal/scoring"
	"github.com/olaskid2005/SignalBot/internal/signal"
	"github.com/olaskid2005/SignalBot/pkg/types"
)

// Console renders pipeline results as tables
type Console struct {
	out io.Writer
}

// NewConsole creates a console reporter writing to out, or stdout when nil
func NewConsole(out io.Writer) *Console {
	if out == nil {
		out = os.Stdout
	}
	return &Console{out: out}
}

func (c *Console) newTable(title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(c.out)
	t.SetTitle(title)
	t.SetStyle(table.StyleRounded)
	return t
}

// PrintProposal prints the sized trade proposal
func (c *Console) PrintProposal(p *risk.TradeProposal) {
	t := c.newTable("TRADE PROPOSAL")
	t.AppendRows([]table.Row{
		{"Decision", p.Decision.String()},
		{"Entry Price", formatPrice(p.EntryPrice)},
	})
	if p.Actionable() {
		t.AppendSeparator()
		t.AppendRows([]table.Row{
			{"Position Size", fmt.Sprintf("%.6f", p.PositionSize)},
			{"Notional", formatPrice(p.Notional())},
			{"Risk Amount", formatPrice(p.RiskAmount)},
			{"Stop Loss", formatPrice(p.StopLossPrice)},
			{"Take Profit", formatPrice(p.TakeProfitPrice)},
			{"Risk/Reward", fmt.Sprintf("1:%.2f", p.RiskRewardRatio)},
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 15, Align: text.AlignLeft},
		{Number: 2, WidthMin: 20, Align: text.AlignRight},
	})
	t.Render()
}

// PrintEvaluation prints the fusion features, score and decision path
func (c *Console) PrintEvaluation(e *signal.Evaluation) {
	t := c.newTable("SIGNAL EVALUATION")
	t.AppendHeader(table.Row{"Feature", "Value"})
	for i, name := range scoring.FeatureNames {
		t.AppendRow(table.Row{name, fmt.Sprintf("%.4f", e.Features[i])})
	}
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"score", fmt.Sprintf("%.4f", e.Score)},
		{"path", e.Path},
		{"decision", e.Decision.String()},
	})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})
	t.Render()
}

// PrintSnapshot prints the latest value of every indicator series. Series
// that are still warming up show as "n/a"; failed indicators are listed
// with their error.
func (c *Console) PrintSnapshot(s *indicators.Snapshot) {
	t := c.newTable(fmt.Sprintf("INDICATORS (%d bars, %s)", s.Bars, s.Timestamp.Format("2006-01-02 15:04")))
	t.AppendHeader(table.Row{"Series", "Latest"})
	for _, key := range s.Keys() {
		value := "n/a"
		if v, ok := s.Latest(key); ok {
			value = fmt.Sprintf("%.4f", v)
		}
		t.AppendRow(table.Row{key, value})
	}
	if len(s.Errors) > 0 {
		t.AppendSeparator()
		for _, name := range sortedKeys(s.Errors) {
			t.AppendRow(table.Row{name, "error: " + s.Errors[name].Error()})
		}
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})
	t.Render()
}

// PrintAdjustments prints the threshold changes made by the tuner
func (c *Console) PrintAdjustments(adjustments []signal.Adjustment) {
	if len(adjustments) == 0 {
		return
	}
	t := c.newTable("THRESHOLD ADJUSTMENTS")
	t.AppendHeader(table.Row{"Parameter", "From", "To"})
	for _, a := range adjustments {
		t.AppendRow(table.Row{a.Parameter, fmt.Sprintf("%.2f", a.From), fmt.Sprintf("%.2f", a.To)})
	}
	t.Render()
}

// PrintTicker prints the live market summary
func (c *Console) PrintTicker(tk *types.Ticker) {
	t := c.newTable("LIVE TICKER " + tk.Symbol)
	t.AppendRows([]table.Row{
		{"Last Price", formatPrice(tk.Price)},
		{"Bid / Ask", fmt.Sprintf("%s / %s", formatPrice(tk.Bid), formatPrice(tk.Ask))},
		{"24h High", formatPrice(tk.High24h)},
		{"24h Low", formatPrice(tk.Low24h)},
		{"24h Volume", fmt.Sprintf("%.4f", tk.Volume)},
		{"24h Change", fmt.Sprintf("%+.2f%%", tk.Change24h*100)},
	})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 15, Align: text.AlignLeft},
		{Number: 2, WidthMin: 20, Align: text.AlignRight},
	})
	t.Render()
}

func formatPrice(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
