package notifications

import (
	"context"
	"fmt"
	"strings"

	"github.com/olaskid2005/SignalBot/internal/risk"
)

// Alert levels
const (
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
	LevelSuccess = "success"
)

// Notifier defines the interface for notification services
type Notifier interface {
	// SendAlert sends an alert with the specified level and message
	SendAlert(ctx context.Context, level, message string) error
}

// FormatProposal renders a trade proposal as a Markdown alert body
func FormatProposal(symbol, interval string, p *risk.TradeProposal) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*%s* signal for %s (%s)\n\n", p.Decision, symbol, interval)
	fmt.Fprintf(&b, "Entry: `%.4f`\n", p.EntryPrice)
	if p.Actionable() {
		fmt.Fprintf(&b, "Size: `%.6f`\n", p.PositionSize)
		fmt.Fprintf(&b, "Stop loss: `%.4f`\n", p.StopLossPrice)
		fmt.Fprintf(&b, "Take profit: `%.4f`\n", p.TakeProfitPrice)
		fmt.Fprintf(&b, "Risk/reward: `1:%.2f`", p.RiskRewardRatio)
	}
	return strings.TrimRight(b.String(), "\n")
}
