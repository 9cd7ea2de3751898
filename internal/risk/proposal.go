package risk

import "github.com/olaskid2005/SignalBot/pkg/types"

// TradeProposal is a sized trade ready for review. A Hold proposal carries
// only the decision and entry price.
type TradeProposal struct {
	Decision        types.Decision `json:"decision"`
	EntryPrice      float64        `json:"entry_price"`
	PositionSize    float64        `json:"position_size"`
	StopLossPrice   float64        `json:"stop_loss_price,omitempty"`
	TakeProfitPrice float64        `json:"take_profit_price,omitempty"`
	RiskRewardRatio float64        `json:"risk_reward_ratio,omitempty"`
	RiskAmount      float64        `json:"risk_amount,omitempty"`
}

// Actionable reports whether the proposal opens a position
func (p *TradeProposal) Actionable() bool {
	return p.Decision != types.DecisionHold && p.PositionSize > 0
}

// Notional is the position value at entry
func (p *TradeProposal) Notional() float64 {
	return p.EntryPrice * p.PositionSize
}
