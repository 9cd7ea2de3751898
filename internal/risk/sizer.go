package risk

import (
	"math"

	errs "github.com/olaskid2005/SignalBot/internal/errors"
	"github.com/olaskid2005/SignalBot/pkg/types"
)

// Sizer implements fixed-fractional position sizing: every trade risks the
// same fraction of the account balance between entry and stop-loss
type Sizer struct {
	balance      float64
	riskPerTrade float64
}

// NewSizer creates a sizer for an account balance and a risk fraction in (0, 1]
func NewSizer(balance, riskPerTrade float64) (*Sizer, error) {
	if !(balance > 0) || math.IsInf(balance, 0) {
		return nil, errs.NewConfigurationError("Sizer", "new", "balance must be greater than 0").
			WithContext("balance", balance)
	}
	if !(riskPerTrade > 0 && riskPerTrade <= 1) {
		return nil, errs.NewConfigurationError("Sizer", "new", "risk per trade must be within (0, 1]").
			WithContext("risk_per_trade", riskPerTrade)
	}
	return &Sizer{balance: balance, riskPerTrade: riskPerTrade}, nil
}

// Balance returns the account balance
func (s *Sizer) Balance() float64 {
	return s.balance
}

// RiskPerTrade returns the risked fraction
func (s *Sizer) RiskPerTrade() float64 {
	return s.riskPerTrade
}

// RiskAmount is the currency amount put at risk per trade
func (s *Sizer) RiskAmount() float64 {
	return s.balance * s.riskPerTrade
}

// PositionSize returns riskAmount / stopLossDistance
func (s *Sizer) PositionSize(stopLossDistance float64) (float64, error) {
	if !(stopLossDistance > 0) || math.IsInf(stopLossDistance, 0) {
		return 0, errs.NewDegenerateInputError("Sizer", "position_size", "stop-loss distance must be positive and finite").
			WithContext("stop_loss_distance", stopLossDistance)
	}
	return finite("position_size", s.RiskAmount()/stopLossDistance)
}

// StopLossPrice returns the long-side stop: entry - riskAmount/positionSize
func (s *Sizer) StopLossPrice(entry, positionSize float64) (float64, error) {
	if !(positionSize > 0) {
		return 0, errs.NewDegenerateInputError("Sizer", "stop_loss", "position size must be positive").
			WithContext("position_size", positionSize)
	}
	return finite("stop_loss", entry-s.RiskAmount()/positionSize)
}

// TakeProfitPrice returns entry + (entry - stop) * riskReward. With a stop
// above entry (short side) the target lands below entry.
func (s *Sizer) TakeProfitPrice(entry, stopLoss, riskReward float64) (float64, error) {
	if !(riskReward > 0) {
		return 0, errs.NewDegenerateInputError("Sizer", "take_profit", "risk/reward ratio must be positive").
			WithContext("risk_reward", riskReward)
	}
	return finite("take_profit", entry+(entry-stopLoss)*riskReward)
}

// Propose sizes a trade for decision. Hold yields an empty proposal. Buy
// places the stop below entry and Sell mirrors it above.
func (s *Sizer) Propose(decision types.Decision, entry, stopLossDistance, riskReward float64) (*TradeProposal, error) {
	if decision == types.DecisionHold {
		return &TradeProposal{Decision: decision, EntryPrice: entry}, nil
	}
	if !(entry > 0) || math.IsInf(entry, 0) {
		return nil, errs.NewDegenerateInputError("Sizer", "propose", "entry price must be positive and finite").
			WithContext("entry", entry)
	}

	size, err := s.PositionSize(stopLossDistance)
	if err != nil {
		return nil, err
	}

	var stop float64
	if decision == types.DecisionSell {
		stop, err = finite("stop_loss", entry+s.RiskAmount()/size)
	} else {
		stop, err = s.StopLossPrice(entry, size)
	}
	if err != nil {
		return nil, err
	}
	if stop <= 0 {
		return nil, errs.NewDegenerateInputError("Sizer", "propose", "stop-loss price is not positive").
			WithContext("stop_loss", stop)
	}

	target, err := s.TakeProfitPrice(entry, stop, riskReward)
	if err != nil {
		return nil, err
	}

	return &TradeProposal{
		Decision:        decision,
		EntryPrice:      entry,
		PositionSize:    size,
		StopLossPrice:   stop,
		TakeProfitPrice: target,
		RiskRewardRatio: riskReward,
		RiskAmount:      s.RiskAmount(),
	}, nil
}

func finite(op string, v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errs.NewDegenerateInputError("Sizer", op, "result is not finite")
	}
	return v, nil
}
