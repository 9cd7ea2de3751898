// Package orchestrator runs the signal pipeline: indicators, fusion, sizing
// and the surrounding logging, metrics and journaling.
package orchestrator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/olaskid2005/SignalBot/internal/config"
	errs "github.com/olaskid2005/SignalBot/internal/errors"
	"github.com/olaskid2005/SignalBot/internal/indicators"
	"github.com/olaskid2005/SignalBot/internal/journal"
	"github.com/olaskid2005/SignalBot/internal/logger"
	"github.com/olaskid2005/SignalBot/internal/monitoring"
	"github.com/olaskid2005/SignalBot/internal/notifications"
	"github.com/olaskid2005/SignalBot/internal/risk"
	"github.com/olaskid2005/SignalBot/internal/scoring"
	"github.com/olaskid2005/SignalBot/internal/signal"
	"github.com/olaskid2005/SignalBot/pkg/types"
)

// Recorder persists pipeline results
type Recorder interface {
	Record(ctx context.Context, e journal.Entry) (int64, error)
}

// Result is the outcome of one pipeline run
type Result struct {
	Snapshot   *indicators.Snapshot
	Evaluation *signal.Evaluation
	Proposal   *risk.TradeProposal
	BarTime    time.Time
	JournalID  int64
}

// Advisor turns a bar window into a decision and a sized proposal. The
// thresholds are owned by the advisor's tuner; Run and Tune serialize on
// the advisor so one instance may be shared between goroutines.
type Advisor struct {
	symbol   string
	interval string

	suite  *indicators.Suite
	fusion *signal.Fusion
	tuner  *signal.Tuner
	scorer scoring.Scorer
	sizer  *risk.Sizer

	stopLossPct  float64
	riskReward   float64
	fitOnHistory bool

	log      logger.Logger
	health   *monitoring.HealthChecker
	recorder Recorder
	notifier notifications.Notifier

	mu sync.Mutex
}

// Option customizes an Advisor
type Option func(*Advisor)

// WithLogger sets the logger
func WithLogger(log logger.Logger) Option {
	return func(a *Advisor) { a.log = log }
}

// WithHealthChecker reports each run to h
func WithHealthChecker(h *monitoring.HealthChecker) Option {
	return func(a *Advisor) { a.health = h }
}

// WithRecorder journals each successful run
func WithRecorder(r Recorder) Option {
	return func(a *Advisor) { a.recorder = r }
}

// WithNotifier alerts on every actionable proposal
func WithNotifier(n notifications.Notifier) Option {
	return func(a *Advisor) { a.notifier = n }
}

// WithScorer replaces the scorer built from the configuration
func WithScorer(s scoring.Scorer) Option {
	return func(a *Advisor) { a.scorer = s }
}

// NewAdvisor wires the pipeline from cfg
func NewAdvisor(cfg *config.Config, opts ...Option) (*Advisor, error) {
	if cfg == nil {
		return nil, errs.NewConfigurationError("Advisor", "new", "configuration is required")
	}

	suite, err := indicators.NewSuite(cfg.Indicators)
	if err != nil {
		return nil, fmt.Errorf("failed to create indicator suite: %w", err)
	}
	fusion, err := signal.NewFusion(cfg.Fusion)
	if err != nil {
		return nil, fmt.Errorf("failed to create signal fusion: %w", err)
	}
	sizer, err := risk.NewSizer(cfg.Risk.Balance, cfg.Risk.RiskPerTrade)
	if err != nil {
		return nil, fmt.Errorf("failed to create position sizer: %w", err)
	}

	a := &Advisor{
		symbol:      cfg.Market.Symbol,
		interval:    cfg.Market.Interval,
		suite:       suite,
		fusion:      fusion,
		tuner:       signal.NewTuner(),
		sizer:       sizer,
		stopLossPct:  cfg.Risk.StopLossPct,
		riskReward:   cfg.Risk.RiskReward,
		fitOnHistory: cfg.Scorer.Training.FitOnHistory,
		log:          logger.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.scorer == nil {
		if a.scorer, err = scoring.New(cfg.Scorer); err != nil {
			return nil, fmt.Errorf("failed to create scorer: %w", err)
		}
	}

	for _, key := range signal.ThresholdKeys {
		value := cfg.Thresholds.Get(key)
		a.tuner.SetParameter(key, value)
		monitoring.UpdateThreshold(key, value)
	}
	return a, nil
}

// Thresholds returns a copy of the current fusion thresholds
func (a *Advisor) Thresholds() signal.Thresholds {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.tuner.Thresholds()
}

// RequiredBars is the smallest window Run accepts
func (a *Advisor) RequiredBars() int {
	return a.fusion.RequiredBars()
}

// Tune nudges the thresholds from historical success-rate statistics
func (a *Advisor) Tune(stats map[string]float64) []signal.Adjustment {
	a.mu.Lock()
	defer a.mu.Unlock()

	adjustments := a.tuner.Optimize(stats)
	for _, adj := range adjustments {
		monitoring.UpdateThreshold(adj.Parameter, adj.To)
		a.log.Info("threshold adjusted",
			logger.String("parameter", adj.Parameter),
			logger.Float64("from", adj.From),
			logger.Float64("to", adj.To))
	}
	return adjustments
}

// Run evaluates the bar window and sizes a proposal at the last close
func (a *Advisor) Run(ctx context.Context, bars []types.OHLCV) (*Result, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	start := time.Now()
	defer func() { monitoring.ObservePipeline(time.Since(start)) }()

	result, err := a.run(ctx, bars)
	if err != nil {
		a.log.Error("pipeline failed", logger.Err(err))
		if a.health != nil {
			a.health.RecordError(err)
		}
		return nil, err
	}
	return result, nil
}

func (a *Advisor) run(ctx context.Context, bars []types.OHLCV) (*Result, error) {
	if len(bars) == 0 {
		return nil, errs.NewInsufficientDataError("Advisor", 0, a.fusion.RequiredBars())
	}

	thresholds := a.tuner.Thresholds()
	snap, err := a.suite.Compute(bars, thresholds.Get(signal.BollingerMultiplier))
	if err != nil {
		return nil, fmt.Errorf("failed to compute indicators: %w", err)
	}
	for name, indErr := range snap.Errors {
		category := string(errs.CategoryOf(indErr))
		if category == "" {
			category = "UNKNOWN"
		}
		monitoring.RecordIndicatorError(name, category)
		a.log.Warn("indicator unavailable", logger.String("indicator", name), logger.Err(indErr))
	}

	if a.fitOnHistory {
		a.fit(bars, thresholds)
	}

	eval, err := a.fusion.Evaluate(bars, thresholds, a.scorer)
	if err != nil {
		return nil, err
	}

	last := bars[len(bars)-1]
	entry := last.Close
	monitoring.UpdatePrice(a.symbol, entry)

	proposal, err := a.sizer.Propose(eval.Decision, entry, entry*a.stopLossPct, a.riskReward)
	if err != nil {
		return nil, err
	}

	monitoring.RecordSignal(eval.Decision.String(), eval.Path)
	if proposal.Actionable() {
		monitoring.RecordPositionSize(proposal.PositionSize)
	}
	if a.health != nil {
		a.health.RecordEvaluation(eval.Decision.String(), entry)
	}

	a.log.Info("signal generated",
		logger.String("decision", eval.Decision.String()),
		logger.String("path", eval.Path),
		logger.Float64("score", eval.Score),
		logger.Float64("entry", entry),
		logger.Time("bar_time", last.Timestamp))
	if proposal.Actionable() {
		a.log.Info("trade proposed",
			logger.Float64("size", proposal.PositionSize),
			logger.Float64("balance", a.sizer.Balance()),
			logger.Float64("risk_per_trade", a.sizer.RiskPerTrade()),
			logger.Float64("stop_loss", proposal.StopLossPrice),
			logger.Float64("take_profit", proposal.TakeProfitPrice))
	}

	result := &Result{
		Snapshot:   snap,
		Evaluation: eval,
		Proposal:   proposal,
		BarTime:    last.Timestamp,
	}

	if a.notifier != nil && proposal.Actionable() {
		msg := notifications.FormatProposal(a.symbol, a.interval, proposal)
		if err := a.notifier.SendAlert(ctx, notifications.LevelSuccess, msg); err != nil {
			a.log.Warn("failed to send alert", logger.Err(err))
		}
	}

	if a.recorder != nil {
		id, err := a.recorder.Record(ctx, journal.Entry{
			Symbol:       a.symbol,
			Interval:     a.interval,
			BarTime:      last.Timestamp,
			Decision:     eval.Decision,
			Path:         eval.Path,
			Score:        eval.Score,
			EntryPrice:   entry,
			PositionSize: proposal.PositionSize,
			StopLoss:     proposal.StopLossPrice,
			TakeProfit:   proposal.TakeProfitPrice,
			RiskReward:   proposal.RiskRewardRatio,
		})
		if err != nil {
			// a journal failure does not invalidate the proposal
			a.log.Warn("failed to journal evaluation", logger.Err(err))
		} else {
			result.JournalID = id
		}
	}
	return result, nil
}

// fit refits a trainable scorer on the window. A window too short to label or
// a scorer that cannot train leaves the scorer as it was.
func (a *Advisor) fit(bars []types.OHLCV, th signal.Thresholds) {
	trainer, ok := a.scorer.(scoring.Trainer)
	if !ok {
		a.log.Debug("scorer is not trainable", logger.String("scorer", a.scorer.Name()))
		return
	}
	samples, err := a.fusion.TrainingSamples(bars, th)
	if err != nil {
		a.log.Warn("scorer not fitted", logger.Err(err))
		return
	}
	loss, err := trainer.Train(samples)
	if err != nil {
		a.log.Warn("scorer not fitted", logger.Err(err))
		return
	}
	a.log.Info("scorer fitted",
		logger.String("scorer", trainer.Name()),
		logger.Int("samples", len(samples)),
		logger.Float64("loss", loss))
}
