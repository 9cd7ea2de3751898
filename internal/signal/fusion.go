package signal

import (
	errs "github.com/olaskid2005/SignalBot/internal/errors"
	"github.com/olaskid2005/SignalBot/internal/indicators"
	"github.com/olaskid2005/SignalBot/internal/scoring"
	"github.com/olaskid2005/SignalBot/pkg/types"
)

// Decision paths
const (
	PathRule  = "rule"
	PathModel = "model"
)

// FusionConfig holds the indicator periods and score cutoffs of a Fusion
type FusionConfig struct {
	RSIPeriod       int     `yaml:"rsi_period" json:"rsi_period"`
	MACDShort       int     `yaml:"macd_short" json:"macd_short"`
	MACDLong        int     `yaml:"macd_long" json:"macd_long"`
	MACDSignal      int     `yaml:"macd_signal" json:"macd_signal"`
	BollingerPeriod int     `yaml:"bollinger_period" json:"bollinger_period"`
	BuyScore        float64 `yaml:"buy_score" json:"buy_score"`
	SellScore       float64 `yaml:"sell_score" json:"sell_score"`
}

// DefaultFusionConfig returns RSI(14), MACD(12,26,9), BB(20) and 0.7/0.3 cutoffs
func DefaultFusionConfig() FusionConfig {
	return FusionConfig{
		RSIPeriod:       14,
		MACDShort:       12,
		MACDLong:        26,
		MACDSignal:      9,
		BollingerPeriod: 20,
		BuyScore:        0.7,
		SellScore:       0.3,
	}
}

// Evaluation is the full outcome of one fusion call
type Evaluation struct {
	Decision types.Decision   `json:"decision"`
	Path     string           `json:"path"`
	Features scoring.Features `json:"features"`
	Score    float64          `json:"score"`
}

// Fusion turns the latest RSI, MACD and Bollinger values plus a predictive
// score into a decision. Rule matches always take precedence over the score.
type Fusion struct {
	cfg  FusionConfig
	rsi  *indicators.RSI
	macd *indicators.MACD
}

// NewFusion validates cfg and builds the fixed indicators. The Bollinger
// multiplier is read from the thresholds on every call.
func NewFusion(cfg FusionConfig) (*Fusion, error) {
	rsi, err := indicators.NewRSI(cfg.RSIPeriod)
	if err != nil {
		return nil, err
	}
	macd, err := indicators.NewMACD(cfg.MACDShort, cfg.MACDLong, cfg.MACDSignal)
	if err != nil {
		return nil, err
	}
	if cfg.BollingerPeriod <= 0 {
		return nil, errs.NewConfigurationError("Fusion", "new", "bollinger period must be greater than 0").
			WithContext("bollinger_period", cfg.BollingerPeriod)
	}
	if !(cfg.SellScore >= 0 && cfg.SellScore <= cfg.BuyScore && cfg.BuyScore <= 1) {
		return nil, errs.NewConfigurationError("Fusion", "new", "score cutoffs must satisfy 0 <= sell <= buy <= 1").
			WithContext("buy_score", cfg.BuyScore).
			WithContext("sell_score", cfg.SellScore)
	}
	return &Fusion{cfg: cfg, rsi: rsi, macd: macd}, nil
}

// RequiredBars is the shortest series for which every input value is defined
func (f *Fusion) RequiredBars() int {
	return max(f.rsi.GetRequiredPeriods(), f.macd.SignalWarmup(), f.cfg.BollingerPeriod)
}

// Features computes [rsi, macd, macdSignal, close, upper, lower] at the last bar
func (f *Fusion) Features(data []types.OHLCV, th Thresholds) (scoring.Features, error) {
	var feats scoring.Features
	if len(data) == 0 || len(data) < f.RequiredBars() {
		return feats, errs.NewInsufficientDataError("Fusion", len(data), f.RequiredBars())
	}

	bb, err := indicators.NewBollingerBands(f.cfg.BollingerPeriod, th.Get(BollingerMultiplier))
	if err != nil {
		return feats, err
	}

	closes := indicators.Closes(data)
	rsi, err := f.rsi.Calculate(closes)
	if err != nil {
		return feats, err
	}
	macd, err := f.macd.Calculate(closes)
	if err != nil {
		return feats, err
	}
	bands, err := bb.Calculate(closes)
	if err != nil {
		return feats, err
	}

	values := []indicators.Output{rsi, macd.MACD, macd.Signal, bands.Upper, bands.Lower}
	for _, out := range values {
		if _, ok := out.Last(); !ok {
			return feats, errs.NewInsufficientDataError("Fusion", len(data), f.RequiredBars())
		}
	}

	feats[scoring.FeatureRSI], _ = rsi.Last()
	feats[scoring.FeatureMACD], _ = macd.MACD.Last()
	feats[scoring.FeatureMACDSignal], _ = macd.Signal.Last()
	feats[scoring.FeatureClose] = closes[len(closes)-1]
	feats[scoring.FeatureUpperBand], _ = bands.Upper.Last()
	feats[scoring.FeatureLowerBand], _ = bands.Lower.Last()
	return feats, nil
}

// TrainingSamples labels the feature vector of every complete prefix of data
// with 1 when the following close is higher and 0 otherwise. The last bar has
// no successor and is never labelled.
func (f *Fusion) TrainingSamples(data []types.OHLCV, th Thresholds) ([]scoring.Sample, error) {
	need := f.RequiredBars()
	if len(data) <= need {
		return nil, errs.NewInsufficientDataError("Fusion", len(data), need+1)
	}
	samples := make([]scoring.Sample, 0, len(data)-need)
	for end := need; end < len(data); end++ {
		feats, err := f.Features(data[:end], th)
		if err != nil {
			return nil, err
		}
		label := 0.0
		if data[end].Close > data[end-1].Close {
			label = 1
		}
		samples = append(samples, scoring.Sample{Features: feats, Label: label})
	}
	return samples, nil
}

// ruleDecision applies the indicator rules; ok is false when neither fires
func ruleDecision(feats scoring.Features, th Thresholds) (types.Decision, bool) {
	rsi := feats[scoring.FeatureRSI]
	spread := feats[scoring.FeatureMACD] - feats[scoring.FeatureMACDSignal]
	price := feats[scoring.FeatureClose]

	if rsi < th.Get(RSIThresholdBuy) && price < feats[scoring.FeatureLowerBand] && spread > th.Get(MACDThresholdBuy) {
		return types.DecisionBuy, true
	}
	if rsi > th.Get(RSIThresholdSell) && price > feats[scoring.FeatureUpperBand] && spread < -th.Get(MACDThresholdSell) {
		return types.DecisionSell, true
	}
	return types.DecisionHold, false
}

func (f *Fusion) scoreDecision(score float64) (types.Decision, error) {
	if err := scoring.ValidateScore("Fusion", score); err != nil {
		return types.DecisionHold, err
	}
	switch {
	case score > f.cfg.BuyScore:
		return types.DecisionBuy, nil
	case score < f.cfg.SellScore:
		return types.DecisionSell, nil
	default:
		return types.DecisionHold, nil
	}
}

// GenerateSignal decides from the bars and an externally supplied score.
// The score is validated even when a rule decides.
func (f *Fusion) GenerateSignal(data []types.OHLCV, th Thresholds, score float64) (types.Decision, error) {
	feats, err := f.Features(data, th)
	if err != nil {
		return types.DecisionHold, err
	}
	if err := scoring.ValidateScore("Fusion", score); err != nil {
		return types.DecisionHold, err
	}
	if d, ok := ruleDecision(feats, th); ok {
		return d, nil
	}
	return f.scoreDecision(score)
}

// Evaluate is GenerateSignal with the score produced by scorer from the
// feature vector. The scorer is only consulted when no rule fires.
func (f *Fusion) Evaluate(data []types.OHLCV, th Thresholds, scorer scoring.Scorer) (*Evaluation, error) {
	feats, err := f.Features(data, th)
	if err != nil {
		return nil, err
	}
	if d, ok := ruleDecision(feats, th); ok {
		return &Evaluation{Decision: d, Path: PathRule, Features: feats}, nil
	}

	score, err := scorer.Predict(feats)
	if err != nil {
		return nil, err
	}
	d, err := f.scoreDecision(score)
	if err != nil {
		return nil, err
	}
	return &Evaluation{Decision: d, Path: PathModel, Features: feats, Score: score}, nil
}
