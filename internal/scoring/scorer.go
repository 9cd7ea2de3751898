package scoring

import (
	"fmt"
	"math"
	"strings"

	errs "github.com/olaskid2005/SignalBot/internal/errors"
)

// Feature positions. The order is fixed: scorers are trained against it.
const (
	FeatureRSI = iota
	FeatureMACD
	FeatureMACDSignal
	FeatureClose
	FeatureUpperBand
	FeatureLowerBand
	FeatureCount
)

// FeatureNames labels each position of Features
var FeatureNames = [FeatureCount]string{
	"rsi", "macd", "macd_signal", "close", "upper_band", "lower_band",
}

// Features is the input vector of a Scorer
type Features [FeatureCount]float64

// Scorer maps a feature vector to a score in [0, 1]. Higher is more bullish.
type Scorer interface {
	Predict(f Features) (float64, error)
	Name() string
}

// Trainer is a Scorer that can be fitted to labelled samples. Train returns
// the mean loss of the final epoch.
type Trainer interface {
	Scorer
	Train(samples []Sample) (float64, error)
}

// Sample is one labelled training example; Label is 0 or 1
type Sample struct {
	Features Features
	Label    float64
}

// Scorer kinds accepted by New
const (
	KindConstant = "constant"
	KindLogistic = "logistic"
	KindSVM      = "svm"
	KindNeural   = "neural"
)

// Config selects and parameterises a scorer
type Config struct {
	Kind     string    `yaml:"kind" json:"kind"`
	Value    float64   `yaml:"value" json:"value"`
	Weights  []float64 `yaml:"weights" json:"weights"`
	Bias     float64   `yaml:"bias" json:"bias"`
	Training Training  `yaml:"training" json:"training"`
}

// Training holds the gradient descent settings of the trainable scorers.
// FitOnHistory refits a trainable scorer on every evaluated window, labelling
// each bar by whether the next close rose.
type Training struct {
	LearningRate   float64 `yaml:"learning_rate" json:"learning_rate"`
	Epochs         int     `yaml:"epochs" json:"epochs"`
	Regularization float64 `yaml:"regularization" json:"regularization"`
	HiddenSize     int     `yaml:"hidden_size" json:"hidden_size"`
	Seed           int64   `yaml:"seed" json:"seed"`
	FitOnHistory   bool    `yaml:"fit_on_history" json:"fit_on_history"`
}

// DefaultConfig is a neutral constant scorer
func DefaultConfig() Config {
	return Config{
		Kind:  KindConstant,
		Value: 0.5,
		Training: Training{
			LearningRate:   0.01,
			Epochs:         100,
			Regularization: 0.01,
			HiddenSize:     8,
			Seed:           1,
		},
	}
}

// New builds the scorer described by cfg
func New(cfg Config) (Scorer, error) {
	switch strings.ToLower(cfg.Kind) {
	case KindConstant, "":
		return NewConstantScorer(cfg.Value)
	case KindLogistic:
		s, err := NewLogisticScorer(cfg.Training.LearningRate, cfg.Training.Epochs)
		if err != nil {
			return nil, err
		}
		if err := s.SetWeights(cfg.Weights, cfg.Bias); err != nil {
			return nil, err
		}
		return s, nil
	case KindSVM:
		s, err := NewSVMScorer(cfg.Training.LearningRate, cfg.Training.Epochs, cfg.Training.Regularization)
		if err != nil {
			return nil, err
		}
		if err := s.SetWeights(cfg.Weights, cfg.Bias); err != nil {
			return nil, err
		}
		return s, nil
	case KindNeural:
		return NewNeuralScorer(cfg.Training.HiddenSize, cfg.Training.LearningRate, cfg.Training.Epochs, cfg.Training.Seed)
	default:
		return nil, errs.NewConfigurationError("Scorer", "new", fmt.Sprintf("unknown scorer kind %q", cfg.Kind))
	}
}

// ValidateScore rejects scores outside [0, 1], including NaN
func ValidateScore(component string, score float64) error {
	if math.IsNaN(score) || score < 0 || score > 1 {
		return errs.NewDegenerateInputError(component, "score", "score must be within [0, 1]").
			WithContext("score", score)
	}
	return nil
}

func checkFeatures(component string, f Features) error {
	for i, v := range f {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errs.NewDegenerateInputError(component, "predict", "feature is not finite").
				WithContext("feature", FeatureNames[i])
		}
	}
	return nil
}

func checkSamples(component string, samples []Sample) error {
	if len(samples) == 0 {
		return errs.NewInsufficientDataError(component, 0, 1)
	}
	for _, s := range samples {
		if err := checkFeatures(component, s.Features); err != nil {
			return err
		}
	}
	return nil
}

func dot(weights, f Features) float64 {
	sum := 0.0
	for i := range f {
		sum += weights[i] * f[i]
	}
	return sum
}

func setWeights(component string, dst *Features, weights []float64) error {
	if len(weights) == 0 {
		*dst = Features{}
		return nil
	}
	if len(weights) != FeatureCount {
		return errs.NewConfigurationError(component, "weights", "weights must match the feature count").
			WithContext("got", len(weights)).
			WithContext("want", FeatureCount)
	}
	copy(dst[:], weights)
	return nil
}

// ConstantScorer always returns the same score
type ConstantScorer struct {
	value float64
}

// NewConstantScorer creates a scorer that always predicts value
func NewConstantScorer(value float64) (*ConstantScorer, error) {
	if math.IsNaN(value) || value < 0 || value > 1 {
		return nil, errs.NewConfigurationError("ConstantScorer", "new", "value must be within [0, 1]").
			WithContext("value", value)
	}
	return &ConstantScorer{value: value}, nil
}

func (c *ConstantScorer) Predict(Features) (float64, error) {
	return c.value, nil
}

func (c *ConstantScorer) Name() string {
	return fmt.Sprintf("constant(%.2f)", c.value)
}
