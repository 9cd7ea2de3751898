package scoring

import (
	"math"

	errs "github.com/olaskid2005/SignalBot/internal/errors"
)

// LogisticScorer is a logistic regression over the raw feature vector,
// trained with per-sample gradient descent
type LogisticScorer struct {
	weights      Features
	bias         float64
	learningRate float64
	epochs       int
}

// NewLogisticScorer creates an untrained scorer; it predicts 0.5 until trained
func NewLogisticScorer(learningRate float64, epochs int) (*LogisticScorer, error) {
	if !(learningRate > 0) || epochs <= 0 {
		return nil, errs.NewConfigurationError("LogisticScorer", "new", "learning rate and epochs must be positive").
			WithContext("learning_rate", learningRate).
			WithContext("epochs", epochs)
	}
	return &LogisticScorer{learningRate: learningRate, epochs: epochs}, nil
}

// SetWeights installs pre-trained weights; an empty slice resets them to zero
func (l *LogisticScorer) SetWeights(weights []float64, bias float64) error {
	if err := setWeights("LogisticScorer", &l.weights, weights); err != nil {
		return err
	}
	l.bias = bias
	return nil
}

// Train fits the model and returns the mean log loss of the final epoch
func (l *LogisticScorer) Train(samples []Sample) (float64, error) {
	if err := checkSamples("LogisticScorer", samples); err != nil {
		return 0, err
	}

	const eps = 1e-12
	loss := 0.0
	for epoch := 0; epoch < l.epochs; epoch++ {
		loss = 0
		for _, s := range samples {
			p := sigmoid(dot(l.weights, s.Features) + l.bias)
			pc := math.Min(math.Max(p, eps), 1-eps)
			loss += -s.Label*math.Log(pc) - (1-s.Label)*math.Log(1-pc)

			grad := p - s.Label
			for j := range l.weights {
				l.weights[j] -= l.learningRate * grad * s.Features[j]
			}
			l.bias -= l.learningRate * grad
		}
		loss /= float64(len(samples))
	}
	return loss, nil
}

// Predict returns the sigmoid of the linear output
func (l *LogisticScorer) Predict(f Features) (float64, error) {
	if err := checkFeatures("LogisticScorer", f); err != nil {
		return 0, err
	}
	return sigmoid(dot(l.weights, f) + l.bias), nil
}

// Evaluate returns the accuracy of thresholding predictions at 0.5
func (l *LogisticScorer) Evaluate(samples []Sample) (float64, error) {
	return accuracy(l, samples, "LogisticScorer")
}

func (l *LogisticScorer) Name() string {
	return "logistic"
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func accuracy(s Scorer, samples []Sample, component string) (float64, error) {
	if err := checkSamples(component, samples); err != nil {
		return 0, err
	}
	correct := 0
	for _, sample := range samples {
		p, err := s.Predict(sample.Features)
		if err != nil {
			return 0, err
		}
		label := 0.0
		if p >= 0.5 {
			label = 1
		}
		if label == sample.Label {
			correct++
		}
	}
	return float64(correct) / float64(len(samples)), nil
}
