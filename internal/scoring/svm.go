package scoring

import errs "github.com/olaskid2005/SignalBot/internal/errors"

// SVMScorer is a linear soft-margin classifier. Its score is 1 on the
// positive side of the hyperplane and 0 otherwise.
type SVMScorer struct {
	weights        Features
	bias           float64
	learningRate   float64
	epochs         int
	regularization float64
}

// NewSVMScorer creates an untrained scorer
func NewSVMScorer(learningRate float64, epochs int, regularization float64) (*SVMScorer, error) {
	if !(learningRate > 0) || epochs <= 0 || regularization < 0 {
		return nil, errs.NewConfigurationError("SVMScorer", "new", "invalid training parameters").
			WithContext("learning_rate", learningRate).
			WithContext("epochs", epochs).
			WithContext("regularization", regularization)
	}
	return &SVMScorer{learningRate: learningRate, epochs: epochs, regularization: regularization}, nil
}

// SetWeights installs pre-trained weights; an empty slice resets them to zero
func (s *SVMScorer) SetWeights(weights []float64, bias float64) error {
	if err := setWeights("SVMScorer", &s.weights, weights); err != nil {
		return err
	}
	s.bias = bias
	return nil
}

// Train runs hinge-loss sub-gradient descent with L2 regularisation and
// returns the mean hinge loss of the final epoch. Labels of 1 are the
// positive class; anything else is negative.
func (s *SVMScorer) Train(samples []Sample) (float64, error) {
	if err := checkSamples("SVMScorer", samples); err != nil {
		return 0, err
	}
	loss := 0.0
	for epoch := 0; epoch < s.epochs; epoch++ {
		loss = 0
		for _, sample := range samples {
			target := -1.0
			if sample.Label == 1 {
				target = 1
			}
			margin := target * s.margin(sample.Features)
			if margin < 1 {
				loss += 1 - margin
			}
			for j := range s.weights {
				decay := 2 * s.regularization * s.weights[j]
				if margin < 1 {
					s.weights[j] += s.learningRate * (target*sample.Features[j] - decay)
				} else {
					s.weights[j] -= s.learningRate * decay
				}
			}
			if margin < 1 {
				s.bias += s.learningRate * target
			}
		}
		loss /= float64(len(samples))
	}
	return loss, nil
}

func (s *SVMScorer) margin(f Features) float64 {
	return dot(s.weights, f) + s.bias
}

// Predict returns 1 when the margin is non-negative, else 0
func (s *SVMScorer) Predict(f Features) (float64, error) {
	if err := checkFeatures("SVMScorer", f); err != nil {
		return 0, err
	}
	if s.margin(f) >= 0 {
		return 1, nil
	}
	return 0, nil
}

// Evaluate returns the classification accuracy over samples
func (s *SVMScorer) Evaluate(samples []Sample) (float64, error) {
	return accuracy(s, samples, "SVMScorer")
}

func (s *SVMScorer) Name() string {
	return "svm"
}
