package scoring

import (
	"fmt"
	"math/rand"

	errs "github.com/olaskid2005/SignalBot/internal/errors"
)

// NeuralScorer is a feed-forward network with one sigmoid hidden layer and a
// single sigmoid output, trained by per-sample backpropagation on squared error
type NeuralScorer struct {
	hiddenWeights [][FeatureCount]float64
	hiddenBias    []float64
	outputWeights []float64
	outputBias    float64
	learningRate  float64
	epochs        int
}

// NewNeuralScorer creates an untrained network. Weights start as small
// Gaussian noise drawn from seed, so two scorers with the same seed agree.
func NewNeuralScorer(hiddenSize int, learningRate float64, epochs int, seed int64) (*NeuralScorer, error) {
	if hiddenSize <= 0 || !(learningRate > 0) || epochs <= 0 {
		return nil, errs.NewConfigurationError("NeuralScorer", "new", "hidden size, learning rate and epochs must be positive").
			WithContext("hidden_size", hiddenSize).
			WithContext("learning_rate", learningRate).
			WithContext("epochs", epochs)
	}

	rng := rand.New(rand.NewSource(seed))
	n := &NeuralScorer{
		hiddenWeights: make([][FeatureCount]float64, hiddenSize),
		hiddenBias:    make([]float64, hiddenSize),
		outputWeights: make([]float64, hiddenSize),
		learningRate:  learningRate,
		epochs:        epochs,
	}
	for h := range n.hiddenWeights {
		for i := range n.hiddenWeights[h] {
			n.hiddenWeights[h][i] = rng.NormFloat64() * 0.01
		}
		n.outputWeights[h] = rng.NormFloat64() * 0.01
	}
	return n, nil
}

func (n *NeuralScorer) forward(f Features) ([]float64, float64) {
	hidden := make([]float64, len(n.hiddenWeights))
	out := n.outputBias
	for h, w := range n.hiddenWeights {
		hidden[h] = sigmoid(dot(w, f) + n.hiddenBias[h])
		out += n.outputWeights[h] * hidden[h]
	}
	return hidden, sigmoid(out)
}

// Train fits the network and returns the mean squared error (halved) of the
// final epoch
func (n *NeuralScorer) Train(samples []Sample) (float64, error) {
	if err := checkSamples("NeuralScorer", samples); err != nil {
		return 0, err
	}

	loss := 0.0
	for epoch := 0; epoch < n.epochs; epoch++ {
		loss = 0
		for _, s := range samples {
			hidden, out := n.forward(s.Features)
			diff := out - s.Label
			loss += diff * diff / 2

			outErr := diff * out * (1 - out)
			for h := range hidden {
				hiddenErr := outErr * n.outputWeights[h] * hidden[h] * (1 - hidden[h])
				n.outputWeights[h] -= n.learningRate * outErr * hidden[h]
				for i := range n.hiddenWeights[h] {
					n.hiddenWeights[h][i] -= n.learningRate * hiddenErr * s.Features[i]
				}
				n.hiddenBias[h] -= n.learningRate * hiddenErr
			}
			n.outputBias -= n.learningRate * outErr
		}
		loss /= float64(len(samples))
	}
	return loss, nil
}

// Predict returns the output neuron's activation
func (n *NeuralScorer) Predict(f Features) (float64, error) {
	if err := checkFeatures("NeuralScorer", f); err != nil {
		return 0, err
	}
	_, out := n.forward(f)
	return out, nil
}

// Evaluate returns the accuracy of thresholding predictions at 0.5
func (n *NeuralScorer) Evaluate(samples []Sample) (float64, error) {
	return accuracy(n, samples, "NeuralScorer")
}

func (n *NeuralScorer) Name() string {
	return fmt.Sprintf("neural(%d)", len(n.hiddenWeights))
}
