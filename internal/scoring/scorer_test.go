package scoring

import (
	"math"
	"testing"

	errs "github.com/olaskid2005/SignalBot/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// separableSamples alternates positive and negative samples split on RSI sign
func separableSamples() []Sample {
	xs := []float64{1.5, 2.0, 2.5, 3.0}
	samples := make([]Sample, 0, 2*len(xs))
	for _, x := range xs {
		samples = append(samples,
			Sample{Features: Features{FeatureRSI: x}, Label: 1},
			Sample{Features: Features{FeatureRSI: -x}, Label: 0},
		)
	}
	return samples
}

func TestConstantScorer(t *testing.T) {
	s, err := NewConstantScorer(0.8)
	require.NoError(t, err)

	score, err := s.Predict(Features{})
	require.NoError(t, err)
	assert.Equal(t, 0.8, score)
	assert.Equal(t, "constant(0.80)", s.Name())

	_, err = NewConstantScorer(1.5)
	assert.True(t, errs.IsConfiguration(err))
	_, err = NewConstantScorer(math.NaN())
	assert.True(t, errs.IsConfiguration(err))
}

func TestLogisticScorer_UntrainedIsNeutral(t *testing.T) {
	s, err := NewLogisticScorer(0.1, 10)
	require.NoError(t, err)

	score, err := s.Predict(Features{30, 1, 0.5, 50000, 51000, 49000})
	require.NoError(t, err)
	assert.Equal(t, 0.5, score)
}

func TestLogisticScorer_TrainSeparable(t *testing.T) {
	s, err := NewLogisticScorer(0.1, 200)
	require.NoError(t, err)

	samples := separableSamples()
	loss, err := s.Train(samples)
	require.NoError(t, err)
	assert.Less(t, loss, 0.2)

	acc, err := s.Evaluate(samples)
	require.NoError(t, err)
	assert.Equal(t, 1.0, acc)

	high, err := s.Predict(Features{FeatureRSI: 2})
	require.NoError(t, err)
	low, err := s.Predict(Features{FeatureRSI: -2})
	require.NoError(t, err)
	assert.Greater(t, high, 0.5)
	assert.Less(t, low, 0.5)
	assert.GreaterOrEqual(t, low, 0.0)
	assert.LessOrEqual(t, high, 1.0)
}

func TestLogisticScorer_SetWeights(t *testing.T) {
	s, err := NewLogisticScorer(0.1, 1)
	require.NoError(t, err)

	require.NoError(t, s.SetWeights([]float64{1, 0, 0, 0, 0, 0}, -30))
	score, err := s.Predict(Features{FeatureRSI: 30})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, score, 1e-12)

	err = s.SetWeights([]float64{1, 2}, 0)
	assert.True(t, errs.IsConfiguration(err))
}

func TestSVMScorer_TrainSeparable(t *testing.T) {
	s, err := NewSVMScorer(0.01, 200, 0.01)
	require.NoError(t, err)

	samples := separableSamples()
	_, err = s.Train(samples)
	require.NoError(t, err)

	acc, err := s.Evaluate(samples)
	require.NoError(t, err)
	assert.Equal(t, 1.0, acc)

	score, err := s.Predict(Features{FeatureRSI: 5})
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)
}

func TestNeuralScorer_TrainSeparable(t *testing.T) {
	s, err := NewNeuralScorer(4, 0.5, 2000, 7)
	require.NoError(t, err)

	samples := separableSamples()
	before, err := s.Predict(Features{FeatureRSI: 2})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, before, 0.05)

	loss, err := s.Train(samples)
	require.NoError(t, err)
	assert.Less(t, loss, 0.05)

	acc, err := s.Evaluate(samples)
	require.NoError(t, err)
	assert.Equal(t, 1.0, acc)

	high, err := s.Predict(Features{FeatureRSI: 2})
	require.NoError(t, err)
	low, err := s.Predict(Features{FeatureRSI: -2})
	require.NoError(t, err)
	assert.Greater(t, high, 0.5)
	assert.Less(t, low, 0.5)
}

func TestNeuralScorer_SeedIsDeterministic(t *testing.T) {
	a, err := NewNeuralScorer(3, 0.1, 5, 42)
	require.NoError(t, err)
	b, err := NewNeuralScorer(3, 0.1, 5, 42)
	require.NoError(t, err)

	f := Features{30, 1, 0.5, 2, 3, 1}
	pa, err := a.Predict(f)
	require.NoError(t, err)
	pb, err := b.Predict(f)
	require.NoError(t, err)
	assert.Equal(t, pa, pb)

	_, err = a.Predict(Features{FeatureMACD: math.NaN()})
	assert.True(t, errs.IsDegenerateInput(err))
	_, err = NewNeuralScorer(0, 0.1, 5, 1)
	assert.True(t, errs.IsConfiguration(err))
}

func TestScorers_RejectDegenerateInput(t *testing.T) {
	l, _ := NewLogisticScorer(0.1, 1)
	_, err := l.Predict(Features{math.NaN()})
	assert.True(t, errs.IsDegenerateInput(err))

	_, err = l.Train(nil)
	assert.True(t, errs.IsInsufficientData(err))

	svm, _ := NewSVMScorer(0.1, 1, 0)
	_, err = svm.Predict(Features{FeatureClose: math.Inf(1)})
	assert.True(t, errs.IsDegenerateInput(err))

	_, err = NewLogisticScorer(0, 10)
	assert.True(t, errs.IsConfiguration(err))
	_, err = NewSVMScorer(0.1, 10, -1)
	assert.True(t, errs.IsConfiguration(err))
}

func TestNew(t *testing.T) {
	s, err := New(DefaultConfig())
	require.NoError(t, err)
	assert.IsType(t, &ConstantScorer{}, s)

	s, err = New(Config{Kind: "logistic", Weights: []float64{0, 0, 0, 0, 0, 0}, Training: Training{LearningRate: 0.1, Epochs: 1}})
	require.NoError(t, err)
	assert.Equal(t, "logistic", s.Name())

	s, err = New(Config{Kind: "SVM", Training: Training{LearningRate: 0.1, Epochs: 1}})
	require.NoError(t, err)
	assert.Equal(t, "svm", s.Name())

	s, err = New(Config{Kind: "neural", Training: Training{HiddenSize: 4, LearningRate: 0.1, Epochs: 1}})
	require.NoError(t, err)
	assert.Equal(t, "neural(4)", s.Name())
	_, ok := s.(Trainer)
	assert.True(t, ok)

	_, err = New(Config{Kind: "neural", Training: Training{LearningRate: 0.1, Epochs: 1}})
	assert.True(t, errs.IsConfiguration(err))

	_, err = New(Config{Kind: "prophet"})
	assert.True(t, errs.IsConfiguration(err))
}

func TestValidateScore(t *testing.T) {
	assert.NoError(t, ValidateScore("Fusion", 0))
	assert.NoError(t, ValidateScore("Fusion", 1))
	assert.True(t, errs.IsDegenerateInput(ValidateScore("Fusion", -0.1)))
	assert.True(t, errs.IsDegenerateInput(ValidateScore("Fusion", 1.01)))
	assert.True(t, errs.IsDegenerateInput(ValidateScore("Fusion", math.NaN())))
}
