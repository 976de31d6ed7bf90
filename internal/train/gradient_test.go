package train

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/mlp/internal/linalg"
	"github.com/born-ml/mlp/internal/nn"
)

func gradient(t *testing.T, w, b float64) *LayerGradient {
	t.Helper()
	m, err := linalg.FromValues(1, []float64{w})
	require.NoError(t, err)
	return &LayerGradient{Weights: m, Biases: vec(t, b)}
}

func TestTrainingRun_AddCaseWhenEmpty(t *testing.T) {
	net, err := nn.NewNetwork(1, 1)
	require.NoError(t, err)

	run := NewTrainingRun(net)
	g := gradient(t, 0.5, 0.2)
	require.NoError(t, run.AddCase([]*LayerGradient{g}))

	sums := run.Gradients()
	require.Len(t, sums, 1)
	assert.Equal(t, 0.5, sums[0].Weights.At(0, 0))
	assert.Equal(t, 0.2, sums[0].Biases.At(0))
	assert.Equal(t, 1, run.Cases())

	// The run keeps its own copy.
	g.Weights.Set(0, 0, 99)
	assert.Equal(t, 0.5, run.Gradients()[0].Weights.At(0, 0))
}

func TestTrainingRun_AddCaseWhenFilled(t *testing.T) {
	net, err := nn.NewNetwork(1, 1)
	require.NoError(t, err)

	run := NewTrainingRun(net)
	require.NoError(t, run.AddCase([]*LayerGradient{gradient(t, 2, 3)}))
	require.NoError(t, run.AddCase([]*LayerGradient{gradient(t, 0.5, 0.2)}))

	sums := run.Gradients()
	assert.Equal(t, 2.5, sums[0].Weights.At(0, 0))
	assert.InDelta(t, 3.2, sums[0].Biases.At(0), 1e-15)
	assert.Equal(t, 2, run.Cases())
}

func TestTrainingRun_Rejects(t *testing.T) {
	net, err := nn.NewNetwork(1, 1, 1)
	require.NoError(t, err)
	run := NewTrainingRun(net)

	err = run.AddCase([]*LayerGradient{gradient(t, 1, 1)})
	require.ErrorIs(t, err, ErrGradientCount)

	wide, err := linalg.New(2, 1)
	require.NoError(t, err)
	err = run.AddCase([]*LayerGradient{gradient(t, 1, 1), {Weights: wide, Biases: vec(t, 1)}})
	require.ErrorIs(t, err, ErrGradientShape)

	err = run.AddCase([]*LayerGradient{gradient(t, 1, 1), nil})
	require.ErrorIs(t, err, ErrGradientShape)

	// Nothing was merged by the rejected cases.
	assert.Equal(t, 0, run.Cases())
	assert.Nil(t, run.Gradients()[0])
}

func TestTrainingRun_Concurrent(t *testing.T) {
	net, err := nn.NewNetwork(3, 2, 1)
	require.NoError(t, err)
	run := NewTrainingRun(net)

	const n = 200
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w0, _ := linalg.FromValues(3, []float64{1, 1, 1, 1, 1, 1})
			b0, _ := linalg.VectorFrom([]float64{1, 1})
			w1, _ := linalg.FromValues(2, []float64{2, 2})
			b1, _ := linalg.VectorFrom([]float64{2})
			assert.NoError(t, run.AddCase([]*LayerGradient{
				{Weights: w0, Biases: b0},
				{Weights: w1, Biases: b1},
			}))
		}()
	}
	wg.Wait()

	sums := run.Gradients()
	assert.Equal(t, n, run.Cases())
	for _, v := range sums[0].Weights.Values() {
		assert.Equal(t, float64(n), v)
	}
	assert.Equal(t, []float64{n, n}, sums[0].Biases.Values())
	assert.Equal(t, []float64{2 * n, 2 * n}, sums[1].Weights.Values())
	assert.Equal(t, []float64{2 * n}, sums[1].Biases.Values())
}

func TestLayerGradient_ApplyTo(t *testing.T) {
	layer, err := nn.NewLayer(1, 1)
	require.NoError(t, err)
	layer.Weights().Set(0, 0, 1)
	layer.Biases().Set(0, 1)

	require.NoError(t, gradient(t, 4, 8).ApplyTo(layer, 0.5, 4))
	assert.Equal(t, 0.5, layer.Weights().At(0, 0))
	assert.Equal(t, 0.0, layer.Biases().At(0))

	require.ErrorIs(t, gradient(t, 1, 1).ApplyTo(layer, 1, 0), ErrEmptyBatch)

	other, err := nn.NewLayer(2, 1)
	require.NoError(t, err)
	require.ErrorIs(t, gradient(t, 1, 1).ApplyTo(other, 1, 1), ErrGradientShape)
	assert.Equal(t, []float64{0, 0}, other.Weights().Values())
}
