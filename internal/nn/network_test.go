package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/mlp/internal/linalg"
)

func TestNewNetwork(t *testing.T) {
	net, err := NewNetwork(4, 3, 2)
	require.NoError(t, err)

	require.Len(t, net.Layers(), 2)
	assert.Equal(t, 4, net.Layers()[0].InputSize())
	assert.Equal(t, 3, net.Layers()[0].OutputSize())
	assert.Equal(t, 3, net.Layers()[1].InputSize())
	assert.Equal(t, 2, net.Layers()[1].OutputSize())
	assert.Equal(t, []int{4, 3, 2}, net.Sizes())
	assert.Equal(t, 4*3+3+3*2+2, net.ParameterCount())
	assert.Equal(t, "sigmoid", net.Activation.Name)
}

func TestNewNetwork_Invalid(t *testing.T) {
	_, err := NewNetwork()
	require.ErrorIs(t, err, ErrTooFewLayers)

	_, err = NewNetwork(3)
	require.ErrorIs(t, err, ErrTooFewLayers)

	_, err = NewNetwork(3, 0, 2)
	require.ErrorIs(t, err, ErrBadNodeCount)

	_, err = NewNetwork(3, -1)
	require.ErrorIs(t, err, ErrBadNodeCount)
}

func TestNetworkFrom_Chain(t *testing.T) {
	a, err := NewLayer(2, 3)
	require.NoError(t, err)
	b, err := NewLayer(4, 1)
	require.NoError(t, err)

	_, err = NetworkFrom([]*Layer{a, b})
	require.ErrorIs(t, err, ErrLayerChain)

	_, err = NetworkFrom(nil)
	require.ErrorIs(t, err, ErrTooFewLayers)

	_, err = NetworkFrom([]*Layer{a, nil})
	require.ErrorIs(t, err, ErrNilLayer)
}

func TestApply_LinearNetwork(t *testing.T) {
	net, err := NewNetwork(1, 1, 1)
	require.NoError(t, err)
	require.Len(t, net.Layers(), 2)

	net.Layers()[0].Weights().Set(0, 0, 0.5)
	net.Layers()[1].Weights().Set(0, 0, 0.5)

	out, err := net.Apply(vec(t, 1))
	require.NoError(t, err)
	require.Equal(t, 1, out.Size())
	assert.InDelta(t, 0.57718538014465226, out.At(0), 1e-15)
}

func TestApply_OutputSize(t *testing.T) {
	net, err := NewNetwork(3, 5, 2)
	require.NoError(t, err)

	out, err := net.Apply(vec(t, 1, 2, 3))
	require.NoError(t, err)
	assert.Equal(t, 2, out.Size())
	// Zero parameters: every output is σ(0).
	assert.Equal(t, []float64{0.5, 0.5}, out.Values())
}

func TestApply_CustomActivation(t *testing.T) {
	net, err := NewNetwork(1, 1)
	require.NoError(t, err)
	net.Layers()[0].Weights().Set(0, 0, -2)
	net.Activation = ReLUActivation

	out, err := net.Apply(vec(t, 1))
	require.NoError(t, err)
	assert.Equal(t, 0.0, out.At(0))
}

func TestApply_WrongInputSize(t *testing.T) {
	net, err := NewNetwork(2, 1)
	require.NoError(t, err)

	_, err = net.Apply(vec(t, 1))
	require.ErrorIs(t, err, linalg.ErrDimensionMismatch)

	_, err = net.Apply(nil)
	require.ErrorIs(t, err, ErrNilInput)
}
