package nn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSigmoid(t *testing.T) {
	assert.InDelta(t, 0.62245933120185459, Sigmoid(0.5), 1e-15)
	assert.InDelta(t, 0.5, Sigmoid(0), 1e-15)
}

func TestDSigmoid(t *testing.T) {
	assert.InDelta(t, 0.23500371220159449, DSigmoid(0.5), 1e-15)
	assert.InDelta(t, 0.25, DSigmoid(0), 1e-15)
}

func TestReLU(t *testing.T) {
	assert.Equal(t, 0.0, ReLU(-2))
	assert.Equal(t, 3.0, ReLU(3))
	assert.Equal(t, 0.0, DReLU(-2))
	assert.Equal(t, 0.0, DReLU(0))
	assert.Equal(t, 1.0, DReLU(0.1))
}

func TestGELU(t *testing.T) {
	assert.Equal(t, 0.0, GELU(0))
	assert.InDelta(t, 0.841192, GELU(1), 1e-6)
	assert.InDelta(t, -0.158808, GELU(-1), 1e-6)
}

// TestDerivatives compares each derivative with a central difference.
func TestDerivatives(t *testing.T) {
	const h = 1e-6
	for _, a := range []Activation{SigmoidActivation, GELUActivation} {
		for _, x := range []float64{-3, -0.7, 0, 0.5, 2.5} {
			numeric := (a.Func(x+h) - a.Func(x-h)) / (2 * h)
			assert.InDelta(t, numeric, a.Derivative(x), 1e-7, "%s'(%g)", a.Name, x)
		}
	}
}

func TestActivationByName(t *testing.T) {
	a, ok := ActivationByName("relu")
	assert.True(t, ok)
	assert.Equal(t, 2.0, a.Func(2))

	_, ok = ActivationByName("softsign")
	assert.False(t, ok)
}

func TestSigmoid_Saturates(t *testing.T) {
	assert.Equal(t, 1.0, Sigmoid(800))
	assert.Equal(t, 0.0, Sigmoid(-800))
	assert.False(t, math.IsNaN(DSigmoid(800)))
}
