package initializer

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/born-ml/mlp/internal/linalg"
	"github.com/born-ml/mlp/internal/nn"
)

// Randomize overwrites every parameter of net with a sample from s.
// The first sampler error aborts and is returned; parameters written before
// it keep their new values.
func Randomize(net *nn.Network, s Sampler) error {
	for i, l := range net.Layers() {
		if err := fillMatrix(l.Weights(), s); err != nil {
			return fmt.Errorf("layer %d weights: %w", i, err)
		}
		if err := fillMatrix(l.Biases().Matrix(), s); err != nil {
			return fmt.Errorf("layer %d biases: %w", i, err)
		}
	}
	return nil
}

func fillMatrix(m *linalg.Matrix, s Sampler) error {
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			v, err := s.Next()
			if err != nil {
				return err
			}
			m.Set(x, y, v)
		}
	}
	return nil
}

// Normal sets every parameter of net to a standard normal sample.
func Normal(net *nn.Network, seed uint64) error {
	q, err := NewNormalQueue(net.ParameterCount(), 0, 1, seed)
	if err != nil {
		return err
	}
	return Randomize(net, q)
}

// Xavier (Glorot) initialization.
//
// Weights of a layer are drawn from U(-sqrt(6/(fan_in + fan_out)),
// sqrt(6/(fan_in + fan_out))); biases are set to zero.
func Xavier(net *nn.Network, seed uint64) error {
	src := rand.NewPCG(seed, seed)
	for i, l := range net.Layers() {
		bound := math.Sqrt(6.0 / float64(l.InputSize()+l.OutputSize()))
		if err := fillMatrix(l.Weights(), uniform(bound, src)); err != nil {
			return fmt.Errorf("layer %d weights: %w", i, err)
		}
		l.Biases().Apply(func(float64) float64 { return 0 })
	}
	return nil
}
