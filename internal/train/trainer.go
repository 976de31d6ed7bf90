package train

import (
	"fmt"

	"github.com/born-ml/mlp/internal/linalg"
	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/parallel"
)

// Trainer runs one gradient-descent step over a mini-batch.
//
// inputs[i] is paired with expected[i]. Implementations differ in the cost
// function they descend.
type Trainer interface {
	RunGradientDescent(net *nn.Network, inputs, expected []*linalg.Vector, rate float64) error
}

// Config controls trainer execution.
type Config struct {
	// Parallelism bounds the fan-out over examples and layers. Each item is
	// scheduled on its own; MinChunkSize is ignored.
	Parallelism parallel.Config
}

// DefaultConfig returns a config using every physical core.
func DefaultConfig() Config {
	return Config{Parallelism: parallel.DefaultConfig()}
}

// Quadratic trains against the quadratic cost C = ½·Σ(a − y)².
type Quadratic struct {
	cfg parallel.Config
}

var _ Trainer = (*Quadratic)(nil)

// NewQuadratic creates a quadratic-cost trainer.
func NewQuadratic(cfg Config) *Quadratic {
	return &Quadratic{cfg: cfg.Parallelism.PerItem()}
}

// IterationState is the per-example scratch of one forward and backward
// pass. PreActivations, Activations and Errors hold one vector per layer.
type IterationState struct {
	Network  *nn.Network
	Input    *linalg.Vector
	Expected *linalg.Vector

	PreActivations []*linalg.Vector // z_i = W_i·a_{i−1} + b_i
	Activations    []*linalg.Vector // a_i = f(z_i)
	Errors         []*linalg.Vector // δ_i
}

// RunGradientDescent computes every example's gradients concurrently,
// sums them, and moves each layer by −(rate/N) times the sum.
//
// If any example fails, or the batch is malformed, the network is left
// unchanged and the error is returned.
func (q *Quadratic) RunGradientDescent(net *nn.Network, inputs, expected []*linalg.Vector, rate float64) error {
	if net == nil {
		return ErrNilNetwork
	}
	if inputs == nil || expected == nil {
		return ErrNilBatch
	}
	if len(inputs) != len(expected) {
		return fmt.Errorf("%d inputs, %d expected outputs: %w", len(inputs), len(expected), ErrBatchMismatch)
	}
	if len(inputs) == 0 {
		return ErrEmptyBatch
	}
	for i := range inputs {
		if inputs[i] == nil || expected[i] == nil {
			return fmt.Errorf("example %d: %w", i, ErrNilBatch)
		}
	}

	run := newTrainingRun(net, q.cfg)
	err := parallel.ForErr(len(inputs), func(i int) error {
		grads, err := q.Gradients(net, inputs[i], expected[i])
		if err != nil {
			return fmt.Errorf("example %d: %w", i, err)
		}
		return run.AddCase(grads)
	}, q.cfg)
	if err != nil {
		return err
	}

	layers := net.Layers()
	sums := run.Gradients()
	if len(sums) != len(layers) {
		return fmt.Errorf("run produced %d gradients for %d layers: %w", len(sums), len(layers), ErrGradientCount)
	}
	for i, g := range sums {
		if err := g.fits(layers[i].InputSize(), layers[i].OutputSize()); err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
	}

	return parallel.ForErr(len(layers), func(i int) error {
		return sums[i].ApplyTo(layers[i], rate, len(inputs))
	}, q.cfg)
}

// Gradients runs the forward and backward pass for one example and returns
// the gradient of every layer, in forward order.
func (q *Quadratic) Gradients(net *nn.Network, input, expected *linalg.Vector) ([]*LayerGradient, error) {
	state := &IterationState{Network: net, Input: input, Expected: expected}
	if err := q.Forward(state); err != nil {
		return nil, err
	}
	if err := q.Backward(state); err != nil {
		return nil, err
	}

	grads := make([]*LayerGradient, len(net.Layers()))
	err := parallel.ForErr(len(grads), func(i int) error {
		prev := state.Input
		if i > 0 {
			prev = state.Activations[i-1]
		}
		g, err := layerGradient(prev, state.Errors[i])
		if err != nil {
			return fmt.Errorf("layer %d gradient: %w", i, err)
		}
		grads[i] = g
		return nil
	}, q.cfg)
	if err != nil {
		return nil, err
	}
	return grads, nil
}

// layerGradient pairs the weight gradient δ ⊗ a with the bias gradient δ.
func layerGradient(prevActivation, layerError *linalg.Vector) (*LayerGradient, error) {
	weights, err := linalg.Outer(layerError, prevActivation)
	if err != nil {
		return nil, err
	}
	return &LayerGradient{Weights: weights, Biases: layerError.Clone()}, nil
}

// Forward fills state.PreActivations and state.Activations from
// state.Input.
func (q *Quadratic) Forward(state *IterationState) error {
	if state.Network == nil {
		return ErrNilNetwork
	}
	layers := state.Network.Layers()
	f := state.Network.Activation.Func

	state.PreActivations = make([]*linalg.Vector, len(layers))
	state.Activations = make([]*linalg.Vector, len(layers))

	current := state.Input
	for i, l := range layers {
		z, err := l.Forward(current, nil)
		if err != nil {
			return fmt.Errorf("forward layer %d: %w", i, err)
		}
		a := z.Clone()
		a.Apply(f)

		state.PreActivations[i] = z
		state.Activations[i] = a
		current = a
	}
	return nil
}

// Backward fills state.Errors from the vectors Forward left in state and
// state.Expected. It does not modify them.
func (q *Quadratic) Backward(state *IterationState) error {
	if state.Network == nil {
		return ErrNilNetwork
	}
	layers := state.Network.Layers()
	if len(state.PreActivations) != len(layers) || len(state.Activations) != len(layers) {
		return fmt.Errorf("backward over %d layers with %d pre-activations: %w",
			len(layers), len(state.PreActivations), ErrGradientCount)
	}
	if state.Expected == nil {
		return ErrNilBatch
	}
	df := state.Network.Activation.Derivative

	state.Errors = make([]*linalg.Vector, len(layers))
	last := len(layers) - 1

	for i := last; i >= 0; i-- {
		prime := state.PreActivations[i].Clone()
		prime.Apply(df)

		var (
			costGrad *linalg.Vector
			err      error
		)
		if i == last {
			costGrad, err = linalg.Combine(state.Activations[last], state.Expected, sub)
		} else {
			costGrad, err = linalg.MulVec(layers[i+1].Weights().Transpose(), state.Errors[i+1])
		}
		if err != nil {
			return fmt.Errorf("backward layer %d: %w", i, err)
		}

		delta, err := linalg.Combine(costGrad, prime, mul)
		if err != nil {
			return fmt.Errorf("backward layer %d: %w", i, err)
		}
		state.Errors[i] = delta
	}
	return nil
}

func sub(a, b float64) float64 { return a - b }
func mul(a, b float64) float64 { return a * b }
