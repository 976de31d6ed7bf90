package train

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/born-ml/mlp/internal/linalg"
	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/parallel"
)

// LayerGradient is the cost gradient with respect to one layer's
// parameters. Weights has the layer's weight shape, Biases its bias size.
type LayerGradient struct {
	Weights *linalg.Matrix
	Biases  *linalg.Vector
}

// Clone returns an independent copy of g.
func (g *LayerGradient) Clone() *LayerGradient {
	return &LayerGradient{Weights: g.Weights.Clone(), Biases: g.Biases.Clone()}
}

// fits reports whether g has the parameter shapes of a layer mapping in
// values to out values.
func (g *LayerGradient) fits(in, out int) error {
	if g == nil || g.Weights == nil || g.Biases == nil {
		return fmt.Errorf("missing gradient: %w", ErrGradientShape)
	}
	if g.Weights.Width() != in || g.Weights.Height() != out || g.Biases.Size() != out {
		return fmt.Errorf("gradient %dx%d/%d for layer %d->%d: %w",
			g.Weights.Width(), g.Weights.Height(), g.Biases.Size(), in, out, ErrGradientShape)
	}
	return nil
}

// ApplyTo takes one descent step on layer: every parameter p moves to
// p − (rate/batchSize)·g.
func (g *LayerGradient) ApplyTo(layer *nn.Layer, rate float64, batchSize int) error {
	if batchSize <= 0 {
		return fmt.Errorf("batch size %d: %w", batchSize, ErrEmptyBatch)
	}
	if err := g.fits(layer.InputSize(), layer.OutputSize()); err != nil {
		return err
	}

	step := rate / float64(batchSize)
	descend := func(p, grad float64) float64 { return p - step*grad }

	if err := layer.Weights().ApplyWith(g.Weights, descend); err != nil {
		return err
	}
	return layer.Biases().Matrix().ApplyWith(g.Biases.Matrix(), descend)
}

// TrainingRun sums per-example gradients for one batch.
//
// Each layer has its own slot and lock: contributions to one layer are
// merged one at a time, contributions to different layers proceed in
// parallel.
type TrainingRun struct {
	shapes [][2]int // per layer: input size, output size
	slots  []gradientSlot
	cases  atomic.Int64
	cfg    parallel.Config
}

type gradientSlot struct {
	mu   sync.Mutex
	grad *LayerGradient
}

// NewTrainingRun creates an empty run with one slot per layer of net.
func NewTrainingRun(net *nn.Network) *TrainingRun {
	return newTrainingRun(net, parallel.DefaultConfig().PerItem())
}

func newTrainingRun(net *nn.Network, cfg parallel.Config) *TrainingRun {
	layers := net.Layers()
	shapes := make([][2]int, len(layers))
	for i, l := range layers {
		shapes[i] = [2]int{l.InputSize(), l.OutputSize()}
	}
	return &TrainingRun{
		shapes: shapes,
		slots:  make([]gradientSlot, len(layers)),
		cfg:    cfg,
	}
}

// AddCase merges one example's gradients, one per layer in forward order.
// The first contribution to a layer is copied; later ones are added to it.
// Shapes are checked before anything is merged.
func (r *TrainingRun) AddCase(grads []*LayerGradient) error {
	if len(grads) != len(r.slots) {
		return fmt.Errorf("%d gradients for %d layers: %w", len(grads), len(r.slots), ErrGradientCount)
	}
	for i, g := range grads {
		if err := g.fits(r.shapes[i][0], r.shapes[i][1]); err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
	}

	parallel.For(len(grads), func(i int) {
		slot := &r.slots[i]
		slot.mu.Lock()
		defer slot.mu.Unlock()

		if slot.grad == nil {
			slot.grad = grads[i].Clone()
			return
		}
		// Shapes were checked above; these cannot fail.
		_ = slot.grad.Weights.Add(grads[i].Weights)
		_ = slot.grad.Biases.Add(grads[i].Biases)
	}, r.cfg)

	r.cases.Add(1)
	return nil
}

// Gradients returns the summed gradient of each layer, nil for a layer
// no case has reached. Call it once every AddCase has returned.
func (r *TrainingRun) Gradients() []*LayerGradient {
	out := make([]*LayerGradient, len(r.slots))
	for i := range r.slots {
		r.slots[i].mu.Lock()
		out[i] = r.slots[i].grad
		r.slots[i].mu.Unlock()
	}
	return out
}

// Cases returns the number of merged examples.
func (r *TrainingRun) Cases() int {
	return int(r.cases.Load())
}
