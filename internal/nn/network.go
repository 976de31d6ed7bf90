package nn

import (
	"fmt"

	"github.com/born-ml/mlp/internal/linalg"
)

// Network is a linear stack of fully connected layers sharing one
// activation.
//
// Activation may be replaced between calls; it is read, not copied, by
// Apply and by the trainer. Concurrent training calls on one Network are
// not supported.
type Network struct {
	layers     []*Layer
	Activation Activation
}

// NewNetwork creates a zero-initialised network from node counts: counts
// [n0, n1, ..., nk] give k layers, layer i mapping n(i) values to n(i+1).
func NewNetwork(nodeCounts ...int) (*Network, error) {
	if len(nodeCounts) < 2 {
		return nil, fmt.Errorf("%d node counts: %w", len(nodeCounts), ErrTooFewLayers)
	}
	for i, c := range nodeCounts {
		if c <= 0 {
			return nil, fmt.Errorf("node count %d is %d: %w", i, c, ErrBadNodeCount)
		}
	}

	layers := make([]*Layer, len(nodeCounts)-1)
	for i := range layers {
		l, err := NewLayer(nodeCounts[i], nodeCounts[i+1])
		if err != nil {
			return nil, err
		}
		layers[i] = l
	}
	return NetworkFrom(layers)
}

// NetworkFrom creates a network over existing layers, in forward order.
// Each layer's input size must equal the previous layer's output size.
func NetworkFrom(layers []*Layer) (*Network, error) {
	if len(layers) == 0 {
		return nil, fmt.Errorf("no layers: %w", ErrTooFewLayers)
	}
	for i, l := range layers {
		if l == nil {
			return nil, fmt.Errorf("layer %d: %w", i, ErrNilLayer)
		}
		if i > 0 && l.InputSize() != layers[i-1].OutputSize() {
			return nil, fmt.Errorf("layer %d takes %d inputs, layer %d gives %d: %w",
				i, l.InputSize(), i-1, layers[i-1].OutputSize(), ErrLayerChain)
		}
	}
	return &Network{
		layers:     layers,
		Activation: SigmoidActivation,
	}, nil
}

// Layers returns the layers in forward order. The slice is shared.
func (n *Network) Layers() []*Layer { return n.layers }

// Sizes returns the node counts the network was built from.
func (n *Network) Sizes() []int {
	sizes := make([]int, 0, len(n.layers)+1)
	sizes = append(sizes, n.layers[0].InputSize())
	for _, l := range n.layers {
		sizes = append(sizes, l.OutputSize())
	}
	return sizes
}

// ParameterCount is the total number of weights and biases.
func (n *Network) ParameterCount() int {
	total := 0
	for _, l := range n.layers {
		total += l.InputSize()*l.OutputSize() + l.OutputSize()
	}
	return total
}

// Apply runs input through every layer, applying the activation after each.
func (n *Network) Apply(input *linalg.Vector) (*linalg.Vector, error) {
	current := input
	for i, l := range n.layers {
		next, err := l.Forward(current, n.Activation.Func)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		current = next
	}
	return current, nil
}
