package nn

import (
	"fmt"

	"github.com/born-ml/mlp/internal/linalg"
)

// Layer is one fully connected edge of a network: y = f(W·x + b).
//
// Weights is InputSize wide and OutputSize high; Biases has OutputSize
// elements. Both are mutated in place by training.
type Layer struct {
	weights *linalg.Matrix
	biases  *linalg.Vector
}

// NewLayer creates a layer with zero weights and biases.
func NewLayer(inputSize, outputSize int) (*Layer, error) {
	weights, err := linalg.New(inputSize, outputSize)
	if err != nil {
		return nil, fmt.Errorf("layer %d->%d weights: %w", inputSize, outputSize, err)
	}
	biases, err := linalg.NewVector(outputSize)
	if err != nil {
		return nil, fmt.Errorf("layer %d->%d biases: %w", inputSize, outputSize, err)
	}
	return &Layer{weights: weights, biases: biases}, nil
}

// LayerFrom creates a layer over existing parameters. The layer keeps the
// given matrix and vector; it does not copy them.
func LayerFrom(weights *linalg.Matrix, biases *linalg.Vector) (*Layer, error) {
	if weights == nil || biases == nil {
		return nil, fmt.Errorf("layer from parameters: %w", linalg.ErrNilMatrix)
	}
	if weights.Height() != biases.Size() {
		return nil, fmt.Errorf("%d weight rows, %d biases: %w", weights.Height(), biases.Size(), ErrLayerShape)
	}
	return &Layer{weights: weights, biases: biases}, nil
}

// Weights returns the weight matrix.
func (l *Layer) Weights() *linalg.Matrix { return l.weights }

// Biases returns the bias vector.
func (l *Layer) Biases() *linalg.Vector { return l.biases }

// InputSize is the number of values the layer consumes.
func (l *Layer) InputSize() int { return l.weights.Width() }

// OutputSize is the number of values the layer produces.
func (l *Layer) OutputSize() int { return l.biases.Size() }

// Forward computes W·input + b and, if activation is non-nil, applies it
// to every element of the result. The input is not modified.
func (l *Layer) Forward(input *linalg.Vector, activation Func) (*linalg.Vector, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if input.Size() != l.weights.Width() {
		return nil, fmt.Errorf("layer %d->%d given %d inputs: %w",
			l.InputSize(), l.OutputSize(), input.Size(), linalg.ErrDimensionMismatch)
	}

	out, err := linalg.MulVec(l.weights, input)
	if err != nil {
		return nil, err
	}
	if err := out.Add(l.biases); err != nil {
		return nil, err
	}
	if activation != nil {
		out.Apply(activation)
	}
	return out, nil
}
