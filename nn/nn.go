// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/mlp/internal/initializer"
	"github.com/born-ml/mlp/internal/nn"
)

// Network is an ordered chain of layers sharing one activation.
type Network = nn.Network

// Layer is one fully connected layer.
type Layer = nn.Layer

// Activation pairs an activation function with its derivative.
type Activation = nn.Activation

// Built-in activations.
var (
	SigmoidActivation = nn.SigmoidActivation
	ReLUActivation    = nn.ReLUActivation
	GELUActivation    = nn.GELUActivation
)

// Errors returned when building networks.
var (
	ErrTooFewLayers = nn.ErrTooFewLayers
	ErrBadNodeCount = nn.ErrBadNodeCount
	ErrLayerShape   = nn.ErrLayerShape
	ErrLayerChain   = nn.ErrLayerChain
)

// NewNetwork creates a zero-initialized network with the given node counts,
// input layer first.
//
// Example:
//
//	net, err := nn.NewNetwork(784, 30, 10) // two layers: 784→30, 30→10
func NewNetwork(nodeCounts ...int) (*Network, error) {
	return nn.NewNetwork(nodeCounts...)
}

// NetworkFrom chains existing layers.
func NetworkFrom(layers []*Layer) (*Network, error) {
	return nn.NetworkFrom(layers)
}

// NewLayer creates a zero-initialized layer.
func NewLayer(inputs, outputs int) (*Layer, error) {
	return nn.NewLayer(inputs, outputs)
}

// ActivationByName returns the built-in activation with the given name.
func ActivationByName(name string) (Activation, bool) {
	return nn.ActivationByName(name)
}

// Initialization

// Normal sets every weight and bias to a sample of N(0, 1).
// The same seed always yields the same parameters.
func Normal(net *Network, seed uint64) error {
	return initializer.Normal(net, seed)
}

// Xavier draws weights from U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out)))
// and zeroes biases.
func Xavier(net *Network, seed uint64) error {
	return initializer.Xavier(net, seed)
}
