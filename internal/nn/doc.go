// Package nn implements the feed-forward network: fully connected layers
// chained in a fixed order, all sharing one scalar activation function.
//
// A Layer maps an input vector x to f(W·x + b). A Network folds its layers
// over an input:
//
//	net, _ := nn.NewNetwork(784, 30, 10) // two layers, zero weights
//	out, err := net.Apply(input)          // 10 sigmoid outputs
//
// Parameters start at zero; use package initializer to randomise them and
// package train to fit them.
package nn
