// Package train fits a network to examples by mini-batch gradient descent
// with backpropagation.
//
// For each example in a batch the trainer runs a forward pass that keeps
// every layer's pre-activation z and activation a = f(z), then a backward
// pass that propagates the output error through the transposed weight
// matrices:
//
//	δ_L = (a_L − y) ⊙ f'(z_L)
//	δ_i = (W_{i+1}ᵀ · δ_{i+1}) ⊙ f'(z_i)
//
// Layer i's weight gradient is δ_i ⊗ a_{i−1} and its bias gradient is δ_i.
// Examples run concurrently; their gradients are summed in a TrainingRun,
// which serialises contributions per layer. Once every example is in, each
// layer is updated as W −= (η/N)·ΣgW and b −= (η/N)·Σgb.
//
// A failed call leaves the network untouched. Concurrent calls on the same
// network must be serialised by the caller.
package train
