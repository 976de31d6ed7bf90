// Package initializer fills network parameters with random samples.
//
// Samples come from a Sampler and are written in a fixed order: each
// layer's weights row by row, then its biases, layers in forward order. The
// same seed therefore always yields the same network.
package initializer
