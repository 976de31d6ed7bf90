// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides fully connected feed-forward networks.
//
// # Overview
//
// This package contains:
//   - Network and Layer: dense layers chained input to output
//   - Activations: Sigmoid (default), ReLU, GELU
//   - Initialization: Normal, Xavier
//   - Persistence: Save, Load
//
// # Basic Usage
//
//	import "github.com/born-ml/mlp/nn"
//
//	func main() {
//	    net, err := nn.NewNetwork(784, 30, 10)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if err := nn.Normal(net, 42); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    output, err := net.Apply(input)
//	}
//
// # Layers
//
// A layer with n inputs and m outputs holds an m×n weight matrix and m
// biases and computes f(W·x + b). Consecutive layers must agree on size.
//
// Training lives in package train; linear algebra in package linalg.
package nn
