// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package train fits networks by mini-batch gradient descent.
//
// Example:
//
//	trainer := train.NewQuadratic(train.DefaultConfig())
//	for _, batch := range batches {
//	    inputs, expected := train.Split(batch)
//	    if err := trainer.RunGradientDescent(net, inputs, expected, 3.0); err != nil {
//	        return err
//	    }
//	}
//	result, err := train.Evaluate(net, held, train.DefaultConfig())
package train

import (
	"github.com/born-ml/mlp/internal/train"
	"github.com/born-ml/mlp/linalg"
	"github.com/born-ml/mlp/nn"
)

// Trainer runs one gradient-descent step over a mini-batch.
type Trainer = train.Trainer

// Quadratic descends the quadratic cost ½·Σ(a − y)².
type Quadratic = train.Quadratic

// Config controls trainer execution.
type Config = train.Config

// Example is one labelled case.
type Example = train.Example

// Result summarises an evaluation pass.
type Result = train.Result

// Errors returned by trainers.
var (
	ErrBatchMismatch = train.ErrBatchMismatch
	ErrEmptyBatch    = train.ErrEmptyBatch
)

// DefaultConfig returns a config using every physical core.
func DefaultConfig() Config { return train.DefaultConfig() }

// NewQuadratic creates a quadratic-cost trainer.
func NewQuadratic(cfg Config) *Quadratic { return train.NewQuadratic(cfg) }

// Split separates examples into the input and expected slices
// RunGradientDescent takes.
func Split(examples []Example) (inputs, expected []*linalg.Vector) {
	return train.Split(examples)
}

// Evaluate scores net on examples: an example passes when the largest
// output sits at the same index as the largest expected value.
func Evaluate(net *nn.Network, examples []Example, cfg Config) (Result, error) {
	return train.Evaluate(net, examples, cfg.Parallelism)
}
