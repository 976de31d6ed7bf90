// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package train_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/mlp/linalg"
	"github.com/born-ml/mlp/nn"
	"github.com/born-ml/mlp/train"
)

func TestQuadratic_LearnsAND(t *testing.T) {
	net, err := nn.NewNetwork(2, 1)
	require.NoError(t, err)
	require.NoError(t, nn.Normal(net, 11))

	var examples []train.Example
	for _, c := range [][3]float64{{0, 0, 0}, {0, 1, 0}, {1, 0, 0}, {1, 1, 1}} {
		in, err := linalg.VectorFrom([]float64{c[0], c[1]})
		require.NoError(t, err)
		out, err := linalg.VectorFrom([]float64{c[2]})
		require.NoError(t, err)
		examples = append(examples, train.Example{Input: in, Expected: out})
	}

	cfg := train.DefaultConfig()
	before, err := train.Evaluate(net, examples, cfg)
	require.NoError(t, err)

	trainer := train.NewQuadratic(cfg)
	inputs, expected := train.Split(examples)
	for i := 0; i < 2000; i++ {
		require.NoError(t, trainer.RunGradientDescent(net, inputs, expected, 2))
	}

	after, err := train.Evaluate(net, examples, cfg)
	require.NoError(t, err)
	assert.Less(t, after.AverageCost, before.AverageCost)
	assert.Less(t, after.AverageCost, 0.1)

	err = trainer.RunGradientDescent(net, inputs, expected[:1], 1)
	require.ErrorIs(t, err, train.ErrBatchMismatch)
}
