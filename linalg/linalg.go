// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package linalg provides the dense float64 matrices and column vectors the
// networks compute with.
//
// Matrices are stored row-major. Transpose returns a view sharing storage;
// Clone breaks the sharing. Elementwise operations and Dot fan out across
// cores; SetParallelism tunes or disables that.
package linalg

import (
	"github.com/born-ml/mlp/internal/linalg"
	"github.com/born-ml/mlp/internal/parallel"
)

// Matrix is a dense float64 matrix.
type Matrix = linalg.Matrix

// Vector is a single-column matrix.
type Vector = linalg.Vector

// ParallelConfig controls how operations fan out.
type ParallelConfig = parallel.Config

// Errors. Match them with errors.Is.
var (
	ErrBadShape          = linalg.ErrBadShape
	ErrOutOfRange        = linalg.ErrOutOfRange
	ErrDimensionMismatch = linalg.ErrDimensionMismatch
	ErrNotColumn         = linalg.ErrNotColumn
)

// New creates a zero matrix of the given width (columns) and height (rows).
func New(width, height int) (*Matrix, error) { return linalg.New(width, height) }

// FromValues creates a matrix of the given width over row-major values.
// The matrix takes ownership of the slice.
func FromValues(width int, values []float64) (*Matrix, error) {
	return linalg.FromValues(width, values)
}

// NewVector creates a zero vector.
func NewVector(size int) (*Vector, error) { return linalg.NewVector(size) }

// VectorFrom creates a vector over values, taking ownership of the slice.
func VectorFrom(values []float64) (*Vector, error) { return linalg.VectorFrom(values) }

// Outer returns column · rowᵀ.
func Outer(column, row *Vector) (*Matrix, error) { return linalg.Outer(column, row) }

// MulVec returns m · v.
func MulVec(m *Matrix, v *Vector) (*Vector, error) { return linalg.MulVec(m, v) }

// Combine applies f pairwise to two vectors of equal size.
func Combine(a, b *Vector, f func(x, y float64) float64) (*Vector, error) {
	return linalg.Combine(a, b, f)
}

// DefaultParallelism returns a config using every physical core.
func DefaultParallelism() ParallelConfig { return parallel.DefaultConfig() }

// SetParallelism replaces the fan-out used by all matrix operations.
func SetParallelism(cfg ParallelConfig) { linalg.SetParallelism(cfg) }
