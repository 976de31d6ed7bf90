// Package linalg implements the dense matrix and column-vector engine the
// network and trainer are built on.
//
// A Matrix is a view over a flat row-major float64 buffer. Transpose
// returns a second view over the same buffer with the index mapping
// swapped, so writes through either view are visible through the other:
//
//	m, _ := linalg.FromValues(3, []float64{1, 2, 3, 4, 5, 6}) // 3 wide, 2 high
//	t := m.Transpose()                                        // 2 wide, 3 high
//	t.Set(1, 0, 40)                                           // m.At(0, 1) == 40
//
// Clone is the only way to break that aliasing.
//
// Coordinates are (x, y): x selects the column, y the row, both relative to
// the current view. Elementwise operations and Dot fan out over cells with
// package parallel; cells never depend on each other, and Dot sums each
// cell over the shared dimension left to right, so results are reproducible.
//
// Shape and dimension problems are returned as errors. Out-of-range indexing
// is a programming error and panics with an error wrapping ErrOutOfRange.
package linalg
