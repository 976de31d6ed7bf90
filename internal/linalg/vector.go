package linalg

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/mlp/internal/parallel"
)

// Vector is a column vector: a one-column Matrix. It owns no storage of its
// own.
type Vector struct {
	m *Matrix
}

// NewVector creates a zero vector with size elements.
func NewVector(size int) (*Vector, error) {
	m, err := New(1, size)
	if err != nil {
		return nil, fmt.Errorf("new vector: %w", err)
	}
	return &Vector{m: m}, nil
}

// VectorFrom creates a vector over values. The vector takes ownership of
// the slice.
func VectorFrom(values []float64) (*Vector, error) {
	m, err := FromValues(1, values)
	if err != nil {
		return nil, fmt.Errorf("new vector: %w", err)
	}
	return &Vector{m: m}, nil
}

// AsVector wraps a single-column matrix. The vector shares m's buffer.
func AsVector(m *Matrix) (*Vector, error) {
	if m == nil {
		return nil, fmt.Errorf("as vector: %w", ErrNilMatrix)
	}
	if m.Width() != 1 || m.Height() == 0 {
		return nil, fmt.Errorf("as vector: %dx%d: %w", m.Width(), m.Height(), ErrNotColumn)
	}
	return &Vector{m: m}, nil
}

// Matrix returns the underlying one-column matrix.
func (v *Vector) Matrix() *Matrix { return v.m }

// Size returns the number of elements.
func (v *Vector) Size() int { return v.m.Height() }

// At returns element i. It panics if i is out of range.
func (v *Vector) At(i int) float64 { return v.m.At(0, i) }

// Set stores x at element i. It panics if i is out of range.
func (v *Vector) Set(i int, x float64) { v.m.Set(0, i, x) }

// Apply replaces every element x with f(x).
func (v *Vector) Apply(f func(x float64) float64) { v.m.Apply(f) }

// Add adds o to v in place.
func (v *Vector) Add(o *Vector) error {
	if o == nil {
		return fmt.Errorf("vector add: %w", ErrNilMatrix)
	}
	return v.m.Add(o.m)
}

// Clone returns an independent copy of v.
func (v *Vector) Clone() *Vector {
	return &Vector{m: v.m.Clone()}
}

// Values returns a copy of the elements.
func (v *Vector) Values() []float64 { return v.m.Values() }

// String renders v as a single row.
func (v *Vector) String() string { return fmt.Sprint(v.Values()) }

// Combine returns a new vector with element i = f(a[i], b[i]).
func Combine(a, b *Vector, f func(x, y float64) float64) (*Vector, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("combine: %w", ErrNilMatrix)
	}
	if a.Size() != b.Size() {
		return nil, fmt.Errorf("combine %d with %d elements: %w", a.Size(), b.Size(), ErrDimensionMismatch)
	}

	values := make([]float64, a.Size())
	parallel.For(len(values), func(i int) {
		values[i] = f(a.At(i), b.At(i))
	}, Parallelism())

	return VectorFrom(values)
}

// Softmax returns exp(x/temperature) normalised to sum to one.
//
// The maximum is not subtracted first, so large inputs overflow to +Inf
// and the result contains NaN.
func (v *Vector) Softmax(temperature float64) (*Vector, error) {
	if temperature <= 0 {
		return nil, fmt.Errorf("softmax at %g: %w", temperature, ErrBadTemperature)
	}

	values := v.Values()
	parallel.For(len(values), func(i int) {
		values[i] = math.Exp(values[i] / temperature)
	}, Parallelism())

	total := floats.Sum(values)
	parallel.For(len(values), func(i int) {
		values[i] /= total
	}, Parallelism())

	return VectorFrom(values)
}

// ArgMax returns the index of the largest element, the first on ties.
func (v *Vector) ArgMax() int {
	return floats.MaxIdx(v.Values())
}

// Outer returns the outer product column ⊗ row: a row.Size() wide,
// column.Size() high matrix with cell (x, y) = column[y]·row[x].
func Outer(column, row *Vector) (*Matrix, error) {
	if column == nil || row == nil {
		return nil, fmt.Errorf("outer: %w", ErrNilMatrix)
	}
	return Dot(column.m, row.m.Transpose())
}

// MulVec returns the matrix-vector product m·v as a vector.
func MulVec(m *Matrix, v *Vector) (*Vector, error) {
	if v == nil {
		return nil, fmt.Errorf("mulvec: %w", ErrNilMatrix)
	}
	out, err := Dot(m, v.m)
	if err != nil {
		return nil, err
	}
	return &Vector{m: out}, nil
}
