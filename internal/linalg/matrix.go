package linalg

import (
	"fmt"
	"strings"

	"github.com/born-ml/mlp/internal/parallel"
)

// Matrix is a dense float64 matrix over a flat row-major buffer.
//
// width and height are the dimensions the buffer was built with and never
// change; Width and Height report the dimensions of the current view.
type Matrix struct {
	width      int       // raw columns
	height     int       // raw rows
	data       []float64 // len == width*height, possibly shared with other views
	transposed bool
}

// New creates a zero-filled width×height matrix.
func New(width, height int) (*Matrix, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("new %dx%d matrix: %w", width, height, ErrBadShape)
	}
	return &Matrix{
		width:  width,
		height: height,
		data:   make([]float64, width*height),
	}, nil
}

// FromValues creates a matrix of the given width filled row-major from
// values. The matrix takes ownership of values; the caller must not modify
// the slice afterwards.
func FromValues(width int, values []float64) (*Matrix, error) {
	if width <= 0 || len(values) == 0 {
		return nil, fmt.Errorf("matrix of width %d from %d values: %w", width, len(values), ErrBadShape)
	}
	if len(values)%width != 0 {
		return nil, fmt.Errorf("%d values do not fill rows of width %d: %w", len(values), width, ErrBadShape)
	}
	return &Matrix{
		width:  width,
		height: len(values) / width,
		data:   values,
	}, nil
}

// Width returns the number of columns of the current view.
func (m *Matrix) Width() int {
	if m.transposed {
		return m.height
	}
	return m.width
}

// Height returns the number of rows of the current view.
func (m *Matrix) Height() int {
	if m.transposed {
		return m.width
	}
	return m.height
}

// Transposed reports whether m is a transposed view of its buffer.
func (m *Matrix) Transposed() bool {
	return m.transposed
}

// index maps view coordinates to a buffer offset without bounds checks.
func (m *Matrix) index(x, y int) int {
	if m.transposed {
		return x*m.width + y
	}
	return y*m.width + x
}

func (m *Matrix) checkedIndex(x, y int) (int, error) {
	if x < 0 || y < 0 || x >= m.Width() || y >= m.Height() {
		return 0, fmt.Errorf("(%d,%d) on %dx%d view: %w", x, y, m.Width(), m.Height(), ErrOutOfRange)
	}
	return m.index(x, y), nil
}

// Get returns the value at column x, row y of the current view.
func (m *Matrix) Get(x, y int) (float64, error) {
	idx, err := m.checkedIndex(x, y)
	if err != nil {
		return 0, err
	}
	return m.data[idx], nil
}

// At returns the value at column x, row y. It panics if (x, y) is out of range.
func (m *Matrix) At(x, y int) float64 {
	idx, err := m.checkedIndex(x, y)
	if err != nil {
		panic(fmt.Errorf("linalg: At%w", err))
	}
	return m.data[idx]
}

// Set stores v at column x, row y. It panics if (x, y) is out of range.
func (m *Matrix) Set(x, y int, v float64) {
	idx, err := m.checkedIndex(x, y)
	if err != nil {
		panic(fmt.Errorf("linalg: Set%w", err))
	}
	m.data[idx] = v
}

// Transpose returns a view of the same buffer with rows and columns swapped.
// It does not copy: writes through the result are visible through m.
func (m *Matrix) Transpose() *Matrix {
	return &Matrix{
		width:      m.width,
		height:     m.height,
		data:       m.data,
		transposed: !m.transposed,
	}
}

// Clone returns an independent copy of m, keeping its view.
func (m *Matrix) Clone() *Matrix {
	data := make([]float64, len(m.data))
	copy(data, m.data)
	return &Matrix{
		width:      m.width,
		height:     m.height,
		data:       data,
		transposed: m.transposed,
	}
}

// Apply replaces every cell v with f(v). f is called concurrently.
func (m *Matrix) Apply(f func(v float64) float64) {
	data := m.data
	parallel.For(len(data), func(i int) {
		data[i] = f(data[i])
	}, Parallelism())
}

// ApplyWith replaces every cell v of m with f(v, o), where o is the cell
// at the same view coordinates in other. f is called concurrently.
func (m *Matrix) ApplyWith(other *Matrix, f func(v, o float64) float64) error {
	if other == nil {
		return fmt.Errorf("apply with: %w", ErrNilMatrix)
	}
	if other.Width() != m.Width() || other.Height() != m.Height() {
		return fmt.Errorf("apply %dx%d with %dx%d: %w",
			m.Width(), m.Height(), other.Width(), other.Height(), ErrDimensionMismatch)
	}

	cfg := Parallelism()
	if m.sameLayout(other) {
		dst, src := m.data, other.data
		parallel.For(len(dst), func(i int) {
			dst[i] = f(dst[i], src[i])
		}, cfg)
		return nil
	}

	parallel.ForGrid(m.Width(), m.Height(), func(x, y int) {
		i := m.index(x, y)
		m.data[i] = f(m.data[i], other.data[other.index(x, y)])
	}, cfg)
	return nil
}

// sameLayout reports whether equal buffer offsets mean equal view
// coordinates in m and o.
func (m *Matrix) sameLayout(o *Matrix) bool {
	return m.width == o.width && m.height == o.height && m.transposed == o.transposed
}

// Add adds other to m in place.
func (m *Matrix) Add(other *Matrix) error {
	return m.ApplyWith(other, func(v, o float64) float64 { return v + o })
}

// Scale multiplies every cell of m by k.
func (m *Matrix) Scale(k float64) {
	m.Apply(func(v float64) float64 { return v * k })
}

// Dot returns the matrix product a·b.
//
// a.Width must equal b.Height. The result is b.Width wide and a.Height
// high, with cell (j, i) = Σ_k a(k, i)·b(j, k) summed in increasing k.
func Dot(a, b *Matrix) (*Matrix, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("dot: %w", ErrNilMatrix)
	}
	if a.Width() != b.Height() {
		return nil, fmt.Errorf("dot %dx%d with %dx%d: %w",
			a.Width(), a.Height(), b.Width(), b.Height(), ErrDimensionMismatch)
	}

	width, height, shared := b.Width(), a.Height(), a.Width()
	out := &Matrix{width: width, height: height, data: make([]float64, width*height)}

	parallel.ForGrid(width, height, func(j, i int) {
		var sum float64
		for k := 0; k < shared; k++ {
			sum += a.data[a.index(k, i)] * b.data[b.index(j, k)]
		}
		out.data[i*width+j] = sum
	}, Parallelism())

	return out, nil
}

// Values returns the cells of the current view in row-major order.
// The slice is a copy.
func (m *Matrix) Values() []float64 {
	w, h := m.Width(), m.Height()
	out := make([]float64, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out = append(out, m.data[m.index(x, y)])
		}
	}
	return out
}

// String renders the current view one row per line.
func (m *Matrix) String() string {
	var sb strings.Builder
	w, h := m.Width(), m.Height()
	for y := 0; y < h; y++ {
		sb.WriteByte('[')
		for x := 0; x < w; x++ {
			if x > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%g", m.data[m.index(x, y)])
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}
