package linalg

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/mlp/internal/parallel"
)

// requirePanicsWith runs f and checks it panics with an error matching target.
func requirePanicsWith(t *testing.T, target error, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		require.ErrorIs(t, err, target)
	}()
	f()
}

func mustMatrix(t *testing.T, width int, values ...float64) *Matrix {
	t.Helper()
	m, err := FromValues(width, values)
	require.NoError(t, err)
	return m
}

func TestNew_InvalidShape(t *testing.T) {
	for _, dims := range [][2]int{{0, 1}, {1, 0}, {-1, 3}, {3, -2}} {
		_, err := New(dims[0], dims[1])
		require.ErrorIs(t, err, ErrBadShape, "New(%d, %d)", dims[0], dims[1])
	}
}

func TestNew_ZeroFilled(t *testing.T) {
	for _, dims := range [][2]int{{1, 1}, {1, 2}, {2, 1}, {4, 3}} {
		m, err := New(dims[0], dims[1])
		require.NoError(t, err)

		assert.Equal(t, dims[0], m.Width())
		assert.Equal(t, dims[1], m.Height())
		for y := 0; y < m.Height(); y++ {
			for x := 0; x < m.Width(); x++ {
				assert.Zero(t, m.At(x, y))
			}
		}
	}
}

func TestFromValues_Invalid(t *testing.T) {
	_, err := FromValues(0, []float64{1})
	require.ErrorIs(t, err, ErrBadShape)

	_, err = FromValues(1, nil)
	require.ErrorIs(t, err, ErrBadShape)

	_, err = FromValues(2, []float64{1, 2, 3})
	require.ErrorIs(t, err, ErrBadShape)
}

func TestFromValues_Layout(t *testing.T) {
	tests := []struct {
		width, height int
		values        []float64
	}{
		{1, 1, []float64{3}},
		{1, 2, []float64{3, 4}},
		{2, 1, []float64{3, 4}},
		{3, 2, []float64{1, 2, 3, 4, 5, 6}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%dx%d", tt.width, tt.height), func(t *testing.T) {
			m := mustMatrix(t, tt.width, tt.values...)

			assert.Equal(t, tt.width, m.Width())
			assert.Equal(t, tt.height, m.Height())
			for y := 0; y < tt.height; y++ {
				for x := 0; x < tt.width; x++ {
					assert.Equal(t, tt.values[y*tt.width+x], m.At(x, y))
				}
			}
		})
	}
}

func TestAt_OutOfRange(t *testing.T) {
	m, err := New(2, 3)
	require.NoError(t, err)

	for _, xy := range [][2]int{{2, 0}, {-1, 0}, {0, 3}, {0, -1}} {
		requirePanicsWith(t, ErrOutOfRange, func() { m.At(xy[0], xy[1]) })
		requirePanicsWith(t, ErrOutOfRange, func() { m.Set(xy[0], xy[1], 1) })

		_, err := m.Get(xy[0], xy[1])
		require.ErrorIs(t, err, ErrOutOfRange)
	}
}

func TestAt_OutOfRangeTransposed(t *testing.T) {
	m, err := New(2, 3)
	require.NoError(t, err)
	tr := m.Transpose()

	for _, xy := range [][2]int{{3, 0}, {-1, 0}, {0, 2}, {0, -1}} {
		requirePanicsWith(t, ErrOutOfRange, func() { tr.At(xy[0], xy[1]) })
	}

	// In range only after transposition.
	assert.NotPanics(t, func() { tr.At(2, 1) })
}

func TestTranspose_View(t *testing.T) {
	m := mustMatrix(t, 3, 1, 2, 3, 4, 5, 6)
	tr := m.Transpose()

	assert.True(t, tr.Transposed())
	assert.Equal(t, 2, tr.Width())
	assert.Equal(t, 3, tr.Height())

	want := [][]float64{{1, 4}, {2, 5}, {3, 6}}
	for y, row := range want {
		for x, v := range row {
			assert.Equal(t, v, tr.At(x, y), "(%d,%d)", x, y)
		}
	}
}

func TestTranspose_Twice(t *testing.T) {
	m := mustMatrix(t, 3, 1, 2, 3, 4, 5, 6)
	back := m.Transpose().Transpose()

	assert.False(t, back.Transposed())
	assert.Equal(t, m.Width(), back.Width())
	assert.Equal(t, m.Height(), back.Height())
	assert.Equal(t, m.Values(), back.Values())
}

func TestTranspose_Aliases(t *testing.T) {
	m := mustMatrix(t, 3, 1, 2, 3, 4, 5, 6)
	tr := m.Transpose()

	tr.Set(1, 0, 40)
	assert.Equal(t, 40.0, m.At(0, 1))

	m.Set(2, 0, 30)
	assert.Equal(t, 30.0, tr.At(0, 2))

	m.Apply(func(v float64) float64 { return -v })
	assert.Equal(t, -40.0, tr.At(1, 0))
}

func TestClone_BreaksAliasing(t *testing.T) {
	m := mustMatrix(t, 2, 1, 2, 3, 4)
	tr := m.Transpose()
	c := tr.Clone()

	assert.True(t, c.Transposed())
	assert.Equal(t, tr.Values(), c.Values())

	c.Set(0, 1, 100)
	assert.Equal(t, 2.0, m.At(1, 0))
	assert.Equal(t, 2.0, tr.At(0, 1))
}

func TestSet_Values(t *testing.T) {
	m, err := New(3, 2)
	require.NoError(t, err)

	v := 1.0
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			m.Set(x, y, v)
			v++
		}
	}

	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, m.Values())
}

func TestApply(t *testing.T) {
	m := mustMatrix(t, 2, 1, 2, 3, 4)
	m.Apply(func(v float64) float64 { return v * v })
	assert.Equal(t, []float64{1, 4, 9, 16}, m.Values())

	m.Scale(0.5)
	assert.Equal(t, []float64{0.5, 2, 4.5, 8}, m.Values())
}

func TestApplyWith_Mismatch(t *testing.T) {
	a := mustMatrix(t, 2, 1, 2, 3, 4, 5, 6)
	b := mustMatrix(t, 3, 1, 2, 3, 4, 5, 6)

	err := a.Add(b)
	require.ErrorIs(t, err, ErrDimensionMismatch)
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, a.Values(), "failed add must not mutate")

	require.ErrorIs(t, a.Add(nil), ErrNilMatrix)
}

func TestApplyWith_MixedViews(t *testing.T) {
	a := mustMatrix(t, 2, 1, 2, 3, 4, 5, 6)    // 2 wide, 3 high
	b := mustMatrix(t, 3, 10, 30, 50, 20, 40, 60) // 3 wide, 2 high

	require.NoError(t, a.Add(b.Transpose()))
	assert.Equal(t, []float64{11, 22, 33, 44, 55, 66}, a.Values())

	require.NoError(t, a.ApplyWith(a.Clone(), func(v, o float64) float64 { return v - o }))
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0}, a.Values())
}

func TestApplyWith_Parallel(t *testing.T) {
	prev := Parallelism()
	defer SetParallelism(prev)
	SetParallelism(parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1})

	n := 257
	av := make([]float64, n)
	bv := make([]float64, n)
	for i := range av {
		av[i] = float64(i)
		bv[i] = float64(2 * i)
	}
	a := mustMatrix(t, 1, av...)
	b := mustMatrix(t, 1, bv...)

	require.NoError(t, a.Add(b))
	for i := 0; i < n; i++ {
		assert.Equal(t, float64(3*i), a.At(0, i))
	}
}

func TestDot(t *testing.T) {
	tests := []struct {
		name   string
		a, b   *Matrix
		width  int
		height int
		want   []float64
	}{
		{"1x1 by 1x1", mustMatrix(t, 1, 2), mustMatrix(t, 1, 3), 1, 1, []float64{6}},
		{"2x2 by column", mustMatrix(t, 2, 1, 2, 3, 4), mustMatrix(t, 1, 1, 2), 1, 2, []float64{5, 11}},
		{"column by row", mustMatrix(t, 1, 1, 2), mustMatrix(t, 2, 3, 4), 2, 2, []float64{3, 4, 6, 8}},
		{"2x3 by 3x2", mustMatrix(t, 2, 1, 2, 3, 4, 5, 6), mustMatrix(t, 3, 1, 2, 3, 4, 5, 6), 3, 3,
			[]float64{9, 12, 15, 19, 26, 33, 29, 40, 51}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Dot(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.width, got.Width())
			assert.Equal(t, tt.height, got.Height())
			assert.Equal(t, tt.want, got.Values())
		})
	}
}

func TestDot_ShapeLaw(t *testing.T) {
	for p := 1; p <= 3; p++ {
		for m := 1; m <= 3; m++ {
			for n := 1; n <= 3; n++ {
				a, err := New(p, m)
				require.NoError(t, err)
				b, err := New(n, p)
				require.NoError(t, err)

				got, err := Dot(a, b)
				require.NoError(t, err)
				assert.Equal(t, n, got.Width())
				assert.Equal(t, m, got.Height())
			}
		}
	}
}

func TestDot_Transposed(t *testing.T) {
	a := mustMatrix(t, 2, 1, 2, 3, 4) // [[1,2],[3,4]]
	v := mustMatrix(t, 1, 1, 2)

	got, err := Dot(a.Transpose(), v)
	require.NoError(t, err)
	assert.Equal(t, []float64{7, 10}, got.Values())
}

func TestDot_Mismatch(t *testing.T) {
	a := mustMatrix(t, 2, 1, 2, 3, 4)
	b := mustMatrix(t, 1, 1, 2, 3)

	_, err := Dot(a, b)
	require.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = Dot(nil, b)
	require.ErrorIs(t, err, ErrNilMatrix)
}

func TestDot_Deterministic(t *testing.T) {
	prev := Parallelism()
	defer SetParallelism(prev)
	SetParallelism(parallel.Config{Enabled: true, NumWorkers: 8, MinChunkSize: 1})

	values := make([]float64, 64*64)
	for i := range values {
		values[i] = 1 / float64(i+3)
	}
	a := mustMatrix(t, 64, values...)

	first, err := Dot(a, a.Transpose())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			again, err := Dot(a, a.Transpose())
			assert.NoError(t, err)
			assert.Equal(t, first.Values(), again.Values())
		}()
	}
	wg.Wait()
}

func TestString(t *testing.T) {
	m := mustMatrix(t, 2, 1, 2, 3, 4)
	assert.Equal(t, "[1, 2]\n[3, 4]\n", m.String())
	assert.Equal(t, "[1, 3]\n[2, 4]\n", m.Transpose().String())
}

func TestErrorsWrapContext(t *testing.T) {
	_, err := New(0, 2)
	assert.True(t, errors.Is(err, ErrBadShape))
	assert.Contains(t, err.Error(), "0x2")
}
