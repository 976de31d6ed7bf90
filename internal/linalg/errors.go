package linalg

import "errors"

// Sentinel errors. Match them with errors.Is; messages are wrapped with
// call-site context.
var (
	// ErrBadShape is returned when a matrix would have a non-positive
	// dimension or its flat values do not fill whole rows.
	ErrBadShape = errors.New("linalg: invalid shape")

	// ErrOutOfRange is carried by the panic of an out-of-range At or Set and
	// returned by Get.
	ErrOutOfRange = errors.New("linalg: index out of range")

	// ErrDimensionMismatch indicates operands whose shapes are incompatible
	// for an elementwise operation or a dot product.
	ErrDimensionMismatch = errors.New("linalg: dimension mismatch")

	// ErrNilMatrix indicates a nil matrix or vector argument.
	ErrNilMatrix = errors.New("linalg: nil matrix")

	// ErrNotColumn is returned when a matrix used as a vector has more than
	// one column.
	ErrNotColumn = errors.New("linalg: matrix is not a single column")

	// ErrBadTemperature is returned by Softmax for a temperature <= 0.
	ErrBadTemperature = errors.New("linalg: softmax temperature must be > 0")
)
