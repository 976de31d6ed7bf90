// Package mnist reads the MNIST handwritten digit dataset.
//
// The official files use the IDX format:
//
//	magic number: 0x00 0x00 [data type] [dimension count]
//	dimensions:   one big-endian int32 per dimension
//	data:         big-endian values, last dimension varying fastest
//
// Image files are 3-D (count, rows, cols) of unsigned bytes; label files
// are 1-D (count) of unsigned bytes.
package mnist

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Errors returned while reading IDX data.
var (
	ErrBadMagic        = errors.New("mnist: invalid IDX magic number")
	ErrUnsupportedType = errors.New("mnist: unsupported IDX data type")
	ErrBadDimensions   = errors.New("mnist: unexpected IDX dimensions")
	ErrCountMismatch   = errors.New("mnist: image and label counts differ")
	ErrBadLabel        = errors.New("mnist: label is not a single digit")
	ErrTruncated       = errors.New("mnist: unexpected end of data")
)

// DataType is the element type byte of an IDX magic number.
type DataType byte

// IDX element types.
const (
	UnsignedByte DataType = 0x08
	SignedByte   DataType = 0x09
	Short        DataType = 0x0B
	Int          DataType = 0x0C
	Float        DataType = 0x0D
	Double       DataType = 0x0E
)

// Size returns the element width in bytes, or 0 for an unknown type.
func (t DataType) Size() int {
	switch t {
	case UnsignedByte, SignedByte:
		return 1
	case Short:
		return 2
	case Int, Float:
		return 4
	case Double:
		return 8
	default:
		return 0
	}
}

func (t DataType) String() string {
	switch t {
	case UnsignedByte:
		return "ubyte"
	case SignedByte:
		return "byte"
	case Short:
		return "short"
	case Int:
		return "int"
	case Float:
		return "float"
	case Double:
		return "double"
	default:
		return fmt.Sprintf("DataType(0x%02x)", byte(t))
	}
}

// Header is the decoded prefix of an IDX file.
type Header struct {
	Type       DataType
	Dimensions []int
}

// Count returns the number of elements the header describes.
func (h Header) Count() int {
	n := 1
	for _, d := range h.Dimensions {
		n *= d
	}
	return n
}

// ReadHeader reads the magic number and dimensions from r.
func ReadHeader(r io.Reader) (Header, error) {
	var magic [4]byte
	if err := readFull(r, magic[:], "magic number"); err != nil {
		return Header{}, err
	}
	if magic[0] != 0 || magic[1] != 0 {
		return Header{}, fmt.Errorf("%w: % x", ErrBadMagic, magic)
	}

	h := Header{Type: DataType(magic[2])}
	if h.Type.Size() == 0 {
		return Header{}, fmt.Errorf("%w: %v", ErrUnsupportedType, h.Type)
	}

	h.Dimensions = make([]int, magic[3])
	for i := range h.Dimensions {
		var buf [4]byte
		if err := readFull(r, buf[:], "dimension"); err != nil {
			return Header{}, err
		}
		d := int32(binary.BigEndian.Uint32(buf[:])) //nolint:gosec // G115: IDX dimensions are signed int32
		if d < 0 {
			return Header{}, fmt.Errorf("%w: dimension %d is %d", ErrBadDimensions, i, d)
		}
		h.Dimensions[i] = int(d)
	}
	return h, nil
}

func readFull(r io.Reader, buf []byte, what string) error {
	if _, err := io.ReadFull(r, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("reading %s: %w", what, ErrTruncated)
		}
		return fmt.Errorf("reading %s: %w", what, err)
	}
	return nil
}
