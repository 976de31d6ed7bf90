package serialization

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/born-ml/mlp/internal/linalg"
	"github.com/born-ml/mlp/internal/nn"
)

const readChunkValues = 1 << 13

// WriteMatrix writes the current view of m as a Matrix block.
func WriteMatrix(w io.Writer, m *linalg.Matrix) error {
	width, height := m.Width(), m.Height()
	if width > math.MaxInt32 || height > math.MaxInt32 {
		return fmt.Errorf("%dx%d matrix does not fit int32 dimensions: %w", width, height, ErrBadBlock)
	}

	values := m.Values()
	buf := make([]byte, 8+8*len(values))
	binary.LittleEndian.PutUint32(buf[0:4], uint32(width))  //nolint:gosec // G115: checked above
	binary.LittleEndian.PutUint32(buf[4:8], uint32(height)) //nolint:gosec // G115: checked above
	for i, v := range values {
		binary.LittleEndian.PutUint64(buf[8+8*i:], math.Float64bits(v))
	}

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("failed to write matrix: %w", err)
	}
	return nil
}

// WriteVector writes v as a Matrix block of width 1.
func WriteVector(w io.Writer, v *linalg.Vector) error {
	return WriteMatrix(w, v.Matrix())
}

// WriteLayer writes the weights then the biases of l.
func WriteLayer(w io.Writer, l *nn.Layer) error {
	if err := WriteMatrix(w, l.Weights()); err != nil {
		return fmt.Errorf("weights: %w", err)
	}
	if err := WriteVector(w, l.Biases()); err != nil {
		return fmt.Errorf("biases: %w", err)
	}
	return nil
}

// WriteNetwork writes the layer count then every layer in forward order.
// The activation is not part of the block.
func WriteNetwork(w io.Writer, net *nn.Network) error {
	layers := net.Layers()
	var count [4]byte
	binary.LittleEndian.PutUint32(count[:], uint32(len(layers))) //nolint:gosec // G115: bounded by memory
	if _, err := w.Write(count[:]); err != nil {
		return fmt.Errorf("failed to write layer count: %w", err)
	}
	for i, l := range layers {
		if err := WriteLayer(w, l); err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
	}
	return nil
}

// MarshalNetwork returns the Network block of net.
func MarshalNetwork(net *nn.Network) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteNetwork(&buf, net); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// readFull fills buf from r, reporting short input as ErrTruncated.
func readFull(r io.Reader, buf []byte, what string) error {
	if _, err := io.ReadFull(r, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("reading %s: %w", what, ErrTruncated)
		}
		return fmt.Errorf("reading %s: %w", what, err)
	}
	return nil
}

func readInt32(r io.Reader, what string) (int, error) {
	var buf [4]byte
	if err := readFull(r, buf[:], what); err != nil {
		return 0, err
	}
	return int(int32(binary.LittleEndian.Uint32(buf[:]))), nil //nolint:gosec // G115: sign is intended
}

// ReadMatrix reads a Matrix block.
func ReadMatrix(r io.Reader) (*linalg.Matrix, error) {
	width, err := readInt32(r, "matrix width")
	if err != nil {
		return nil, err
	}
	height, err := readInt32(r, "matrix height")
	if err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("matrix dimensions %dx%d: %w", width, height, ErrBadBlock)
	}
	if int64(width)*int64(height) > MaxBlockValues {
		return nil, fmt.Errorf("matrix of %d values exceeds %d: %w", int64(width)*int64(height), MaxBlockValues, ErrBadBlock)
	}

	// Values are read in chunks so a corrupt size fails on short input
	// before the full buffer is allocated.
	n := width * height
	values := make([]float64, 0, min(n, readChunkValues))
	raw := make([]byte, 8*min(n, readChunkValues))
	for len(values) < n {
		chunk := raw[:8*min(n-len(values), readChunkValues)]
		if err := readFull(r, chunk, "matrix values"); err != nil {
			return nil, err
		}
		for i := 0; i < len(chunk); i += 8 {
			values = append(values, math.Float64frombits(binary.LittleEndian.Uint64(chunk[i:])))
		}
	}

	return linalg.FromValues(width, values)
}

// ReadVector reads a Matrix block that must be one column wide.
func ReadVector(r io.Reader) (*linalg.Vector, error) {
	m, err := ReadMatrix(r)
	if err != nil {
		return nil, err
	}
	v, err := linalg.AsVector(m)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadBlock, err)
	}
	return v, nil
}

// ReadLayer reads a weights block followed by a biases block.
func ReadLayer(r io.Reader) (*nn.Layer, error) {
	weights, err := ReadMatrix(r)
	if err != nil {
		return nil, fmt.Errorf("weights: %w", err)
	}
	biases, err := ReadVector(r)
	if err != nil {
		return nil, fmt.Errorf("biases: %w", err)
	}
	l, err := nn.LayerFrom(weights, biases)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadBlock, err)
	}
	return l, nil
}

// ReadNetwork reads a Network block. The network gets the default
// activation.
func ReadNetwork(r io.Reader) (*nn.Network, error) {
	count, err := readInt32(r, "layer count")
	if err != nil {
		return nil, err
	}
	if count <= 0 || count > MaxLayerCount {
		return nil, fmt.Errorf("layer count %d: %w", count, ErrBadBlock)
	}

	layers := make([]*nn.Layer, count)
	for i := range layers {
		l, err := ReadLayer(r)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		layers[i] = l
	}

	net, err := nn.NetworkFrom(layers)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadBlock, err)
	}
	return net, nil
}

// UnmarshalNetwork decodes a Network block that must span all of data.
func UnmarshalNetwork(data []byte) (*nn.Network, error) {
	r := bytes.NewReader(data)
	net, err := ReadNetwork(r)
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("%d trailing bytes after network: %w", r.Len(), ErrBadBlock)
	}
	return net, nil
}
