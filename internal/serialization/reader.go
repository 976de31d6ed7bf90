package serialization

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/born-ml/mlp/internal/nn"
)

// ReaderOptions configures model decoding.
type ReaderOptions struct {
	SkipChecksumValidation bool            // Skip checksum validation (faster but less safe)
	ValidationLevel        ValidationLevel // Header checks, strict by default
}

// fixedHeader is the decoded binary prefix of a model file.
type fixedHeader struct {
	version     uint32
	flags       uint32
	headerSize  uint64
	payloadSize uint64
	checksum    [ChecksumSize]byte
}

// parseFixedHeader decodes and bounds-checks the first FixedHeaderSize bytes.
func parseFixedHeader(b []byte) (fixedHeader, error) {
	if len(b) < FixedHeaderSize {
		return fixedHeader{}, fmt.Errorf("reading fixed header: %w", ErrTruncated)
	}
	if string(b[:4]) != MagicBytes {
		return fixedHeader{}, ErrInvalidMagic
	}

	fh := fixedHeader{
		version:     binary.LittleEndian.Uint32(b[4:8]),
		flags:       binary.LittleEndian.Uint32(b[8:12]),
		headerSize:  binary.LittleEndian.Uint64(b[16:24]),
		payloadSize: binary.LittleEndian.Uint64(b[24:32]),
	}
	copy(fh.checksum[:], b[ChecksumOffset:ChecksumOffset+ChecksumSize])

	if fh.version != FormatVersion {
		return fixedHeader{}, fmt.Errorf("%w: got %d, expected %d", ErrUnsupportedVersion, fh.version, FormatVersion)
	}
	if fh.headerSize > MaxHeaderSize {
		return fixedHeader{}, ErrHeaderTooLarge
	}
	if fh.payloadSize > MaxPayloadSize {
		return fixedHeader{}, fmt.Errorf("payload of %d bytes: %w", fh.payloadSize, ErrBadBlock)
	}
	return fh, nil
}

func parseHeaderJSON(data []byte) (Header, error) {
	var header Header
	if err := json.Unmarshal(data, &header); err != nil {
		return Header{}, fmt.Errorf("failed to parse header JSON: %w", err)
	}
	return header, nil
}

// buildNetwork decodes payload and restores the activation named in header.
func buildNetwork(header *Header, payload []byte, level ValidationLevel) (*nn.Network, error) {
	net, err := UnmarshalNetwork(payload)
	if err != nil {
		return nil, err
	}
	if header.Activation != "" {
		act, ok := nn.ActivationByName(header.Activation)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownActivation, header.Activation)
		}
		net.Activation = act
	}
	if err := ValidateHeader(header, net, level); err != nil {
		return nil, err
	}
	return net, nil
}

// Decode reads a model file written by Encode.
func Decode(r io.Reader, opts ReaderOptions) (*nn.Network, Header, error) {
	fixed := make([]byte, FixedHeaderSize)
	if err := readFull(r, fixed[:4], "magic bytes"); err != nil {
		return nil, Header{}, err
	}
	if string(fixed[:4]) != MagicBytes {
		return nil, Header{}, ErrInvalidMagic
	}
	if err := readFull(r, fixed[4:], "fixed header"); err != nil {
		return nil, Header{}, err
	}
	fh, err := parseFixedHeader(fixed)
	if err != nil {
		return nil, Header{}, err
	}

	headerJSON := make([]byte, fh.headerSize)
	if err := readFull(r, headerJSON, "header"); err != nil {
		return nil, Header{}, err
	}
	header, err := parseHeaderJSON(headerJSON)
	if err != nil {
		return nil, Header{}, err
	}

	payload, err := io.ReadAll(io.LimitReader(r, int64(fh.payloadSize))) //nolint:gosec // G115: bounded by MaxPayloadSize
	if err != nil {
		return nil, Header{}, fmt.Errorf("reading network payload: %w", err)
	}
	if uint64(len(payload)) != fh.payloadSize {
		return nil, Header{}, fmt.Errorf("reading network payload: %w", ErrTruncated)
	}
	if !opts.SkipChecksumValidation {
		if err := ValidateChecksum(ComputeChecksum(payload), fh.checksum); err != nil {
			return nil, Header{}, err
		}
	}

	net, err := buildNetwork(&header, payload, opts.ValidationLevel)
	if err != nil {
		return nil, Header{}, err
	}
	return net, header, nil
}

// LoadFile reads a model file from path.
func LoadFile(path string, opts ReaderOptions) (*nn.Network, Header, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model loading
	file, err := os.Open(path)
	if err != nil {
		return nil, Header{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Decode(bufio.NewReader(file), opts)
}
