package serialization

import (
	"errors"
	"fmt"
	"os"

	"github.com/born-ml/mlp/internal/nn"
)

// ErrReaderClosed is returned by MmapReader methods after Close.
var ErrReaderClosed = errors.New("reader is closed")

// MmapReader provides memory-mapped access to model files.
// Only the headers are parsed on open; the payload is hashed or decoded on
// demand.
type MmapReader struct {
	file    *os.File
	data    []byte // mapped region (read-only)
	size    int64
	fixed   fixedHeader
	header  Header
	payload []byte // slice of data
	closed  bool
}

// NewMmapReader maps the model file at path and parses its headers.
//
// Important: Always call Close() when done to unmap the file (use defer).
func NewMmapReader(path string) (*MmapReader, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model loading
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if stat.Size() < FixedHeaderSize {
		_ = file.Close()
		return nil, fmt.Errorf("file of %d bytes: %w", stat.Size(), ErrTruncated)
	}

	data, err := mmapFile(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("mmap failed: %w", err)
	}

	r := &MmapReader{file: file, data: data, size: stat.Size()}
	if err := r.parse(); err != nil {
		_ = r.Close()
		return nil, err
	}
	return r, nil
}

func (r *MmapReader) parse() error {
	fh, err := parseFixedHeader(r.data)
	if err != nil {
		return err
	}

	headerEnd := uint64(FixedHeaderSize) + fh.headerSize
	payloadEnd := headerEnd + fh.payloadSize
	if payloadEnd > uint64(r.size) { //nolint:gosec // G115: size from Stat is non-negative
		return fmt.Errorf("file of %d bytes, headers declare %d: %w", r.size, payloadEnd, ErrTruncated)
	}

	header, err := parseHeaderJSON(r.data[FixedHeaderSize:headerEnd])
	if err != nil {
		return err
	}
	if err := ValidateMetadata(header.Metadata); err != nil {
		return fmt.Errorf("header validation failed: %w", err)
	}

	r.fixed = fh
	r.header = header
	r.payload = r.data[headerEnd:payloadEnd]
	return nil
}

// Close unmaps and closes the file.
func (r *MmapReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	var err error
	if r.data != nil {
		err = munmapFile(r.data)
		r.data = nil
		r.payload = nil
	}
	if closeErr := r.file.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

// Header returns the JSON header.
func (r *MmapReader) Header() Header {
	return r.header
}

// Version returns the format version.
func (r *MmapReader) Version() uint32 {
	return r.fixed.version
}

// Flags returns the flags bitfield.
func (r *MmapReader) Flags() uint32 {
	return r.fixed.flags
}

// Checksum returns the stored payload checksum.
func (r *MmapReader) Checksum() [ChecksumSize]byte {
	return r.fixed.checksum
}

// PayloadSize returns the size in bytes of the Network block.
func (r *MmapReader) PayloadSize() int {
	return len(r.payload)
}

// Verify hashes the mapped payload and compares it to the stored checksum.
func (r *MmapReader) Verify() error {
	if r.closed {
		return ErrReaderClosed
	}
	return ValidateChecksum(ComputeChecksum(r.payload), r.fixed.checksum)
}

// Network decodes the mapped payload. The result owns its memory and stays
// valid after Close.
func (r *MmapReader) Network(opts ReaderOptions) (*nn.Network, error) {
	if r.closed {
		return nil, ErrReaderClosed
	}
	if !opts.SkipChecksumValidation {
		if err := r.Verify(); err != nil {
			return nil, err
		}
	}
	return buildNetwork(&r.header, r.payload, opts.ValidationLevel)
}
