package serialization

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrTruncated          = errors.New("unexpected end of data")
	ErrBadBlock           = errors.New("malformed parameter block")
	ErrChecksumMismatch   = errors.New("checksum mismatch: file may be corrupted")
	ErrHeaderTooLarge     = errors.New("header exceeds maximum size")
	ErrInvalidMagic       = errors.New("invalid magic bytes")
	ErrUnsupportedVersion = errors.New("unsupported format version")
	ErrUnknownActivation  = errors.New("unknown activation")
)

// ValidationError describes a header that is well formed but inconsistent.
type ValidationError struct {
	Type    string // kind of failure, e.g. "size_mismatch"
	Field   string // header field or metadata key involved
	Details string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %q: %s", e.Type, e.Field, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Details)
}
