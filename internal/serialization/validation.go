package serialization

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/born-ml/mlp/internal/nn"
)

// Header limits.
const (
	MaxMetadataEntries = 1024
	MaxMetadataKeyLen  = 256
	MaxMetadataSize    = 10 * 1024 * 1024 // 10MB across all keys and values
)

// ValidationLevel controls the strictness of header validation.
type ValidationLevel int

const (
	// ValidationStrict checks metadata, training state and that the header
	// describes the decoded network (default).
	ValidationStrict ValidationLevel = iota
	// ValidationNormal checks only that the header describes the network.
	ValidationNormal
	// ValidationNone skips header validation. Use only with trusted input.
	ValidationNone
)

// ValidateMetadata checks metadata size and key names.
func ValidateMetadata(metadata map[string]string) error {
	if len(metadata) > MaxMetadataEntries {
		return &ValidationError{
			Type:    "too_many_entries",
			Details: fmt.Sprintf("got %d, max %d", len(metadata), MaxMetadataEntries),
		}
	}

	total := 0
	for k, v := range metadata {
		total += len(k) + len(v)
		switch {
		case k == "":
			return &ValidationError{Type: "invalid_key", Details: "empty metadata key"}
		case len(k) > MaxMetadataKeyLen:
			return &ValidationError{
				Type:    "invalid_key",
				Field:   k[:16] + "...",
				Details: fmt.Sprintf("length %d > max %d", len(k), MaxMetadataKeyLen),
			}
		case strings.ContainsRune(k, 0):
			return &ValidationError{Type: "invalid_key", Field: k, Details: "contains null byte"}
		}
	}
	if total > MaxMetadataSize {
		return &ValidationError{
			Type:    "metadata_too_large",
			Details: fmt.Sprintf("%d bytes > max %d", total, MaxMetadataSize),
		}
	}
	return nil
}

// ValidateTraining checks that recorded training state is in range.
func ValidateTraining(t *TrainingMeta) error {
	if t == nil {
		return nil
	}
	switch {
	case t.Epoch < 0:
		return &ValidationError{Type: "invalid_training", Field: "epoch", Details: fmt.Sprintf("%d < 0", t.Epoch)}
	case t.BatchSize < 0:
		return &ValidationError{Type: "invalid_training", Field: "batch_size", Details: fmt.Sprintf("%d < 0", t.BatchSize)}
	case math.IsNaN(t.Accuracy) || t.Accuracy < 0 || t.Accuracy > 1:
		return &ValidationError{Type: "invalid_training", Field: "accuracy", Details: fmt.Sprintf("%v not in [0, 1]", t.Accuracy)}
	}
	return nil
}

// ValidateHeader checks h against the network decoded from the same file.
func ValidateHeader(h *Header, net *nn.Network, level ValidationLevel) error {
	if level == ValidationNone {
		return nil
	}

	if len(h.Sizes) > 0 && !slices.Equal(h.Sizes, net.Sizes()) {
		return &ValidationError{
			Type:    "size_mismatch",
			Field:   "sizes",
			Details: fmt.Sprintf("header %v, payload %v", h.Sizes, net.Sizes()),
		}
	}

	if level == ValidationStrict {
		if err := ValidateMetadata(h.Metadata); err != nil {
			return err
		}
		if err := ValidateTraining(h.Training); err != nil {
			return err
		}
	}
	return nil
}
