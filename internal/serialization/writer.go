package serialization

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/born-ml/mlp/internal/nn"
)

// Encode writes net and header as a model file.
//
// FormatVersion, Sizes and Activation are filled from net. ModelID gets a
// fresh UUID and CreatedAt the current time when they are empty.
func Encode(w io.Writer, net *nn.Network, header Header) error {
	if err := ValidateMetadata(header.Metadata); err != nil {
		return err
	}
	if err := ValidateTraining(header.Training); err != nil {
		return err
	}
	payload, err := MarshalNetwork(net)
	if err != nil {
		return err
	}

	header.FormatVersion = FormatVersion
	header.Sizes = net.Sizes()
	header.Activation = net.Activation.Name
	if header.ModelID == "" {
		header.ModelID = uuid.NewString()
	}
	if header.CreatedAt.IsZero() {
		header.CreatedAt = time.Now().UTC()
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}

	flags := uint32(0)
	if header.Training != nil {
		flags |= FlagHasTraining
	}
	if len(header.Metadata) > 0 {
		flags |= FlagHasMetadata
	}

	fixed := make([]byte, FixedHeaderSize)
	copy(fixed[0:4], MagicBytes)
	binary.LittleEndian.PutUint32(fixed[4:8], FormatVersion)
	binary.LittleEndian.PutUint32(fixed[8:12], flags)
	binary.LittleEndian.PutUint64(fixed[16:24], uint64(len(headerJSON)))
	binary.LittleEndian.PutUint64(fixed[24:32], uint64(len(payload)))
	sum := ComputeChecksum(payload)
	copy(fixed[ChecksumOffset:ChecksumOffset+ChecksumSize], sum[:])

	for _, part := range [][]byte{fixed, headerJSON, payload} {
		if _, err := w.Write(part); err != nil {
			return fmt.Errorf("failed to write model: %w", err)
		}
	}
	return nil
}

// SaveFile writes net to path as a model file, replacing any existing file.
func SaveFile(path string, net *nn.Network, header Header) (err error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model saving
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", cerr)
		}
	}()

	bw := bufio.NewWriter(file)
	if err := Encode(bw, net, header); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush file: %w", err)
	}
	return nil
}
