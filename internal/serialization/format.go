package serialization

import "time"

// Format constants.
const (
	MagicBytes      = "MLPN"
	FormatVersion   = 1
	FixedHeaderSize = 64   // magic through checksum
	ChecksumSize    = 32   // SHA-256 checksum size
	ChecksumOffset  = 0x20 // checksum offset in the fixed header
)

// Limits applied while decoding, so a corrupt length cannot trigger a huge
// allocation.
const (
	MaxHeaderSize  = 100 * 1024 * 1024 // 100MB
	MaxLayerCount  = 1 << 16
	MaxBlockValues = 1 << 28
	MaxPayloadSize = 1 << 32 // 4GB
)

// Flags for the model file.
const (
	FlagHasTraining uint32 = 1 << 0 // header carries TrainingMeta
	FlagHasMetadata uint32 = 1 << 1 // header carries custom metadata
)

// Header is the JSON header of a model file.
type Header struct {
	FormatVersion int               `json:"format_version"`
	ModelID       string            `json:"model_id"` // UUID assigned on first save
	CreatedAt     time.Time         `json:"created_at"`
	Sizes         []int             `json:"sizes"`      // node counts, input first
	Activation    string            `json:"activation"` // built-in activation name, empty for sigmoid
	Metadata      map[string]string `json:"metadata,omitempty"`
	Training      *TrainingMeta     `json:"training,omitempty"`
}

// TrainingMeta records the state of training when a model was saved.
type TrainingMeta struct {
	Epoch        int     `json:"epoch"`
	LearningRate float64 `json:"learning_rate"`
	BatchSize    int     `json:"batch_size"`
	Accuracy     float64 `json:"accuracy"`
	AverageCost  float64 `json:"average_cost"`
}
