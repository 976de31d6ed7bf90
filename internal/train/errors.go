package train

import "errors"

// Sentinel errors returned by the trainer.
var (
	ErrNilNetwork    = errors.New("train: nil network")
	ErrNilBatch      = errors.New("train: nil inputs or expected outputs")
	ErrBatchMismatch = errors.New("train: inputs and expected outputs differ in length")
	ErrEmptyBatch    = errors.New("train: empty batch")
	ErrGradientCount = errors.New("train: gradient count does not match layer count")
	ErrGradientShape = errors.New("train: gradient shape does not match layer")
)
