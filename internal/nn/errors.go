package nn

import "errors"

// Sentinel errors returned by layer and network construction and by the
// forward pass.
var (
	ErrTooFewLayers = errors.New("nn: a network needs at least two node counts")
	ErrBadNodeCount = errors.New("nn: node counts must be > 0")
	ErrLayerShape   = errors.New("nn: weight rows and bias count differ")
	ErrLayerChain   = errors.New("nn: layer input size does not match previous output size")
	ErrNilLayer     = errors.New("nn: nil layer")
	ErrNilInput     = errors.New("nn: nil input vector")
)
