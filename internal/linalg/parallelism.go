package linalg

import (
	"sync/atomic"

	"github.com/born-ml/mlp/internal/parallel"
)

var parallelism atomic.Pointer[parallel.Config]

func init() {
	cfg := parallel.DefaultConfig()
	parallelism.Store(&cfg)
}

// SetParallelism replaces the fan-out configuration used by elementwise
// operations and Dot. Operations already running keep the old one.
func SetParallelism(cfg parallel.Config) {
	parallelism.Store(&cfg)
}

// Parallelism returns the current fan-out configuration.
func Parallelism() parallel.Config {
	return *parallelism.Load()
}
