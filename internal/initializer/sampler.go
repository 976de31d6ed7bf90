package initializer

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"gonum.org/v1/gonum/stat/distuv"
)

// ErrSamplesExhausted is returned when a finite sampler runs dry.
var ErrSamplesExhausted = errors.New("initializer: out of samples")

// Sampler yields one value per call.
type Sampler interface {
	Next() (float64, error)
}

// Func adapts a function to Sampler.
type Func func() (float64, error)

// Next calls f.
func (f Func) Next() (float64, error) { return f() }

// Queue hands out a pre-drawn slice of samples in order. It is safe for
// concurrent use.
type Queue struct {
	mu      sync.Mutex
	samples []float64
	next    int
}

// NewQueue creates a queue over samples. The queue takes ownership of the
// slice.
func NewQueue(samples []float64) *Queue {
	return &Queue{samples: samples}
}

// NewNormalQueue pre-draws count samples from N(mu, sigma²) using a PCG
// source seeded with seed.
func NewNormalQueue(count int, mu, sigma float64, seed uint64) (*Queue, error) {
	if count < 0 {
		return nil, fmt.Errorf("initializer: negative sample count %d", count)
	}
	if sigma <= 0 {
		return nil, fmt.Errorf("initializer: sigma %v must be positive", sigma)
	}

	dist := distuv.Normal{Mu: mu, Sigma: sigma, Src: rand.NewPCG(seed, seed)}
	samples := make([]float64, count)
	for i := range samples {
		samples[i] = dist.Rand()
	}
	return NewQueue(samples), nil
}

// Next returns the oldest unused sample.
func (q *Queue) Next() (float64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.next >= len(q.samples) {
		return 0, ErrSamplesExhausted
	}
	v := q.samples[q.next]
	q.next++
	return v, nil
}

// Remaining returns the number of unused samples.
func (q *Queue) Remaining() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.samples) - q.next
}

// uniform returns an endless sampler over U(-bound, bound).
func uniform(bound float64, src rand.Source) Sampler {
	dist := distuv.Uniform{Min: -bound, Max: bound, Src: src}
	return Func(func() (float64, error) { return dist.Rand(), nil })
}
