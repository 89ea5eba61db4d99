// Package sampler provides the random draws and simulated latency used by the demo apps.
// Both are injected so tests can use deterministic values and skip sleeping.
package sampler

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Sampler draws uniform random values.
type Sampler interface {
	// Int returns a value in [min, max], both inclusive.
	Int(min, max int) int
	// Float returns a value in [min, max).
	Float(min, max float64) float64
	// Pick returns an index in [0, n).
	Pick(n int) int
}

// Duration draws a uniform duration between min and max.
func Duration(s Sampler, min, max time.Duration) time.Duration {
	return time.Duration(s.Float(float64(min), float64(max)))
}

// Rand is a Sampler backed by math/rand/v2.
type Rand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRand returns a Sampler. A zero seed draws from the runtime's random source;
// any other seed gives a reproducible sequence.
func NewRand(seed uint64) *Rand {
	if seed == 0 {
		return &Rand{}
	}
	return &Rand{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *Rand) Int(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.intN(max-min+1)
}

func (r *Rand) Float(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + r.unit()*(max-min)
}

func (r *Rand) Pick(n int) int {
	if n <= 1 {
		return 0
	}
	return r.intN(n)
}

func (r *Rand) intN(n int) int {
	if r.rnd == nil {
		return rand.IntN(n)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.IntN(n)
}

func (r *Rand) unit() float64 {
	if r.rnd == nil {
		return rand.Float64()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Float64()
}

// Floor always returns the lower bound. Used in tests.
type Floor struct{}

func (Floor) Int(min, _ int) int           { return min }
func (Floor) Float(min, _ float64) float64 { return min }
func (Floor) Pick(int) int                 { return 0 }

// Delay simulates latency. It is not cancellable.
type Delay func(time.Duration)

// Sleep blocks for d.
func Sleep(d time.Duration) { time.Sleep(d) }

// NoDelay returns immediately.
func NoDelay(time.Duration) {}
