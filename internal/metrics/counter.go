package metrics

import (
	"math"
	"sync/atomic"
)

// Counter is a single monotonically increasing series.
type Counter struct {
	bits atomic.Uint64
}

// Inc adds 1.
func (c *Counter) Inc() { c.Add(1) }

// Add adds v, which must be non-negative. A negative or NaN v panics.
func (c *Counter) Add(v float64) {
	if v < 0 || math.IsNaN(v) {
		panic(errCounterNegativeDelta)
	}
	addFloat(&c.bits, v)
}

// Value returns the running total.
func (c *Counter) Value() float64 {
	return math.Float64frombits(c.bits.Load())
}

// CounterVec partitions a counter by a fixed label schema.
type CounterVec struct {
	*vec[Counter]
}

func newCounterVec(d *Desc) *CounterVec {
	return &CounterVec{vec: newVec(d, func() *Counter { return &Counter{} })}
}

// Desc returns the instrument description.
func (v *CounterVec) Desc() *Desc { return v.desc }

// GetWithLabelValues returns the series for labelValues, creating it on first use.
func (v *CounterVec) GetWithLabelValues(labelValues ...string) (*Counter, error) {
	return v.get(labelValues)
}

// WithLabelValues is GetWithLabelValues that panics on a label schema mismatch.
func (v *CounterVec) WithLabelValues(labelValues ...string) *Counter {
	return v.mustGet(labelValues)
}

func (v *CounterVec) collect(yield func(Series) bool) bool {
	for _, c := range v.sorted() {
		if !yield(Series{Desc: v.desc, Labels: c.labels, Value: c.series.Value()}) {
			return false
		}
	}
	return true
}

func addFloat(bits *atomic.Uint64, v float64) {
	for {
		old := bits.Load()
		next := math.Float64bits(math.Float64frombits(old) + v)
		if bits.CompareAndSwap(old, next) {
			return
		}
	}
}
