package metrics

import (
	"math"
	"sync/atomic"
)

// Gauge is a single series holding an arbitrary current value.
type Gauge struct {
	bits atomic.Uint64
}

// Set overwrites the current value.
func (g *Gauge) Set(v float64) { g.bits.Store(math.Float64bits(v)) }

// Add adds v, which may be negative.
func (g *Gauge) Add(v float64) { addFloat(&g.bits, v) }

func (g *Gauge) Inc() { g.Add(1) }
func (g *Gauge) Dec() { g.Add(-1) }

// Value returns the last value.
func (g *Gauge) Value() float64 {
	return math.Float64frombits(g.bits.Load())
}

// GaugeVec partitions a gauge by a fixed label schema.
type GaugeVec struct {
	*vec[Gauge]
}

func newGaugeVec(d *Desc) *GaugeVec {
	return &GaugeVec{vec: newVec(d, func() *Gauge { return &Gauge{} })}
}

// Desc returns the instrument description.
func (v *GaugeVec) Desc() *Desc { return v.desc }

// GetWithLabelValues returns the series for labelValues, creating it on first use.
func (v *GaugeVec) GetWithLabelValues(labelValues ...string) (*Gauge, error) {
	return v.get(labelValues)
}

// WithLabelValues is GetWithLabelValues that panics on a label schema mismatch.
func (v *GaugeVec) WithLabelValues(labelValues ...string) *Gauge {
	return v.mustGet(labelValues)
}

func (v *GaugeVec) collect(yield func(Series) bool) bool {
	for _, c := range v.sorted() {
		if !yield(Series{Desc: v.desc, Labels: c.labels, Value: c.series.Value()}) {
			return false
		}
	}
	return true
}
