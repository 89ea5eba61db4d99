package metrics

import (
	"slices"
	"sort"
	"sync"
	"time"
)

// Histogram is a single series counting observations into fixed buckets.
type Histogram struct {
	bounds []float64

	mu     sync.Mutex
	counts []uint64 // len(bounds)+1, the last one is the +Inf overflow bucket
	count  uint64
	sum    float64
}

func newHistogram(bounds []float64) *Histogram {
	return &Histogram{
		bounds: bounds,
		counts: make([]uint64, len(bounds)+1),
	}
}

// Observe counts v in the bucket with the smallest upper bound >= v, or in the overflow bucket.
func (h *Histogram) Observe(v float64) {
	i := sort.SearchFloat64s(h.bounds, v)
	h.mu.Lock()
	h.counts[i]++
	h.count++
	h.sum += v
	h.mu.Unlock()
}

// Time starts a timer; the returned func observes the elapsed seconds.
func (h *Histogram) Time() func() {
	start := time.Now()
	return func() {
		h.Observe(time.Since(start).Seconds())
	}
}

// Snapshot returns a consistent copy of the histogram state.
func (h *Histogram) Snapshot() HistogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return HistogramSnapshot{
		Bounds: h.bounds,
		Counts: slices.Clone(h.counts),
		Count:  h.count,
		Sum:    h.sum,
	}
}

// HistogramSnapshot is a point-in-time histogram state.
type HistogramSnapshot struct {
	Bounds []float64
	// Counts holds per-bucket (non-cumulative) counts; the final entry is the +Inf bucket.
	Counts []uint64
	Count  uint64
	Sum    float64
}

// Cumulative returns the running totals of Counts, as used by the exposition format.
func (s HistogramSnapshot) Cumulative() []uint64 {
	out := make([]uint64, len(s.Counts))
	var acc uint64
	for i, c := range s.Counts {
		acc += c
		out[i] = acc
	}
	return out
}

// HistogramVec partitions a histogram by a fixed label schema.
type HistogramVec struct {
	*vec[Histogram]
}

func newHistogramVec(d *Desc) *HistogramVec {
	return &HistogramVec{vec: newVec(d, func() *Histogram { return newHistogram(d.Buckets) })}
}

// Desc returns the instrument description.
func (v *HistogramVec) Desc() *Desc { return v.desc }

// GetWithLabelValues returns the series for labelValues, creating it on first use.
func (v *HistogramVec) GetWithLabelValues(labelValues ...string) (*Histogram, error) {
	return v.get(labelValues)
}

// WithLabelValues is GetWithLabelValues that panics on a label schema mismatch.
func (v *HistogramVec) WithLabelValues(labelValues ...string) *Histogram {
	return v.mustGet(labelValues)
}

func (v *HistogramVec) collect(yield func(Series) bool) bool {
	for _, c := range v.sorted() {
		snap := c.series.Snapshot()
		s := Series{Desc: v.desc, Labels: c.labels, Value: float64(snap.Count), Histogram: &snap}
		if !yield(s) {
			return false
		}
	}
	return true
}
