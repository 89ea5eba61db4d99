package metrics

import (
	"iter"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

var _ prometheus.Gatherer = (*Registry)(nil)

// Series is the current state of one labeled series.
type Series struct {
	Desc *Desc
	// Labels are in schema order and must not be modified.
	Labels []Label
	// Value is the counter total or gauge value; for histograms it is the observation count.
	Value float64
	// Histogram is set for histogram series only.
	Histogram *HistogramSnapshot
}

// Collect returns a lazy sequence over every series of every instrument. Instruments are
// visited in name order and series in label-value order; each range starts a fresh pass.
// Values are read per series, so a pass is not atomic across series.
func (r *Registry) Collect() iter.Seq[Series] {
	return func(yield func(Series) bool) {
		for _, inst := range r.snapshot() {
			if !inst.collect(yield) {
				return
			}
		}
	}
}

// Gather implements prometheus.Gatherer. Every registered instrument yields a family,
// including instruments that have no series yet.
func (r *Registry) Gather() ([]*dto.MetricFamily, error) {
	insts := r.snapshot()
	out := make([]*dto.MetricFamily, 0, len(insts))
	for _, inst := range insts {
		mf := newFamily(inst.Desc())
		inst.collect(func(s Series) bool {
			mf.Metric = append(mf.Metric, toMetric(s))
			return true
		})
		out = append(out, mf)
	}
	return out, nil
}
