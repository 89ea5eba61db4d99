package metrics

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/prometheus/common/model"
)

// Kind enumerates the supported instrument kinds.
type Kind int

const (
	CounterKind Kind = iota
	GaugeKind
	HistogramKind
)

func (k Kind) String() string {
	switch k {
	case CounterKind:
		return "counter"
	case GaugeKind:
		return "gauge"
	case HistogramKind:
		return "histogram"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// DefBuckets are the default histogram upper bounds, tuned for request latencies in seconds.
var DefBuckets = []float64{.005, .01, .025, .05, .075, .1, .25, .5, .75, 1, 2.5, 5, 7.5, 10}

// Label is one name/value pair of a labeled series.
type Label struct {
	Name  string
	Value string
}

// Desc describes an instrument. It is immutable once registered.
type Desc struct {
	Name       string
	Help       string
	Kind       Kind
	LabelNames []string
	// Buckets holds the finite, strictly increasing upper bounds of a histogram.
	// The +Inf overflow bucket is implicit.
	Buckets []float64
}

// Option customizes an instrument at registration.
type Option func(*Desc)

// WithBuckets sets histogram bucket upper bounds. A trailing +Inf is accepted and dropped.
func WithBuckets(buckets ...float64) Option {
	return func(d *Desc) {
		d.Buckets = slices.Clone(buckets)
	}
}

func newDesc(name string, kind Kind, labelNames []string, help string, opts ...Option) (*Desc, error) {
	d := &Desc{
		Name:       name,
		Help:       help,
		Kind:       kind,
		LabelNames: slices.Clone(labelNames),
	}
	for _, opt := range opts {
		opt(d)
	}
	if err := d.validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Desc) validate() error {
	if !model.IsValidLegacyMetricName(d.Name) {
		return fmt.Errorf("%w: metric name %q", ErrInvalidDesc, d.Name)
	}
	switch d.Kind {
	case CounterKind, GaugeKind, HistogramKind:
	default:
		return fmt.Errorf("%w: %q has unsupported %s", ErrInvalidDesc, d.Name, d.Kind)
	}

	seen := make(map[string]struct{}, len(d.LabelNames))
	for _, ln := range d.LabelNames {
		if !model.LabelName(ln).IsValidLegacy() || strings.HasPrefix(ln, "__") {
			return fmt.Errorf("%w: %q has invalid label name %q", ErrInvalidDesc, d.Name, ln)
		}
		if _, ok := seen[ln]; ok {
			return fmt.Errorf("%w: %q has duplicate label name %q", ErrInvalidDesc, d.Name, ln)
		}
		seen[ln] = struct{}{}
	}

	if d.Kind != HistogramKind {
		if len(d.Buckets) > 0 {
			return fmt.Errorf("%w: buckets set on %s %q", ErrInvalidDesc, d.Kind, d.Name)
		}
		return nil
	}
	if _, ok := seen[model.BucketLabel]; ok {
		return fmt.Errorf("%w: histogram %q cannot use label %q", ErrInvalidDesc, d.Name, model.BucketLabel)
	}
	if d.Buckets == nil {
		d.Buckets = slices.Clone(DefBuckets)
	}
	if n := len(d.Buckets); n > 0 && math.IsInf(d.Buckets[n-1], +1) {
		d.Buckets = d.Buckets[:n-1]
	}
	for i, b := range d.Buckets {
		if math.IsNaN(b) || math.IsInf(b, 0) {
			return fmt.Errorf("%w: histogram %q has non-finite bucket %v", ErrInvalidDesc, d.Name, b)
		}
		if i > 0 && b <= d.Buckets[i-1] {
			return fmt.Errorf("%w: histogram %q buckets not strictly increasing at %v", ErrInvalidDesc, d.Name, b)
		}
	}
	return nil
}

func (d *Desc) sameSchema(o *Desc) bool {
	return d.Kind == o.Kind &&
		slices.Equal(d.LabelNames, o.LabelNames) &&
		slices.Equal(d.Buckets, o.Buckets)
}

func (d *Desc) schema() string {
	return fmt.Sprintf("%s{%s}", d.Kind, strings.Join(d.LabelNames, ","))
}
