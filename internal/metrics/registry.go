package metrics

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Instrument is a registered counter, gauge or histogram vec.
type Instrument interface {
	Desc() *Desc
	collect(yield func(Series) bool) bool
}

// Registry owns the named instruments of one process. It is safe for concurrent use.
type Registry struct {
	mu          sync.RWMutex
	instruments map[string]Instrument
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{instruments: make(map[string]Instrument)}
}

// Register creates an instrument of kind under name. Registering the same name again with an
// identical schema returns the existing instrument; any other schema yields *DuplicateNameError.
func (r *Registry) Register(name string, kind Kind, labelNames []string, help string, opts ...Option) (Instrument, error) {
	d, err := newDesc(name, kind, labelNames, help, opts...)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.instruments[name]; ok {
		if existing.Desc().sameSchema(d) {
			return existing, nil
		}
		return nil, &DuplicateNameError{Name: name, Existing: existing.Desc(), Requested: d}
	}

	var inst Instrument
	switch kind {
	case CounterKind:
		inst = newCounterVec(d)
	case GaugeKind:
		inst = newGaugeVec(d)
	case HistogramKind:
		inst = newHistogramVec(d)
	}
	r.instruments[name] = inst
	return inst, nil
}

// NewCounterVec registers a counter.
func (r *Registry) NewCounterVec(name, help string, labelNames ...string) (*CounterVec, error) {
	inst, err := r.Register(name, CounterKind, labelNames, help)
	if err != nil {
		return nil, err
	}
	return inst.(*CounterVec), nil
}

// NewGaugeVec registers a gauge.
func (r *Registry) NewGaugeVec(name, help string, labelNames ...string) (*GaugeVec, error) {
	inst, err := r.Register(name, GaugeKind, labelNames, help)
	if err != nil {
		return nil, err
	}
	return inst.(*GaugeVec), nil
}

// NewHistogramVec registers a histogram. Nil buckets select DefBuckets.
func (r *Registry) NewHistogramVec(name, help string, buckets []float64, labelNames ...string) (*HistogramVec, error) {
	inst, err := r.Register(name, HistogramKind, labelNames, help, WithBuckets(buckets...))
	if err != nil {
		return nil, err
	}
	return inst.(*HistogramVec), nil
}

// MustCounterVec is NewCounterVec that panics on error. Meant for startup wiring.
func (r *Registry) MustCounterVec(name, help string, labelNames ...string) *CounterVec {
	v, err := r.NewCounterVec(name, help, labelNames...)
	if err != nil {
		panic(err)
	}
	return v
}

// MustGaugeVec is NewGaugeVec that panics on error.
func (r *Registry) MustGaugeVec(name, help string, labelNames ...string) *GaugeVec {
	v, err := r.NewGaugeVec(name, help, labelNames...)
	if err != nil {
		panic(err)
	}
	return v
}

// MustHistogramVec is NewHistogramVec that panics on error.
func (r *Registry) MustHistogramVec(name, help string, buckets []float64, labelNames ...string) *HistogramVec {
	v, err := r.NewHistogramVec(name, help, buckets, labelNames...)
	if err != nil {
		panic(err)
	}
	return v
}

// Counter looks up the series of a registered counter. It panics if name is not a counter
// or labelValues do not match its schema.
func (r *Registry) Counter(name string, labelValues ...string) *Counter {
	v, ok := r.lookup(name).(*CounterVec)
	if !ok {
		panic(fmt.Errorf("%w: %q is not a counter", ErrUnknownInstrument, name))
	}
	return v.WithLabelValues(labelValues...)
}

// Gauge looks up the series of a registered gauge, panicking like Counter.
func (r *Registry) Gauge(name string, labelValues ...string) *Gauge {
	v, ok := r.lookup(name).(*GaugeVec)
	if !ok {
		panic(fmt.Errorf("%w: %q is not a gauge", ErrUnknownInstrument, name))
	}
	return v.WithLabelValues(labelValues...)
}

// Histogram looks up the series of a registered histogram, panicking like Counter.
func (r *Registry) Histogram(name string, labelValues ...string) *Histogram {
	v, ok := r.lookup(name).(*HistogramVec)
	if !ok {
		panic(fmt.Errorf("%w: %q is not a histogram", ErrUnknownInstrument, name))
	}
	return v.WithLabelValues(labelValues...)
}

func (r *Registry) lookup(name string) Instrument {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.instruments[name]
}

// snapshot returns the registered instruments in name order.
func (r *Registry) snapshot() []Instrument {
	r.mu.RLock()
	out := make([]Instrument, 0, len(r.instruments))
	for _, inst := range r.instruments {
		out = append(out, inst)
	}
	r.mu.RUnlock()
	slices.SortFunc(out, func(a, b Instrument) int { return strings.Compare(a.Desc().Name, b.Desc().Name) })
	return out
}
