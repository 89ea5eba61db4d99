package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"monitoring-demo/internal/metrics"
	"monitoring-demo/internal/repository"
	"monitoring-demo/internal/sampler"
)

// delays records every simulated pause instead of sleeping.
type delays struct {
	mu  sync.Mutex
	got []time.Duration
}

func (d *delays) record(dur time.Duration) {
	d.mu.Lock()
	d.got = append(d.got, dur)
	d.mu.Unlock()
}

func floorDeps(reg *metrics.Registry, d *delays, now time.Time) Deps {
	return Deps{
		Registry: reg,
		Sampler:  sampler.Floor{},
		Delay:    d.record,
		Now:      func() time.Time { return now },
	}
}

func expectGauge(t *testing.T, reg *metrics.Registry, name string, want float64, labelValues ...string) {
	t.Helper()
	if got := reg.Gauge(name, labelValues...).Value(); got != want {
		t.Fatalf("%s%v: expected %v, got %v", name, labelValues, want, got)
	}
}

func expectCounter(t *testing.T, reg *metrics.Registry, name string, want float64, labelValues ...string) {
	t.Helper()
	if got := reg.Counter(name, labelValues...).Value(); got != want {
		t.Fatalf("%s%v: expected %v, got %v", name, labelValues, want, got)
	}
}

type failingStore struct{}

func (failingStore) Add(context.Context, repository.Activity) error {
	return errors.New("store down")
}

func (failingStore) Recent(context.Context, int) ([]repository.Activity, error) {
	return nil, errors.New("store down")
}

func TestDepsDefaults(t *testing.T) {
	d := Deps{}.withDefaults()
	if d.Sampler == nil || d.Delay == nil || d.Now == nil {
		t.Fatalf("expected defaults to be filled, got %+v", d)
	}
}
