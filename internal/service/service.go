package service

import (
	"time"

	"monitoring-demo/internal/metrics"
	"monitoring-demo/internal/sampler"
)

// Deps bundles what every simulation needs.
type Deps struct {
	Registry *metrics.Registry
	Sampler  sampler.Sampler
	Delay    sampler.Delay
	Now      func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Sampler == nil {
		d.Sampler = sampler.NewRand(0)
	}
	if d.Delay == nil {
		d.Delay = sampler.Sleep
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

// Range is a uniform float draw range.
type Range struct {
	Min, Max float64
}

func (r Range) draw(s sampler.Sampler) float64 { return s.Float(r.Min, r.Max) }

// IntRange is an inclusive integer draw range.
type IntRange struct {
	Min, Max int
}

func (r IntRange) draw(s sampler.Sampler) int { return s.Int(r.Min, r.Max) }

// pause sleeps a random duration in [min, max) and returns it.
func (d Deps) pause(min, max time.Duration) time.Duration {
	dur := sampler.Duration(d.Sampler, min, max)
	d.Delay(dur)
	return dur
}
