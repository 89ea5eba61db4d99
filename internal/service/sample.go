package service

import (
	"fmt"
	"time"

	"monitoring-demo/internal/metrics"
)

// Sample is the minimal demo app: a landing page and a load simulation.
type Sample struct {
	deps Deps

	activeUsers *metrics.Gauge
	cpuUsage    *metrics.Gauge
	memoryUsage *metrics.Gauge
}

func NewSample(deps Deps) *Sample {
	deps = deps.withDefaults()
	reg := deps.Registry
	return &Sample{
		deps:        deps,
		activeUsers: reg.MustGaugeVec("sample_app_active_users", "Number of active users").WithLabelValues(),
		cpuUsage:    reg.MustGaugeVec("sample_app_cpu_usage_percent", "CPU usage percentage").WithLabelValues(),
		memoryUsage: reg.MustGaugeVec("sample_app_memory_usage_bytes", "Memory usage in bytes").WithLabelValues(),
	}
}

// Home simulates the processing time of the landing page.
func (a *Sample) Home() time.Duration {
	return a.deps.pause(100*time.Millisecond, 500*time.Millisecond)
}

// SimulateLoad sleeps for a random while, then publishes heavier load figures.
func (a *Sample) SimulateLoad() string {
	d := a.deps.pause(500*time.Millisecond, 2*time.Second)
	s := a.deps.Sampler
	a.activeUsers.Set(float64(IntRange{10, 100}.draw(s)))
	a.cpuUsage.Set(Range{20, 80}.draw(s))
	a.memoryUsage.Set(float64(IntRange{100_000_000, 500_000_000}.draw(s)))
	return loadMessage(d)
}

// Refresh re-draws the gauges ahead of a scrape.
func (a *Sample) Refresh() {
	s := a.deps.Sampler
	a.activeUsers.Set(float64(IntRange{5, 50}.draw(s)))
	a.cpuUsage.Set(Range{10, 70}.draw(s))
	a.memoryUsage.Set(float64(IntRange{50_000_000, 300_000_000}.draw(s)))
}

func loadMessage(d time.Duration) string {
	return fmt.Sprintf("Load simulation completed in %.2f seconds", d.Seconds())
}
