package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"monitoring-demo/internal/metrics"
)

// MuxConfig describes one app's HTTP surface.
type MuxConfig struct {
	Registry  *metrics.Registry
	Prefix    string
	Service   string
	Dashboard Dashboard
	// Gatherers are served alongside the registry on /metrics.
	Gatherers []prometheus.Gatherer
	Now       func() time.Time
}

// NewMux wires the dashboard routes, /health and /metrics. /metrics is not counted.
func NewMux(cfg MuxConfig) *http.ServeMux {
	m := NewRequestMetrics(cfg.Registry, cfg.Prefix)

	health := &HealthHandler{Service: cfg.Service, Now: cfg.Now}
	if obs, ok := cfg.Dashboard.(interface{ HealthChecked(context.Context) }); ok {
		health.OnCheck = obs.HealthChecked
	}

	mux := http.NewServeMux()
	cfg.Dashboard.Routes(mux, m)
	mux.HandleFunc("GET /health", m.Counted("/health", health.ServeHTTP))
	mux.Handle("GET /metrics", cfg.Registry.Handler(metrics.HandlerOpts{
		BeforeScrape: []func(){cfg.Dashboard.Refresh},
		Gatherers:    cfg.Gatherers,
	}))
	return mux
}
