// Package app assembles one demo dashboard into a runnable HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"monitoring-demo/internal/config"
	"monitoring-demo/internal/dashboard"
	"monitoring-demo/internal/handler"
	"monitoring-demo/internal/metrics"
	"monitoring-demo/internal/middleware"
	"monitoring-demo/internal/repository"
	"monitoring-demo/internal/sampler"
	"monitoring-demo/internal/service"
)

// App is a wired demo dashboard.
type App struct {
	cfg      config.Config
	Registry *metrics.Registry
	Handler  http.Handler
	store    repository.Store
}

// New builds the registry, services and routes described by cfg.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	reg := metrics.NewRegistry()
	deps := service.Deps{
		Registry: reg,
		Sampler:  sampler.NewRand(cfg.Seed),
		Delay:    sampler.Sleep,
	}
	if !cfg.SimulateLatency {
		deps.Delay = sampler.NoDelay
	}

	renderer, err := dashboard.NewRenderer()
	if err != nil {
		return nil, err
	}
	page := handler.Page{Renderer: renderer, Service: cfg.Profile.Service}

	a := &App{cfg: cfg, Registry: reg}
	var dash handler.Dashboard
	switch cfg.Profile.Name {
	case "ecommerce":
		a.store, err = openStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		shop := service.NewEcommerce(deps, a.store)
		shop.Record(ctx, "E-Commerce Dashboard started")
		dash = handler.NewEcommerceHandler(shop, page)
	case "weather":
		dash = handler.NewWeatherHandler(service.NewWeather(deps), page)
	case "social":
		dash = handler.NewSocialHandler(service.NewSocial(deps), page)
	case "sample":
		dash = handler.NewSampleHandler(service.NewSample(deps), page)
	default:
		return nil, fmt.Errorf("unknown app %q", cfg.Profile.Name)
	}

	var gatherers []prometheus.Gatherer
	if cfg.RuntimeMetrics {
		gatherers = append(gatherers, metrics.NewRuntimeGatherer())
	}
	mux := handler.NewMux(handler.MuxConfig{
		Registry:  reg,
		Prefix:    cfg.Profile.Prefix,
		Service:   cfg.Profile.Service,
		Dashboard: dash,
		Gatherers: gatherers,
	})

	// middleware chain
	h := middleware.Recover(mux)
	h = middleware.RequestID(h)
	h = middleware.Logging(h)
	a.Handler = h
	return a, nil
}

func openStore(ctx context.Context, cfg config.Config) (repository.Store, error) {
	if cfg.RedisAddr == "" {
		return repository.NewMemoryStore(repository.DefaultCapacity), nil
	}
	store, err := repository.NewRedisStore(ctx, repository.RedisConfig{
		Addr: cfg.RedisAddr,
		Key:  cfg.Profile.Prefix + ":activities",
	})
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	log.Info().Str("addr", cfg.RedisAddr).Msg("activity feed backed by redis")
	return repository.NewBreakerStore(store, repository.BreakerConfig{}), nil
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	defer a.closeStore()

	srv := &http.Server{
		Addr:              a.cfg.ListenAddr,
		Handler:           a.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("app", a.cfg.Profile.Name).Msgf("listening %s", a.cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err, ok := <-errc:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Info().Msg("server exited")
	return nil
}

func (a *App) closeStore() {
	c, ok := a.store.(interface{ Close() error })
	if !ok {
		return
	}
	if err := c.Close(); err != nil {
		log.Warn().Err(err).Msg("close activity store")
	}
}

// SetupLogging applies the global zerolog settings. Unknown levels fall back to info.
func SetupLogging(level string) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}
