package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	AddFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return fs
}

func TestLookupProfile(t *testing.T) {
	p, ok := LookupProfile("weather")
	if !ok || p.Prefix != "weather" || p.Service != "weather-monitoring" || p.Port != 8001 {
		t.Fatalf("unexpected profile %+v", p)
	}
	if p, _ := LookupProfile("sample"); p.Prefix != "sample_app" {
		t.Fatalf("expected sample_app prefix, got %q", p.Prefix)
	}
	if _, ok := LookupProfile("nope"); ok {
		t.Fatal("expected unknown profile")
	}
}

func TestLoadDefaults(t *testing.T) {
	p, _ := LookupProfile("social")
	cfg, err := Load(p, newFlags(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ListenAddr != "0.0.0.0:8002" {
		t.Errorf("expected 0.0.0.0:8002, got %q", cfg.ListenAddr)
	}
	if cfg.GracefulShutdownTimeout != 15*time.Second {
		t.Errorf("expected 15s, got %v", cfg.GracefulShutdownTimeout)
	}
	if !cfg.SimulateLatency || cfg.RuntimeMetrics || cfg.RedisAddr != "" || cfg.Seed != 0 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected info, got %q", cfg.LogLevel)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9999")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("GRACEFUL_SHUTDOWN_TIMEOUT", "3")
	t.Setenv("SEED", "42")
	t.Setenv("SIMULATE_LATENCY", "false")

	p, _ := LookupProfile("ecommerce")
	cfg, err := Load(p, newFlags(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ListenAddr != ":9999" || cfg.RedisAddr != "localhost:6379" {
		t.Errorf("unexpected addresses %+v", cfg)
	}
	if cfg.GracefulShutdownTimeout != 3*time.Second {
		t.Errorf("expected 3s, got %v", cfg.GracefulShutdownTimeout)
	}
	if cfg.Seed != 42 || cfg.SimulateLatency {
		t.Errorf("unexpected seed/latency %+v", cfg)
	}
}

func TestLoadFlagsBeatEnv(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9999")

	p, _ := LookupProfile("ecommerce")
	cfg, err := Load(p, newFlags(t, "--listen-addr", ":7000", "--shutdown-timeout", "250ms", "--runtime-metrics"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ListenAddr != ":7000" {
		t.Errorf("expected flag to win, got %q", cfg.ListenAddr)
	}
	if cfg.GracefulShutdownTimeout != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %v", cfg.GracefulShutdownTimeout)
	}
	if !cfg.RuntimeMetrics {
		t.Error("expected runtime metrics enabled")
	}
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	p, _ := LookupProfile("ecommerce")
	if _, err := Load(p, newFlags(t, "--shutdown-timeout", "soon")); err == nil {
		t.Fatal("expected error")
	}
}
