package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Profile names one of the demo apps and its fixed identity.
type Profile struct {
	Name    string
	Prefix  string
	Service string
	Port    int
}

// Profiles lists the demo apps.
var Profiles = []Profile{
	{Name: "ecommerce", Prefix: "ecommerce", Service: "ecommerce-dashboard", Port: 8000},
	{Name: "weather", Prefix: "weather", Service: "weather-monitoring", Port: 8001},
	{Name: "social", Prefix: "social", Service: "social-media-analytics", Port: 8002},
	{Name: "sample", Prefix: "sample_app", Service: "sample-app", Port: 8000},
}

// LookupProfile returns the profile called name.
func LookupProfile(name string) (Profile, bool) {
	for _, p := range Profiles {
		if p.Name == name {
			return p, true
		}
	}
	return Profile{}, false
}

// Config holds the runtime settings of one app.
type Config struct {
	Profile                 Profile
	ListenAddr              string
	RedisAddr               string
	GracefulShutdownTimeout time.Duration
	Seed                    uint64
	SimulateLatency         bool
	RuntimeMetrics          bool
	LogLevel                string
}

const defaultShutdownTimeout = 15 * time.Second

// Flag names. Each is also read from the environment, upper-cased with dashes as underscores.
const (
	FlagListenAddr      = "listen-addr"
	FlagRedisAddr       = "redis-addr"
	FlagShutdownTimeout = "shutdown-timeout"
	FlagSeed            = "seed"
	FlagSimulateLatency = "simulate-latency"
	FlagRuntimeMetrics  = "runtime-metrics"
	FlagLogLevel        = "log-level"
)

// AddFlags registers the app flags on fs.
func AddFlags(fs *pflag.FlagSet) {
	fs.String(FlagListenAddr, "", "address to listen on (default 0.0.0.0:<app port>)")
	fs.String(FlagRedisAddr, "", "redis address for the activity feed; in-memory when empty")
	fs.String(FlagShutdownTimeout, defaultShutdownTimeout.String(), "graceful shutdown timeout (duration or whole seconds)")
	fs.Uint64(FlagSeed, 0, "fixed random seed; 0 draws a fresh sequence")
	fs.Bool(FlagSimulateLatency, true, "sleep on simulated slow routes")
	fs.Bool(FlagRuntimeMetrics, false, "expose Go runtime and process metrics on /metrics")
	fs.String(FlagLogLevel, "info", "log level (debug, info, warn, error)")
}

// Load layers defaults, environment and flags, in that order of precedence.
func Load(p Profile, fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv(FlagShutdownTimeout, "GRACEFUL_SHUTDOWN_TIMEOUT"); err != nil {
		return Config{}, fmt.Errorf("bind env: %w", err)
	}
	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}
	v.SetDefault(FlagListenAddr, fmt.Sprintf("0.0.0.0:%d", p.Port))
	v.SetDefault(FlagShutdownTimeout, defaultShutdownTimeout.String())
	v.SetDefault(FlagSimulateLatency, true)
	v.SetDefault(FlagLogLevel, "info")

	cfg := Config{
		Profile:         p,
		ListenAddr:      v.GetString(FlagListenAddr),
		RedisAddr:       v.GetString(FlagRedisAddr),
		Seed:            v.GetUint64(FlagSeed),
		SimulateLatency: v.GetBool(FlagSimulateLatency),
		RuntimeMetrics:  v.GetBool(FlagRuntimeMetrics),
		LogLevel:        v.GetString(FlagLogLevel),
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = fmt.Sprintf("0.0.0.0:%d", p.Port)
	}

	timeout, err := parseTimeout(v.GetString(FlagShutdownTimeout))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", FlagShutdownTimeout, err)
	}
	cfg.GracefulShutdownTimeout = timeout
	return cfg, nil
}

// parseTimeout accepts a duration ("10s") or whole seconds ("10").
func parseTimeout(s string) (time.Duration, error) {
	if s == "" {
		return defaultShutdownTimeout, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(s)
}
