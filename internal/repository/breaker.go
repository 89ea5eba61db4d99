package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
)

// ErrStoreUnavailable is returned while the breaker is open, or half-open with its probes in flight.
var ErrStoreUnavailable = errors.New("activity store unavailable")

// BreakerState is the state of a store breaker.
type BreakerState string

const (
	BreakerClosed   BreakerState = "closed"
	BreakerOpen     BreakerState = "open"
	BreakerHalfOpen BreakerState = "half-open"
)

// BreakerConfig tunes a breaker. Zero values take the defaults.
type BreakerConfig struct {
	Name string
	// FailureThreshold consecutive failures open the breaker.
	FailureThreshold int
	// SuccessThreshold is both the number of probes let through while half-open
	// and the successes needed to close again.
	SuccessThreshold int
	// Cooldown is how long the breaker stays open before probing.
	Cooldown time.Duration
}

// BreakerStore fails fast once the wrapped store keeps failing, so a dead
// Redis does not add a network timeout to every dashboard request.
type BreakerStore struct {
	inner Store
	cb    *gobreaker.CircuitBreaker[any]
}

// NewBreakerStore wraps inner.
func NewBreakerStore(inner Store, cfg BreakerConfig) *BreakerStore {
	if cfg.Name == "" {
		cfg.Name = "activity-store"
	}
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 3
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = 1
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 10 * time.Second
	}
	threshold := uint32(cfg.FailureThreshold)
	return &BreakerStore{
		inner: inner,
		cb: gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
			Name:        cfg.Name,
			MaxRequests: uint32(cfg.SuccessThreshold),
			Timeout:     cfg.Cooldown,
			ReadyToTrip: func(c gobreaker.Counts) bool {
				return c.ConsecutiveFailures >= threshold
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("breaker state changed")
			},
		}),
	}
}

func (b *BreakerStore) Add(ctx context.Context, a Activity) error {
	_, err := b.cb.Execute(func() (any, error) {
		return nil, b.inner.Add(ctx, a)
	})
	return translate(err)
}

func (b *BreakerStore) Recent(ctx context.Context, n int) ([]Activity, error) {
	out, err := b.cb.Execute(func() (any, error) {
		return b.inner.Recent(ctx, n)
	})
	if err != nil {
		return nil, translate(err)
	}
	activities, _ := out.([]Activity)
	return activities, nil
}

// Close closes the wrapped store if it can be closed.
func (b *BreakerStore) Close() error {
	if c, ok := b.inner.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// State reports the current breaker state.
func (b *BreakerStore) State() BreakerState {
	switch b.cb.State() {
	case gobreaker.StateOpen:
		return BreakerOpen
	case gobreaker.StateHalfOpen:
		return BreakerHalfOpen
	default:
		return BreakerClosed
	}
}

func translate(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrStoreUnavailable
	}
	return err
}
