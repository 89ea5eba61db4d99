package repository

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// flakyStore fails while down is set, after an optional delay.
type flakyStore struct {
	Store
	down  atomic.Bool
	delay time.Duration
	calls atomic.Int32
}

func (f *flakyStore) Add(ctx context.Context, a Activity) error {
	f.calls.Add(1)
	time.Sleep(f.delay)
	if f.down.Load() {
		return errors.New("connection refused")
	}
	return f.Store.Add(ctx, a)
}

func (f *flakyStore) Recent(ctx context.Context, n int) ([]Activity, error) {
	f.calls.Add(1)
	time.Sleep(f.delay)
	if f.down.Load() {
		return nil, errors.New("connection refused")
	}
	return f.Store.Recent(ctx, n)
}

func newFlaky(down bool) *flakyStore {
	f := &flakyStore{Store: NewMemoryStore(DefaultCapacity)}
	f.down.Store(down)
	return f
}

func TestBreakerOpensAfterFailures(t *testing.T) {
	inner := newFlaky(true)
	b := NewBreakerStore(inner, BreakerConfig{FailureThreshold: 3, Cooldown: time.Minute})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := b.Add(ctx, Activity{Message: "x"}); err == nil || errors.Is(err, ErrStoreUnavailable) {
			t.Fatalf("call %d: expected store error, got %v", i, err)
		}
	}
	if b.State() != BreakerOpen {
		t.Fatalf("expected open, got %s", b.State())
	}

	if _, err := b.Recent(ctx, 5); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if got := inner.calls.Load(); got != 3 {
		t.Errorf("open breaker must not reach the store, got %d calls", got)
	}
}

func TestBreakerRecoversAfterCooldown(t *testing.T) {
	inner := newFlaky(true)
	b := NewBreakerStore(inner, BreakerConfig{FailureThreshold: 1, Cooldown: 20 * time.Millisecond})
	ctx := context.Background()

	b.Add(ctx, Activity{Message: "lost"})
	if b.State() != BreakerOpen {
		t.Fatalf("expected open, got %s", b.State())
	}

	// a failed half-open call reopens the breaker
	time.Sleep(40 * time.Millisecond)
	if err := b.Add(ctx, Activity{Message: "lost"}); err == nil || errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected the half-open call to reach the store, got %v", err)
	}
	if b.State() != BreakerOpen {
		t.Fatalf("expected open after failed half-open call, got %s", b.State())
	}

	inner.down.Store(false)
	time.Sleep(40 * time.Millisecond)
	if err := b.Add(ctx, Activity{Message: "kept"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.State() != BreakerClosed {
		t.Fatalf("expected closed, got %s", b.State())
	}
	got, err := b.Recent(ctx, 10)
	if err != nil || len(got) != 1 || got[0].Message != "kept" {
		t.Fatalf("unexpected feed %+v, %v", got, err)
	}
}

func TestBreakerHalfOpenLetsOneCallThrough(t *testing.T) {
	inner := newFlaky(true)
	b := NewBreakerStore(inner, BreakerConfig{FailureThreshold: 1, Cooldown: 50 * time.Millisecond})
	ctx := context.Background()

	b.Add(ctx, Activity{})
	time.Sleep(80 * time.Millisecond)
	inner.calls.Store(0)
	inner.delay = 20 * time.Millisecond

	var wg sync.WaitGroup
	var rejected atomic.Int32
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := b.Add(ctx, Activity{}); errors.Is(err, ErrStoreUnavailable) {
				rejected.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := inner.calls.Load(); got != 1 {
		t.Fatalf("expected a single half-open call to reach the store, got %d", got)
	}
	if got := rejected.Load(); got != 19 {
		t.Errorf("expected 19 rejected calls, got %d", got)
	}
}

func TestBreakerSuccessResetsFailures(t *testing.T) {
	inner := newFlaky(false)
	b := NewBreakerStore(inner, BreakerConfig{FailureThreshold: 2})
	ctx := context.Background()

	inner.down.Store(true)
	b.Add(ctx, Activity{})
	inner.down.Store(false)
	b.Add(ctx, Activity{})
	inner.down.Store(true)
	b.Add(ctx, Activity{})

	if b.State() != BreakerClosed {
		t.Fatalf("non-consecutive failures must not open the breaker, got %s", b.State())
	}
}
