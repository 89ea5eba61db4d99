package repository

import (
	"context"
	"time"
)

// DefaultCapacity is how many activities a feed keeps.
const DefaultCapacity = 10

// Activity is one entry of a dashboard's recent activity feed.
type Activity struct {
	Time    time.Time `json:"time"`
	Message string    `json:"message"`
}

// Store keeps a bounded, newest-first feed of activities. Implementations must be concurrency-safe.
type Store interface {
	// Add prepends a and drops the oldest entries beyond the store capacity.
	Add(ctx context.Context, a Activity) error

	// Recent returns up to n activities, newest first.
	Recent(ctx context.Context, n int) ([]Activity, error)
}
