package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// HealthHandler answers liveness checks.
type HealthHandler struct {
	Service string
	Now     func() time.Time
	// OnCheck, when set, runs on every check.
	OnCheck func(ctx context.Context)
}

// HealthResponse is the body of a health check.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
	Service   string `json:"service"`
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	if h.OnCheck != nil {
		h.OnCheck(r.Context())
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HealthResponse{
		Status:    "healthy",
		Timestamp: now().Unix(),
		Service:   h.Service,
	})
}
