package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"monitoring-demo/internal/dashboard"
	"monitoring-demo/internal/middleware"
)

// Page renders one dashboard page for a service.
type Page struct {
	Renderer *dashboard.Renderer
	Service  string
	Now      func() time.Time
}

func (p Page) render(w http.ResponseWriter, r *http.Request, page string, data any) {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := p.Renderer.Render(w, page, dashboard.View{Service: p.Service, Time: now(), Data: data})
	if err == nil {
		return
	}
	var rerr *dashboard.RenderError
	if errors.As(err, &rerr) {
		log.Error().Err(err).Str("request_id", middleware.RequestIDOf(r)).Msg("dashboard render failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	log.Debug().Err(err).Msg("write dashboard")
}

func writeText(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, msg)
}
