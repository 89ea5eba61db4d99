package handler

import (
	"context"
	"net/http"

	"monitoring-demo/internal/dashboard"
	"monitoring-demo/internal/service"
)

// Dashboard is the app specific part of a demo app's HTTP surface.
type Dashboard interface {
	// Routes registers the dashboard page and the simulation routes.
	Routes(mux *http.ServeMux, m *RequestMetrics)
	// Refresh runs before every scrape.
	Refresh()
}

// EcommerceHandler serves the e-commerce dashboard.
type EcommerceHandler struct {
	svc  *service.Ecommerce
	page Page
}

func NewEcommerceHandler(svc *service.Ecommerce, page Page) *EcommerceHandler {
	return &EcommerceHandler{svc: svc, page: page}
}

func (h *EcommerceHandler) Routes(mux *http.ServeMux, m *RequestMetrics) {
	mux.HandleFunc("GET /{$}", m.Timed("/", h.home))
	mux.HandleFunc("GET /simulate-sales", m.Timed("/simulate-sales", h.simulateSales))
	mux.HandleFunc("GET /simulate-load", m.Timed("/simulate-load", h.simulateLoad))
}

func (h *EcommerceHandler) Refresh() { h.svc.Refresh() }

// HealthChecked records the check in the activity feed.
func (h *EcommerceHandler) HealthChecked(ctx context.Context) {
	h.svc.Record(ctx, "Health check performed")
}

func (h *EcommerceHandler) home(w http.ResponseWriter, r *http.Request) {
	h.page.render(w, r, dashboard.Ecommerce, h.svc.Overview(r.Context()))
}

func (h *EcommerceHandler) simulateSales(w http.ResponseWriter, r *http.Request) {
	writeText(w, h.svc.SimulateSales(r.Context()).String())
}

func (h *EcommerceHandler) simulateLoad(w http.ResponseWriter, r *http.Request) {
	writeText(w, h.svc.SimulateLoad(r.Context()))
}

// WeatherHandler serves the weather dashboard.
type WeatherHandler struct {
	svc  *service.Weather
	page Page
}

func NewWeatherHandler(svc *service.Weather, page Page) *WeatherHandler {
	return &WeatherHandler{svc: svc, page: page}
}

func (h *WeatherHandler) Routes(mux *http.ServeMux, m *RequestMetrics) {
	mux.HandleFunc("GET /{$}", m.Timed("/", h.home))
	mux.HandleFunc("GET /update-weather", m.Timed("/update-weather", h.update))
}

func (h *WeatherHandler) Refresh() { h.svc.Refresh() }

func (h *WeatherHandler) home(w http.ResponseWriter, r *http.Request) {
	h.page.render(w, r, dashboard.Weather, h.svc.Overview())
}

func (h *WeatherHandler) update(w http.ResponseWriter, r *http.Request) {
	writeText(w, h.svc.Update())
}

// SocialHandler serves the social media dashboard.
type SocialHandler struct {
	svc  *service.Social
	page Page
}

func NewSocialHandler(svc *service.Social, page Page) *SocialHandler {
	return &SocialHandler{svc: svc, page: page}
}

func (h *SocialHandler) Routes(mux *http.ServeMux, m *RequestMetrics) {
	mux.HandleFunc("GET /{$}", m.Timed("/", h.home))
	mux.HandleFunc("GET /generate-content", m.Timed("/generate-content", h.generate))
}

func (h *SocialHandler) Refresh() { h.svc.Refresh() }

func (h *SocialHandler) home(w http.ResponseWriter, r *http.Request) {
	h.page.render(w, r, dashboard.Social, h.svc.Overview())
}

func (h *SocialHandler) generate(w http.ResponseWriter, r *http.Request) {
	writeText(w, h.svc.GenerateContent())
}

// SampleHandler serves the minimal sample app.
type SampleHandler struct {
	svc  *service.Sample
	page Page
}

func NewSampleHandler(svc *service.Sample, page Page) *SampleHandler {
	return &SampleHandler{svc: svc, page: page}
}

func (h *SampleHandler) Routes(mux *http.ServeMux, m *RequestMetrics) {
	mux.HandleFunc("GET /{$}", m.Timed("/", h.home))
	mux.HandleFunc("GET /simulate-load", m.Timed("/simulate-load", h.simulateLoad))
}

func (h *SampleHandler) Refresh() { h.svc.Refresh() }

func (h *SampleHandler) home(w http.ResponseWriter, r *http.Request) {
	h.svc.Home()
	h.page.render(w, r, dashboard.Sample, nil)
}

func (h *SampleHandler) simulateLoad(w http.ResponseWriter, r *http.Request) {
	writeText(w, h.svc.SimulateLoad())
}
