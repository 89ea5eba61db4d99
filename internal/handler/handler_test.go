package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"monitoring-demo/internal/dashboard"
	"monitoring-demo/internal/metrics"
	"monitoring-demo/internal/repository"
	"monitoring-demo/internal/sampler"
	"monitoring-demo/internal/service"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func testDeps(reg *metrics.Registry) service.Deps {
	return service.Deps{
		Registry: reg,
		Sampler:  sampler.Floor{},
		Delay:    sampler.NoDelay,
		Now:      func() time.Time { return fixedNow },
	}
}

func testPage(t *testing.T, svc string) Page {
	t.Helper()
	r, err := dashboard.NewRenderer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return Page{Renderer: r, Service: svc, Now: func() time.Time { return fixedNow }}
}

func do(h http.Handler, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func requests(reg *metrics.Registry, prefix, endpoint string) float64 {
	return reg.Counter(prefix+"_requests_total", "GET", endpoint).Value()
}

func TestEcommerceRoutes(t *testing.T) {
	reg := metrics.NewRegistry()
	store := repository.NewMemoryStore(repository.DefaultCapacity)
	svc := service.NewEcommerce(testDeps(reg), store)
	mux := NewMux(MuxConfig{
		Registry:  reg,
		Prefix:    "ecommerce",
		Service:   "ecommerce-dashboard",
		Dashboard: NewEcommerceHandler(svc, testPage(t, "ecommerce-dashboard")),
		Now:       func() time.Time { return fixedNow },
	})

	w := do(mux, "GET", "/")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("unexpected content type %q", ct)
	}
	if !strings.Contains(w.Body.String(), "E-Commerce Dashboard") {
		t.Errorf("expected dashboard page, got %q", w.Body.String())
	}

	w = do(mux, "GET", "/simulate-sales")
	if got := w.Body.String(); got != "✅ Sales simulation completed! Generated $100.00 with 5 orders" {
		t.Errorf("unexpected body %q", got)
	}
	w = do(mux, "GET", "/simulate-load")
	if got := w.Body.String(); got != "Load simulation completed in 0.50 seconds" {
		t.Errorf("unexpected body %q", got)
	}

	if got := requests(reg, "ecommerce", "/"); got != 1 {
		t.Errorf("expected 1 request to /, got %v", got)
	}
	if got := requests(reg, "ecommerce", "/simulate-sales"); got != 1 {
		t.Errorf("expected 1 request to /simulate-sales, got %v", got)
	}
	if got := reg.Histogram("ecommerce_request_duration_seconds").Snapshot().Count; got != 3 {
		t.Errorf("expected 3 timed requests, got %d", got)
	}
	if got := reg.Counter("ecommerce_orders_total", "completed").Value(); got != 5 {
		t.Errorf("expected 5 orders, got %v", got)
	}
}

func TestHealthCountsAndRecords(t *testing.T) {
	reg := metrics.NewRegistry()
	store := repository.NewMemoryStore(repository.DefaultCapacity)
	svc := service.NewEcommerce(testDeps(reg), store)
	mux := NewMux(MuxConfig{
		Registry:  reg,
		Prefix:    "ecommerce",
		Service:   "ecommerce-dashboard",
		Dashboard: NewEcommerceHandler(svc, testPage(t, "ecommerce-dashboard")),
		Now:       func() time.Time { return fixedNow },
	})

	w := do(mux, "GET", "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := HealthResponse{Status: "healthy", Timestamp: fixedNow.Unix(), Service: "ecommerce-dashboard"}
	if body != want {
		t.Errorf("expected %+v, got %+v", want, body)
	}
	if got := requests(reg, "ecommerce", "/health"); got != 1 {
		t.Errorf("expected 1 health request, got %v", got)
	}
	if got := reg.Histogram("ecommerce_request_duration_seconds").Snapshot().Count; got != 0 {
		t.Errorf("health checks are not timed, got %d observations", got)
	}

	recent, _ := store.Recent(t.Context(), 1)
	if len(recent) != 1 || recent[0].Message != "Health check performed" {
		t.Errorf("expected health activity, got %+v", recent)
	}
}

func TestMetricsRefreshesAndIsNotCounted(t *testing.T) {
	reg := metrics.NewRegistry()
	svc := service.NewSample(testDeps(reg))
	mux := NewMux(MuxConfig{
		Registry:  reg,
		Prefix:    "sample_app",
		Service:   "sample-app",
		Dashboard: NewSampleHandler(svc, testPage(t, "sample-app")),
		Gatherers: []prometheus.Gatherer{metrics.NewRuntimeGatherer()},
	})

	do(mux, "GET", "/")
	w := do(mux, "GET", "/metrics")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != metrics.ContentType {
		t.Errorf("unexpected content type %q", ct)
	}
	body := w.Body.String()
	for _, want := range []string{
		`sample_app_requests_total{method="GET",endpoint="/"} 1`,
		"sample_app_active_users 5",
		"sample_app_request_duration_seconds_count 1",
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in exposition:\n%s", want, body)
		}
	}
	if strings.Contains(body, `endpoint="/metrics"`) {
		t.Errorf("/metrics must not be counted:\n%s", body)
	}
}

func TestWeatherAndSocialRoutes(t *testing.T) {
	reg := metrics.NewRegistry()
	weather := NewMux(MuxConfig{
		Registry:  reg,
		Prefix:    "weather",
		Service:   "weather-monitoring",
		Dashboard: NewWeatherHandler(service.NewWeather(testDeps(reg)), testPage(t, "weather-monitoring")),
	})
	if w := do(weather, "GET", "/update-weather"); w.Body.String() != "✅ Weather data updated for all locations!" {
		t.Errorf("unexpected body %q", w.Body.String())
	}
	if got := reg.Gauge("weather_temperature_celsius", "medan").Value(); got != 18 {
		t.Errorf("expected medan at 18, got %v", got)
	}
	if w := do(weather, "GET", "/"); !strings.Contains(w.Body.String(), "13:00") {
		t.Errorf("expected forecast for 13:00, got %q", w.Body.String())
	}

	reg = metrics.NewRegistry()
	social := NewMux(MuxConfig{
		Registry:  reg,
		Prefix:    "social",
		Service:   "social-media-analytics",
		Dashboard: NewSocialHandler(service.NewSocial(testDeps(reg)), testPage(t, "social-media-analytics")),
	})
	if w := do(social, "GET", "/generate-content"); w.Body.String() != "✅ Content generated for all social media platforms!" {
		t.Errorf("unexpected body %q", w.Body.String())
	}
	if got := reg.Counter("social_likes_total", "tiktok").Value(); got != 50 {
		t.Errorf("expected 50 tiktok likes, got %v", got)
	}
	if w := do(social, "GET", "/"); !strings.Contains(w.Body.String(), "#TechNews") {
		t.Errorf("expected trending tags, got %q", w.Body.String())
	}
}

func TestUnknownRoutes(t *testing.T) {
	reg := metrics.NewRegistry()
	mux := NewMux(MuxConfig{
		Registry:  reg,
		Prefix:    "sample_app",
		Service:   "sample-app",
		Dashboard: NewSampleHandler(service.NewSample(testDeps(reg)), testPage(t, "sample-app")),
	})

	if w := do(mux, "GET", "/nope"); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if w := do(mux, "POST", "/"); w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
	if got := requests(reg, "sample_app", "/"); got != 0 {
		t.Errorf("rejected requests must not be counted, got %v", got)
	}
}

// brokenDashboard renders the e-commerce page with data it cannot display.
type brokenDashboard struct{ page Page }

func (b brokenDashboard) Routes(mux *http.ServeMux, m *RequestMetrics) {
	mux.HandleFunc("GET /{$}", m.Timed("/", func(w http.ResponseWriter, r *http.Request) {
		b.page.render(w, r, dashboard.Ecommerce, 42)
	}))
}

func (brokenDashboard) Refresh() {}

func TestRenderFailureIs500(t *testing.T) {
	reg := metrics.NewRegistry()
	mux := NewMux(MuxConfig{
		Registry:  reg,
		Prefix:    "broken",
		Service:   "broken",
		Dashboard: brokenDashboard{page: testPage(t, "broken")},
	})

	w := do(mux, "GET", "/")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "<html") {
		t.Errorf("expected no partial page, got %q", w.Body.String())
	}
}

func TestMetricsListsUnusedCounters(t *testing.T) {
	reg := metrics.NewRegistry()
	mux := NewMux(MuxConfig{
		Registry:  reg,
		Prefix:    "social",
		Service:   "social-media-analytics",
		Dashboard: NewSocialHandler(service.NewSocial(testDeps(reg)), testPage(t, "social-media-analytics")),
	})

	body := do(mux, "GET", "/metrics").Body.String()
	for _, want := range []string{
		"# TYPE social_posts_total counter",
		"# TYPE social_comments_total counter",
		"# TYPE social_requests_total counter",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q before any content is generated:\n%s", want, body)
		}
	}
	if strings.Contains(body, `social_posts_total{`) {
		t.Errorf("no post series should exist yet:\n%s", body)
	}
}
