package middleware

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/vango-dev/admindash/pkg/loader"
)

func metricCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()

	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter write: %v", err)
	}
	if m.Counter == nil {
		t.Fatal("expected counter metric")
	}
	return m.Counter.GetValue()
}

func metricGaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()

	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("gauge write: %v", err)
	}
	if m.Gauge == nil {
		t.Fatal("expected gauge metric")
	}
	return m.Gauge.GetValue()
}

func metricHistogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()

	metric, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("expected histogram observer to implement prometheus.Metric, got %T", o)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("histogram write: %v", err)
	}
	if m.Histogram == nil {
		t.Fatal("expected histogram metric")
	}
	return m.Histogram.GetSampleCount()
}

func newTestMetrics(t *testing.T, opts ...MetricsOption) (*Metrics, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	return NewMetrics(append([]MetricsOption{WithRegistry(reg)}, opts...)...), reg
}

func TestMetricsMiddleware_RecordsRoutePattern(t *testing.T) {
	m, _ := newTestMetrics(t)

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/products/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, "ok")
	})

	for _, path := range []string{"/api/products/1", "/api/products/2", "/healthz"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if got := metricCounterValue(t, m.requestsTotal.WithLabelValues("/api/products/{id}", "GET", "404")); got != 2 {
		t.Errorf("requests{products,404} = %v, want 2", got)
	}
	if got := metricCounterValue(t, m.requestsTotal.WithLabelValues("/healthz", "GET", "200")); got != 1 {
		t.Errorf("requests{healthz,200} = %v, want 1", got)
	}
	if got := metricHistogramCount(t, m.requestDuration.WithLabelValues("/api/products/{id}")); got != 2 {
		t.Errorf("duration count = %d, want 2", got)
	}
}

func TestMetricsMiddleware_RouteLabelOverride(t *testing.T) {
	m, _ := newTestMetrics(t)

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/*", func(w http.ResponseWriter, req *http.Request) {
		SetRouteLabel(req.Context(), "/ecommerce/product-details/:id")
		w.WriteHeader(http.StatusOK)
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ecommerce/product-details/7", nil))

	if got := metricCounterValue(t, m.requestsTotal.WithLabelValues("/ecommerce/product-details/:id", "GET", "200")); got != 1 {
		t.Errorf("requests{override} = %v, want 1", got)
	}
}

func TestSetRouteLabel_OutsideMiddleware(t *testing.T) {
	// Must not panic without the middleware's holder.
	SetRouteLabel(context.Background(), "/x")
}

func TestMetricsMiddleware_UnmatchedWithoutChi(t *testing.T) {
	m, _ := newTestMetrics(t)
	h := m.Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/_dash/reload", nil))

	if got := metricCounterValue(t, m.requestsTotal.WithLabelValues("unmatched", "POST", "200")); got != 1 {
		t.Errorf("requests{unmatched} = %v, want 1", got)
	}
}

func TestMetrics_LoaderObserver(t *testing.T) {
	m, _ := newTestMetrics(t)
	var obs loader.Observer = m

	obs.LoadStarted("apps.chats")
	obs.LoadStarted("apps.email")
	if got := metricGaugeValue(t, m.loadsInFlight); got != 2 {
		t.Errorf("in flight = %v, want 2", got)
	}

	obs.LoadFinished("apps.chats", 300*time.Millisecond, nil)
	obs.LoadFinished("apps.email", time.Millisecond, errors.New("chunk missing"))
	obs.PlaceholderShown("apps.chats")
	obs.RenderFailed("apps.email", &loader.RenderFailure{View: "apps.email", Message: "nil pointer dereference"})

	if got := metricGaugeValue(t, m.loadsInFlight); got != 0 {
		t.Errorf("in flight = %v, want 0", got)
	}
	if got := metricCounterValue(t, m.loadsTotal.WithLabelValues("apps.chats", "ok")); got != 1 {
		t.Errorf("loads{chats,ok} = %v, want 1", got)
	}
	if got := metricCounterValue(t, m.loadsTotal.WithLabelValues("apps.email", "error")); got != 1 {
		t.Errorf("loads{email,error} = %v, want 1", got)
	}
	if got := metricHistogramCount(t, m.loadDuration.WithLabelValues("apps.chats")); got != 1 {
		t.Errorf("load duration count = %d, want 1", got)
	}
	if got := metricCounterValue(t, m.placeholdersTotal.WithLabelValues("apps.chats")); got != 1 {
		t.Errorf("placeholders = %v, want 1", got)
	}
	if got := metricCounterValue(t, m.renderFailures.WithLabelValues("apps.email", "panic")); got != 1 {
		t.Errorf("render failures{panic} = %v, want 1", got)
	}
}

func TestMetrics_SessionsAndReloads(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.SessionStarted()
	m.SessionStarted()
	m.SessionEnded()
	m.RecordReload()

	if got := metricGaugeValue(t, m.activeSessions); got != 1 {
		t.Errorf("active sessions = %v, want 1", got)
	}
	if got := metricCounterValue(t, m.reloadsTotal); got != 1 {
		t.Errorf("reloads = %v, want 1", got)
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.LoadStarted("v")
	m.LoadFinished("v", time.Second, nil)
	m.PlaceholderShown("v")
	m.RenderFailed("v", errors.New("x"))
	m.SessionStarted()
	m.SessionEnded()
	m.RecordReload()

	called := false
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })
	m.Middleware(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if !called {
		t.Error("nil Metrics middleware did not call next")
	}
}

func TestMetricsHandler_ExposesNamespace(t *testing.T) {
	m, reg := newTestMetrics(t, WithConstLabels(prometheus.Labels{"env": "test"}))
	m.RecordReload()

	rec := httptest.NewRecorder()
	MetricsHandler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	if !strings.Contains(body, `admindash_reloads_total{env="test"} 1`) {
		t.Errorf("scrape output missing reloads counter:\n%s", body)
	}
}

func TestMetrics_CustomNamespace(t *testing.T) {
	m, reg := newTestMetrics(t, WithNamespace("dash"), WithSubsystem("web"), WithBuckets(nil))
	m.SessionStarted()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "dash_web_active_sessions" {
			found = true
		}
	}
	if !found {
		t.Error("dash_web_active_sessions not registered")
	}
}

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "none"},
		{context.DeadlineExceeded, "timeout"},
		{fmt.Errorf("wait: %w", context.Canceled), "canceled"},
		{&loader.LoadFailure{View: "v", Message: "chunk"}, "load"},
		{errors.New("runtime error: index out of range [3]"), "panic"},
		{errors.New("product not found"), "not_found"},
		{errors.New("boom"), "internal"},
	}
	for _, tt := range tests {
		if got := categorizeError(tt.err); got != tt.want {
			t.Errorf("categorizeError(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
