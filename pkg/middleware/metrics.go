package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/admindash/pkg/loader"
)

// MetricsConfig configures the Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "admindash").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for request and load duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "admindash",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the dashboard's Prometheus collectors. All methods are safe
// for concurrent use. A nil *Metrics records nothing.
type Metrics struct {
	requestsTotal     *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	loadsTotal        *prometheus.CounterVec
	loadDuration      *prometheus.HistogramVec
	loadsInFlight     prometheus.Gauge
	placeholdersTotal *prometheus.CounterVec
	renderFailures    *prometheus.CounterVec
	activeSessions    prometheus.Gauge
	reloadsTotal      prometheus.Counter
}

var _ loader.Observer = (*Metrics)(nil)

// NewMetrics registers the collectors with the configured registry. It
// panics if they are already registered there, so each registry gets one
// Metrics.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if len(config.Buckets) == 0 {
		config.Buckets = prometheus.DefBuckets
	}

	factory := promauto.With(config.Registry)
	counterOpts := func(name, help string) prometheus.CounterOpts {
		return prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		}
	}
	gaugeOpts := func(name, help string) prometheus.GaugeOpts {
		return prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		}
	}
	histogramOpts := func(name, help string) prometheus.HistogramOpts {
		return prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}
	}

	return &Metrics{
		requestsTotal: factory.NewCounterVec(
			counterOpts("http_requests_total", "Total number of HTTP requests served"),
			[]string{"route", "method", "status"}),
		requestDuration: factory.NewHistogramVec(
			histogramOpts("http_request_duration_seconds", "HTTP request duration in seconds"),
			[]string{"route"}),
		loadsTotal: factory.NewCounterVec(
			counterOpts("loads_total", "Total number of settled view loads"),
			[]string{"view", "result"}),
		loadDuration: factory.NewHistogramVec(
			histogramOpts("load_duration_seconds", "Time from load start to settle in seconds"),
			[]string{"view"}),
		loadsInFlight: factory.NewGauge(
			gaugeOpts("loads_in_flight", "Number of view loads that have started but not settled")),
		placeholdersTotal: factory.NewCounterVec(
			counterOpts("placeholders_total", "Total number of loading placeholders shown"),
			[]string{"view"}),
		renderFailures: factory.NewCounterVec(
			counterOpts("render_failures_total", "Total number of views that failed while rendering"),
			[]string{"view", "error_type"}),
		activeSessions: factory.NewGauge(
			gaugeOpts("active_sessions", "Number of dashboard sessions held by the server")),
		reloadsTotal: factory.NewCounter(
			counterOpts("reloads_total", "Total number of explicit page reloads")),
	}
}

// MetricsHandler returns the scrape endpoint for g.
func MetricsHandler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

type routeLabelKey struct{}

// SetRouteLabel overrides the route label recorded for the current request.
// It is a no-op outside of Metrics.Middleware.
func SetRouteLabel(ctx context.Context, label string) {
	if p, ok := ctx.Value(routeLabelKey{}).(*string); ok {
		*p = label
	}
}

// Middleware records request count and duration. The route label is the
// value set by SetRouteLabel, or else the matched chi pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		var label string
		r = r.WithContext(context.WithValue(r.Context(), routeLabelKey{}, &label))
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := label
		if route == "" {
			route = routePattern(r)
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// routePattern returns the chi pattern that matched r, or "unmatched".
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

// LoadStarted implements loader.Observer.
func (m *Metrics) LoadStarted(string) {
	if m == nil {
		return
	}
	m.loadsInFlight.Inc()
}

// LoadFinished implements loader.Observer.
func (m *Metrics) LoadFinished(view string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.loadsInFlight.Dec()
	m.loadsTotal.WithLabelValues(view, result).Inc()
	m.loadDuration.WithLabelValues(view).Observe(elapsed.Seconds())
}

// PlaceholderShown implements loader.Observer.
func (m *Metrics) PlaceholderShown(view string) {
	if m == nil {
		return
	}
	m.placeholdersTotal.WithLabelValues(view).Inc()
}

// RenderFailed implements loader.Observer.
func (m *Metrics) RenderFailed(view string, err error) {
	if m == nil {
		return
	}
	m.renderFailures.WithLabelValues(view, categorizeError(err)).Inc()
}

// SessionStarted records a new session.
func (m *Metrics) SessionStarted() {
	if m == nil {
		return
	}
	m.activeSessions.Inc()
}

// SessionEnded records a session that was reset or expired.
func (m *Metrics) SessionEnded() {
	if m == nil {
		return
	}
	m.activeSessions.Dec()
}

// RecordReload records an explicit page reload.
func (m *Metrics) RecordReload() {
	if m == nil {
		return
	}
	m.reloadsTotal.Inc()
}

// categorizeError returns a bounded label for err.
// This prevents high-cardinality labels from error messages.
func categorizeError(err error) string {
	if err == nil {
		return "none"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}
	var lf *loader.LoadFailure
	if errors.As(err, &lf) {
		return "load"
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "nil pointer"), strings.Contains(msg, "index out of range"):
		return "panic"
	case strings.Contains(msg, "not found"):
		return "not_found"
	default:
		return "internal"
	}
}
