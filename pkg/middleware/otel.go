package middleware

import (
	"context"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/admindash/pkg/loader"
)

// DefaultTracerName is the instrumentation name used when none is set.
const DefaultTracerName = "admindash"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "admindash").
	TracerName string

	// Filter determines which requests to trace.
	// Return false to skip tracing for a request.
	Filter func(r *http.Request) bool

	// AttributeExtractor adds custom attributes to spans.
	AttributeExtractor func(r *http.Request) []attribute.KeyValue

	// TracerProvider overrides the global provider.
	TracerProvider trace.TracerProvider
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithRequestFilter sets a filter function for requests.
func WithRequestFilter(filter func(r *http.Request) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(r *http.Request) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// WithTracerProvider sets the provider spans are created from.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

func newOTelConfig(opts []OTelOption) OTelConfig {
	config := OTelConfig{TracerName: DefaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	return config
}

func (c OTelConfig) tracer() trace.Tracer {
	if c.TracerProvider != nil {
		return c.TracerProvider.Tracer(c.TracerName)
	}
	return otel.Tracer(c.TracerName)
}

// Tracing creates middleware that starts a server span for every request.
// The span is named after the matched chi route once routing is done, and
// carries the response status. A 5xx status marks the span as an error.
//
// Configure a TracerProvider before serving:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
func Tracing(opts ...OTelOption) func(http.Handler) http.Handler {
	config := newOTelConfig(opts)
	tracer := config.tracer()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if config.Filter != nil && !config.Filter(r) {
				next.ServeHTTP(w, r)
				return
			}

			attrs := []attribute.KeyValue{
				attribute.String("http.method", r.Method),
				attribute.String("http.target", r.URL.Path),
			}
			if config.AttributeExtractor != nil {
				attrs = append(attrs, config.AttributeExtractor(r)...)
			}

			ctx, span := tracer.Start(r.Context(), "admindash "+r.Method,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(attrs...),
			)
			defer span.End()

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			r = r.WithContext(ctx)
			next.ServeHTTP(ww, r)

			route := routePattern(r)
			span.SetName("admindash " + r.Method + " " + route)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			span.SetAttributes(
				attribute.String("http.route", route),
				attribute.Int("http.status_code", status),
			)
			if status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(status))
			} else {
				span.SetStatus(codes.Ok, "")
			}
		})
	}
}

// SpanFromContext returns the current span, for adding events or attributes
// from a handler.
//
//	span := middleware.SpanFromContext(r.Context())
//	span.AddEvent("cv.saved")
func SpanFromContext(ctx context.Context) trace.Span {
	return trace.SpanFromContext(ctx)
}

// LoadTracer records a span for every settled load. Span start times are
// backdated to when the load began so that the trace shows the real load
// duration. Placeholder and render failure events become zero-length
// spans.
type LoadTracer struct {
	tracer trace.Tracer
	base   context.Context
}

var _ loader.Observer = (*LoadTracer)(nil)

// NewLoadTracer returns a tracer observer. Spans are parented on base's
// span, if any; pass context.Background for root spans.
func NewLoadTracer(base context.Context, opts ...OTelOption) *LoadTracer {
	config := newOTelConfig(opts)
	if base == nil {
		base = context.Background()
	}
	return &LoadTracer{tracer: config.tracer(), base: base}
}

// LoadStarted implements loader.Observer. The span is emitted on finish.
func (t *LoadTracer) LoadStarted(string) {}

// LoadFinished implements loader.Observer.
func (t *LoadTracer) LoadFinished(view string, elapsed time.Duration, err error) {
	end := time.Now()
	_, span := t.tracer.Start(t.base, "load "+view,
		trace.WithTimestamp(end.Add(-elapsed)),
		trace.WithAttributes(
			attribute.String("admindash.view", view),
			attribute.Int64("admindash.load_ms", elapsed.Milliseconds()),
		),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End(trace.WithTimestamp(end))
}

// PlaceholderShown implements loader.Observer.
func (t *LoadTracer) PlaceholderShown(view string) {
	_, span := t.tracer.Start(t.base, "placeholder "+view,
		trace.WithAttributes(attribute.String("admindash.view", view)))
	span.End()
}

// RenderFailed implements loader.Observer.
func (t *LoadTracer) RenderFailed(view string, err error) {
	_, span := t.tracer.Start(t.base, "render "+view,
		trace.WithAttributes(attribute.String("admindash.view", view)))
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.End()
}
