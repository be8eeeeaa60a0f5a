// Package middleware provides production-grade middleware for the dashboard
// server.
//
// This package includes:
//   - Prometheus metrics for HTTP requests and deferred view loads
//   - OpenTelemetry tracing for HTTP requests and deferred view loads
//
// Both are plain net/http middleware and mount on any chi router:
//
//	m := middleware.NewMetrics(middleware.WithRegistry(reg))
//	r := chi.NewRouter()
//	r.Use(middleware.Tracing(), m.Middleware)
//	r.Handle("/metrics", middleware.MetricsHandler(reg))
//
// # Prometheus Metrics
//
// Metrics collects:
//   - admindash_http_requests_total: requests by route, method and status
//   - admindash_http_request_duration_seconds: request duration by route
//   - admindash_loads_total: view loads by view and result
//   - admindash_load_duration_seconds: time from load start to settle
//   - admindash_loads_in_flight: loads that have started but not settled
//   - admindash_placeholders_total: placeholders shown by view
//   - admindash_render_failures_total: views that failed while rendering
//   - admindash_active_sessions: sessions currently held by the server
//   - admindash_reloads_total: explicit page reloads
//
// Metrics also implements loader.Observer so that it can be handed to a
// loader registry directly.
//
// Route labels default to the chi route pattern. Handlers that resolve
// paths themselves call SetRouteLabel with a bounded label so that page
// URLs never become label values.
//
// # OpenTelemetry
//
// Tracing starts a server span per request named "admindash METHOD route".
// Configure a TracerProvider with otel.SetTracerProvider before serving;
// without one the global no-op provider is used.
//
// LoadTracer implements loader.Observer and records one span per settled
// load, started at the moment the load began.
package middleware
