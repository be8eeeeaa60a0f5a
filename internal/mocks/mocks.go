// Package mocks implements the request-mocking worker used in development.
//
// A Worker is an http.RoundTripper. Requests whose method and path match a
// fixture route are answered in-process from embedded JSON; every other
// request bypasses to the next transport unchanged. Until the worker is
// ready every request bypasses.
package mocks

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vango-dev/admindash/internal/api"
	"github.com/vango-dev/admindash/internal/errors"
)

//go:embed fixtures/*.json
var fixtureFS embed.FS

// Option configures a Worker.
type Option func(*Worker)

// WithLatency delays every mocked response by d.
func WithLatency(d time.Duration) Option {
	return func(w *Worker) {
		w.latency = d
	}
}

// WithHost limits interception to requests for host (e.g.,
// "api.admindash.local"). Empty intercepts every host.
func WithHost(host string) Option {
	return func(w *Worker) {
		w.host = host
	}
}

// WithNext sets the transport unhandled requests bypass to.
// Default: http.DefaultTransport
func WithNext(rt http.RoundTripper) Option {
	return func(w *Worker) {
		w.next = rt
	}
}

// WithLogger sets the worker's logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Worker) {
		w.logger = l
	}
}

// Worker answers fixture requests in-process.
type Worker struct {
	mux     *chi.Mux
	next    http.RoundTripper
	host    string
	latency time.Duration
	logger  *slog.Logger

	products []api.Product
	invoices []api.Invoice

	startOnce sync.Once
	ready     chan struct{}
	startErr  error

	served   atomic.Int64
	bypassed atomic.Int64
}

// New creates a stopped worker.
func New(opts ...Option) *Worker {
	w := &Worker{
		next:   http.DefaultTransport,
		logger: slog.Default().With("component", "mocks"),
		ready:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.mux = w.routes()
	return w
}

func (w *Worker) routes() *chi.Mux {
	r := chi.NewRouter()
	r.Get("/api/products", w.listProducts)
	r.Get("/api/products/{id}", w.getProduct)
	r.Get("/api/invoices", w.listInvoices)
	r.Get("/api/invoices/{id}", w.getInvoice)
	return r
}

// Start loads the fixtures on a new goroutine and marks the worker ready
// when done. Calling Start again has no effect.
func (w *Worker) Start() {
	w.startOnce.Do(func() {
		go func() {
			defer close(w.ready)
			if err := w.loadFixtures(); err != nil {
				w.startErr = errors.New("D500").Wrap(err)
				w.logger.Error("mock worker failed to start", "error", err)
				return
			}
			w.logger.Info("mock worker ready",
				"products", len(w.products),
				"invoices", len(w.invoices),
			)
		}()
	})
}

func (w *Worker) loadFixtures() error {
	if err := decodeFixture("fixtures/products.json", &w.products); err != nil {
		return err
	}
	return decodeFixture("fixtures/invoices.json", &w.invoices)
}

func decodeFixture(name string, v any) error {
	data, err := fixtureFS.ReadFile(name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Ready is closed once Start has finished, successfully or not.
func (w *Worker) Ready() <-chan struct{} { return w.ready }

// WaitReady blocks until the worker is ready, ctx is done, or timeout
// elapses. A zero timeout waits on ctx alone.
func (w *Worker) WaitReady(ctx context.Context, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	select {
	case <-w.ready:
		return w.startErr
	case <-ctx.Done():
		return errors.New("D501").
			WithDetail(fmt.Sprintf("Waited %s", timeout)).
			Wrap(ctx.Err())
	}
}

// Stats reports how many requests were mocked and how many bypassed.
func (w *Worker) Stats() (served, bypassed int64) {
	return w.served.Load(), w.bypassed.Load()
}

// Client returns an http.Client that routes through the worker.
func (w *Worker) Client(timeout time.Duration) *http.Client {
	return &http.Client{Transport: w, Timeout: timeout}
}

// RoundTrip implements http.RoundTripper.
func (w *Worker) RoundTrip(req *http.Request) (*http.Response, error) {
	if !w.handles(req) {
		w.bypassed.Add(1)
		return w.next.RoundTrip(req)
	}

	if w.latency > 0 {
		t := time.NewTimer(w.latency)
		select {
		case <-t.C:
		case <-req.Context().Done():
			t.Stop()
			return nil, req.Context().Err()
		}
	}

	// A fresh route context keeps a caller's chi routing state, carried in
	// req's context, out of the mock mux.
	mreq := req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, chi.NewRouteContext()))
	rec := httptest.NewRecorder()
	w.mux.ServeHTTP(rec, mreq)
	w.served.Add(1)

	resp := rec.Result()
	resp.Request = req
	w.logger.Debug("mocked request", "method", req.Method, "path", req.URL.Path, "status", resp.StatusCode)
	return resp, nil
}

func (w *Worker) handles(req *http.Request) bool {
	select {
	case <-w.ready:
	default:
		return false
	}
	if w.startErr != nil {
		return false
	}
	if w.host != "" && req.URL.Host != w.host {
		return false
	}
	return w.mux.Match(chi.NewRouteContext(), req.Method, req.URL.Path)
}

func (w *Worker) listProducts(rw http.ResponseWriter, r *http.Request) {
	if cat := r.URL.Query().Get("category"); cat != "" {
		var out []api.Product
		for _, p := range w.products {
			if p.Category == cat {
				out = append(out, p)
			}
		}
		writeJSON(rw, http.StatusOK, out)
		return
	}
	writeJSON(rw, http.StatusOK, w.products)
}

func (w *Worker) getProduct(rw http.ResponseWriter, r *http.Request) {
	id, ok := idParam(rw, r)
	if !ok {
		return
	}
	for _, p := range w.products {
		if p.ID == id {
			writeJSON(rw, http.StatusOK, p)
			return
		}
	}
	writeJSON(rw, http.StatusNotFound, map[string]string{"error": "product not found"})
}

func (w *Worker) listInvoices(rw http.ResponseWriter, _ *http.Request) {
	writeJSON(rw, http.StatusOK, w.invoices)
}

func (w *Worker) getInvoice(rw http.ResponseWriter, r *http.Request) {
	id, ok := idParam(rw, r)
	if !ok {
		return
	}
	for _, inv := range w.invoices {
		if inv.ID == id {
			writeJSON(rw, http.StatusOK, inv)
			return
		}
	}
	writeJSON(rw, http.StatusNotFound, map[string]string{"error": "invoice not found"})
}

func idParam(rw http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(rw, http.StatusBadRequest, map[string]string{"error": "id must be an integer"})
		return 0, false
	}
	return id, true
}

func writeJSON(rw http.ResponseWriter, status int, v any) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	json.NewEncoder(rw).Encode(v)
}
