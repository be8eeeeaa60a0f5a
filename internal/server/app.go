// Package server serves the dashboard over HTTP.
//
// Every GET is resolved against the route table. Redirect entries answer
// with a 302; view entries stream the group's layout, then the view through
// a loader boundary: the placeholder goes out first when the view is slow,
// and the resolved view replaces it later in the same response.
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/admindash/internal/config"
	"github.com/vango-dev/admindash/internal/cv"
	"github.com/vango-dev/admindash/internal/errors"
	"github.com/vango-dev/admindash/internal/mocks"
	"github.com/vango-dev/admindash/internal/session"
	"github.com/vango-dev/admindash/internal/views"
	"github.com/vango-dev/admindash/pkg/loader"
	"github.com/vango-dev/admindash/pkg/middleware"
	"github.com/vango-dev/admindash/pkg/render"
	"github.com/vango-dev/admindash/pkg/router"
	"github.com/vango-dev/admindash/pkg/vdom"
	"github.com/vango-dev/admindash/pkg/view"
)

// StyleSheet is linked from every page, relative to the asset path.
const StyleSheet = "admindash.css"

// Options wires an App.
type Options struct {
	// Config is required.
	Config *config.Config

	// Table and Catalog default to the dashboard's own.
	Table   *router.Table
	Catalog *views.Catalog

	// Store persists CVs. Default: an in-memory store.
	Store cv.Store

	// Metrics records HTTP, loader and session metrics. Nil disables them.
	Metrics *middleware.Metrics

	// Gatherer is scraped by the metrics endpoint.
	Gatherer prometheus.Gatherer

	// Mocks, when set, must be ready before any page renders.
	Mocks *mocks.Worker

	// TracerProvider overrides the global OpenTelemetry provider.
	TracerProvider trace.TracerProvider

	Logger *slog.Logger
}

// App is the dashboard's HTTP handler.
type App struct {
	cfg      *config.Config
	table    *router.Table
	catalog  *views.Catalog
	store    cv.Store
	metrics  *middleware.Metrics
	gatherer prometheus.Gatherer
	mocks    *mocks.Worker
	tp       trace.TracerProvider
	logger   *slog.Logger

	timings  loader.Config
	boundary *loader.Boundary
	sessions *session.Manager
	mux      *chi.Mux
}

// New builds an App. Call Close to stop its session manager.
func New(opts Options) (*App, error) {
	if opts.Config == nil {
		return nil, errors.Newf(errors.CategoryServer, "server: nil config")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Catalog == nil {
		opts.Catalog = views.NewCatalog(views.Deps{})
	}
	if opts.Table == nil {
		t, err := views.NewTable(opts.Catalog)
		if err != nil {
			return nil, err
		}
		opts.Table = t
	} else if err := opts.Catalog.Check(opts.Table); err != nil {
		return nil, err
	}
	if opts.Store == nil {
		opts.Store = cv.NewMemoryStore()
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}

	timings, err := opts.Config.LoaderTimings()
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:      opts.Config,
		table:    opts.Table,
		catalog:  opts.Catalog,
		store:    opts.Store,
		metrics:  opts.Metrics,
		gatherer: opts.Gatherer,
		mocks:    opts.Mocks,
		tp:       opts.TracerProvider,
		logger:   opts.Logger.With("component", "app"),
		timings:  timings,
	}

	a.boundary = loader.NewBoundary(timings,
		loader.WithBoundaryLogger(opts.Logger.With("component", "boundary")),
		loader.WithBoundaryObserver(a.observer()),
	)
	a.sessions = session.NewManager(session.ManagerConfig{
		CookieName:      a.cfg.Session.CookieName,
		IdleTimeout:     a.cfg.Duration("session.idleTimeout"),
		CleanupInterval: a.cfg.Duration("session.cleanupInterval"),
		Secure:          a.cfg.Session.Secure,
		NewRegistry:     a.newRegistry,
		OnStart:         func(*session.Session) { a.metrics.SessionStarted() },
		OnEnd:           func(*session.Session) { a.metrics.SessionEnded() },
	}, opts.Logger)
	a.mux = a.routes()
	return a, nil
}

func (a *App) observer() loader.Observer {
	var tracerOpts []middleware.OTelOption
	if a.tp != nil {
		tracerOpts = append(tracerOpts, middleware.WithTracerProvider(a.tp))
	}
	return loader.Observers{a.metrics, middleware.NewLoadTracer(context.Background(), tracerOpts...)}
}

// newRegistry creates the loader registry of a new or reset session.
func (a *App) newRegistry() *loader.Registry {
	return loader.NewRegistry(
		loader.WithConfig(a.timings),
		loader.WithLogger(a.logger.With("component", "loader")),
		loader.WithObserver(a.observer()),
	)
}

func (a *App) routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	var tracing []middleware.OTelOption
	if a.tp != nil {
		tracing = append(tracing, middleware.WithTracerProvider(a.tp))
	}
	tracing = append(tracing, middleware.WithRequestFilter(func(r *http.Request) bool {
		return r.URL.Path != "/healthz" && r.URL.Path != a.cfg.Metrics.Path &&
			!strings.HasPrefix(r.URL.Path, a.cfg.Server.AssetPath+"/")
	}))
	r.Use(middleware.Tracing(tracing...))
	r.Use(a.metrics.Middleware)

	r.Get("/healthz", a.healthz)
	if p := strings.TrimRight(a.cfg.Server.AssetPath, "/"); strings.HasPrefix(p, "/") {
		r.Get(p+"/*", a.assets)
	}
	if a.cfg.Metrics.Enabled {
		r.Method(http.MethodGet, a.cfg.Metrics.Path, middleware.MetricsHandler(a.gatherer))
	}

	r.Group(func(r chi.Router) {
		r.Use(a.sessions.Middleware)
		r.Post(loader.ReloadAction, a.reload)
		r.Get("/apps/cv-generator", a.cvPage)
		r.Post("/apps/cv-generator", a.saveCV)
		r.Get("/*", a.page)
	})
	return r
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}

// Table returns the route table being served.
func (a *App) Table() *router.Table { return a.table }

// Sessions returns the session manager.
func (a *App) Sessions() *session.Manager { return a.sessions }

func (a *App) healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if a.mocks != nil {
		select {
		case <-a.mocks.Ready():
		default:
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("waiting for mocks\n"))
			return
		}
	}
	w.Write([]byte("ok\n"))
}

// page resolves the request path and renders or redirects.
func (a *App) page(w http.ResponseWriter, r *http.Request) {
	a.serve(w, r, nil, http.StatusOK)
}

func (a *App) serve(w http.ResponseWriter, r *http.Request, values map[string]any, status int) {
	res, err := a.table.Resolve(r.URL.EscapedPath())
	if err != nil {
		middleware.SetRouteLabel(r.Context(), "invalid")
		http.Redirect(w, r, views.NotFound, http.StatusFound)
		return
	}
	middleware.SetRouteLabel(r.Context(), res.Pattern)
	middleware.SpanFromContext(r.Context()).SetAttributes(
		attribute.String("admindash.group", res.Group),
		attribute.String("admindash.pattern", res.Pattern),
		attribute.String("admindash.view", res.View),
	)
	if res.Redirect != "" {
		http.Redirect(w, r, res.Redirect, http.StatusFound)
		return
	}

	if a.mocks != nil {
		if err := a.mocks.WaitReady(r.Context(), a.cfg.Duration("mocks.readyTimeout")); err != nil {
			a.logger.Error("mocks not ready", "path", r.URL.Path, "error", err)
			http.Error(w, "Request mocking is not ready", http.StatusServiceUnavailable)
			return
		}
	}

	sess := session.FromContext(r.Context())
	fn, ok := a.catalog.LoadFunc(res.View)
	layout, lok := a.catalog.Layout(res.Layout)
	if sess == nil || !ok || !lok {
		a.logger.Error("cannot render route", "path", r.URL.Path, "view", res.View, "layout", res.Layout)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	l := sess.Registry().Wrap(res.View, fn)

	title := a.cfg.Name
	if t := a.catalog.Title(res.View); t != "" {
		title = t + " | " + a.cfg.Name
	}
	before, after, err := views.Split(layout, views.Chrome{AppName: a.cfg.Name, Path: r.URL.Path, Title: title})
	if err != nil {
		a.logger.Error("layout render failed", "layout", res.Layout, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)

	stream := render.NewStream(w, render.RendererConfig{AssetPath: a.cfg.Server.AssetPath})
	defer stream.Close()
	if err := stream.Open(render.Document{Title: title, StyleSheets: []string{StyleSheet}}); err != nil {
		return
	}
	if err := stream.Write(vdom.Raw(before)); err != nil {
		return
	}

	props := view.Props{
		Context: r.Context(),
		Path:    r.URL.Path,
		Params:  res.Params,
		Query:   r.URL.Query(),
		Values:  values,
	}
	outcome, err := a.boundary.Serve(r.Context(), l, props, &streamSink{stream: stream, id: "view"})
	if err != nil {
		a.logger.Debug("render ended early", "path", r.URL.Path, "outcome", outcome, "error", err)
		return
	}
	stream.Write(vdom.Raw(after))
}

// streamSink writes boundary frames into one slot of a stream.
type streamSink struct {
	stream *render.Stream
	id     string
}

func (s *streamSink) Placeholder(node *vdom.VNode) error { return s.stream.Slot(s.id, node) }
func (s *streamSink) Resolve(node *vdom.VNode) error     { return s.stream.Fill(s.id, node) }

// reload discards the session's loaders and navigates back.
func (a *App) reload(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	if _, err := a.sessions.Reset(sess.ID); err != nil {
		a.logger.Warn("reload of unknown session", "error", err)
	}
	a.metrics.RecordReload()
	http.Redirect(w, r, localPath(r.PostFormValue("to")), http.StatusSeeOther)
}

// localPath returns p when it is a path on this site, Home otherwise.
func localPath(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.ContainsAny(p, `\`+"\r\n") {
		return views.Home
	}
	return p
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json") ||
		strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

// loadCV returns the session's CV. A corrupt or unreachable document is
// logged and replaced by an empty CV.
func (a *App) loadCV(r *http.Request, sess *session.Session) cv.CV {
	doc, err := cv.LoadOrNew(r.Context(), a.store, sess.ID)
	if err != nil {
		a.logger.Warn("saved CV unusable", "session_id", sess.ID, "backend", a.store.Backend(), "error", err)
	}
	return doc
}

func (a *App) cvPage(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	doc := a.loadCV(r, sess)
	if wantsJSON(r) {
		middleware.SetRouteLabel(r.Context(), "cv json")
		writeJSON(w, http.StatusOK, doc)
		return
	}
	values := map[string]any{views.ValueCV: doc}
	if r.URL.Query().Get("saved") != "" {
		values[views.ValueNotice] = "Your CV has been saved."
	}
	a.serve(w, r, values, http.StatusOK)
}

func (a *App) saveCV(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	asJSON := strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")

	var doc cv.CV
	if asJSON {
		middleware.SetRouteLabel(r.Context(), "cv json")
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&doc); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid CV JSON: " + err.Error()})
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
		doc = a.loadCV(r, sess)
		cv.ApplyForm(&doc, r.PostForm)
	}

	doc.Normalize()
	if err := doc.Validate(); err != nil {
		var fe *cv.FieldError
		if !stderrors.As(err, &fe) {
			fe = &cv.FieldError{Message: err.Error()}
		}
		if asJSON {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": fe.Message, "field": fe.Field})
			return
		}
		a.serve(w, r, map[string]any{views.ValueCV: doc, views.ValueNotice: err.Error()}, http.StatusUnprocessableEntity)
		return
	}

	if err := a.store.Save(r.Context(), sess.ID, doc); err != nil {
		a.logger.Error("saving CV failed", "session_id", sess.ID, "backend", a.store.Backend(), "error", err)
		if asJSON {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
			return
		}
		http.Error(w, "Could not save your CV", http.StatusServiceUnavailable)
		return
	}

	if asJSON {
		writeJSON(w, http.StatusOK, doc)
		return
	}
	http.Redirect(w, r, "/apps/cv-generator?saved=1", http.StatusSeeOther)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
