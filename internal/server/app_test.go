package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/admindash/internal/api"
	"github.com/vango-dev/admindash/internal/config"
	"github.com/vango-dev/admindash/internal/cv"
	"github.com/vango-dev/admindash/internal/errors"
	"github.com/vango-dev/admindash/internal/mocks"
	"github.com/vango-dev/admindash/internal/views"
	"github.com/vango-dev/admindash/pkg/middleware"
)

type testEnv struct {
	app    *App
	srv    *httptest.Server
	client *http.Client
	reg    *prometheus.Registry
}

func testConfig() *config.Config {
	cfg := config.New()
	cfg.Loader.MinDelay = "0s"
	cfg.Loader.PlaceholderDelay = "2s"
	cfg.Loader.SlowThreshold = "0s"
	return cfg
}

func newEnv(t *testing.T, opts Options) *testEnv {
	t.Helper()
	if opts.Config == nil {
		opts.Config = testConfig()
	}
	reg := prometheus.NewRegistry()
	opts.Metrics = middleware.NewMetrics(middleware.WithRegistry(reg))
	opts.Gatherer = reg

	app, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	srv := httptest.NewServer(app)
	jar, _ := cookiejar.New(nil)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	t.Cleanup(func() {
		client.CloseIdleConnections()
		srv.Close()
		app.Close(context.Background())
	})
	return &testEnv{app: app, srv: srv, client: client, reg: reg}
}

func (e *testEnv) do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := e.client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, string(body)
}

func (e *testEnv) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	req, _ := http.NewRequest(http.MethodGet, e.srv.URL+path, nil)
	return e.do(t, req)
}

func (e *testEnv) postForm(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	req, _ := http.NewRequest(http.MethodPost, e.srv.URL+path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(t, req)
}

func mockedCatalog(t *testing.T, opts ...mocks.Option) (*views.Catalog, *mocks.Worker) {
	t.Helper()
	w := mocks.New(append([]mocks.Option{mocks.WithNext(refuseTransport{})}, opts...)...)
	w.Start()
	c := views.NewCatalog(views.Deps{API: api.NewClient(config.DefaultAPIBase, w.Client(5*time.Second), 0)})
	return c, w
}

type refuseTransport struct{}

func (refuseTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, stderrors.New("network disabled in tests")
}

func TestRedirects(t *testing.T) {
	e := newEnv(t, Options{})

	tests := []struct {
		path string
		want string
	}{
		{"/", "/dashboards/modern"},
		{"/unknown/garbage", "/auth/404"},
		{"/auth/unknown", "/auth/404"},
	}
	for _, tt := range tests {
		resp, _ := e.get(t, tt.path)
		if resp.StatusCode != http.StatusFound {
			t.Errorf("GET %s status = %d, want 302", tt.path, resp.StatusCode)
		}
		if got := resp.Header.Get("Location"); got != tt.want {
			t.Errorf("GET %s Location = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestPage_FastViewHasNoPlaceholder(t *testing.T) {
	e := newEnv(t, Options{})

	resp, body := e.get(t, "/dashboards/modern")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	for _, want := range []string{"<title>Modern Dashboard | Admin Dashboard</title>", "layout--full", "Revenue, customers"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
	if strings.Contains(body, `class="spinner"`) {
		t.Error("fast view showed the placeholder")
	}

	var cookie bool
	for _, c := range resp.Cookies() {
		cookie = cookie || c.Name == config.DefaultCookieName
	}
	if !cookie {
		t.Error("no session cookie issued")
	}
}

func TestPage_BlankLayout(t *testing.T) {
	e := newEnv(t, Options{})
	_, body := e.get(t, "/auth/404")
	if !strings.Contains(body, "layout--blank") || strings.Contains(body, "sidebar") {
		t.Errorf("auth page not in blank layout: %s", body)
	}
}

func TestPage_SlowViewStreamsPlaceholder(t *testing.T) {
	cfg := testConfig()
	cfg.Loader.PlaceholderDelay = "20ms"
	catalog, worker := mockedCatalog(t, mocks.WithLatency(200*time.Millisecond))
	e := newEnv(t, Options{Config: cfg, Catalog: catalog, Mocks: worker})

	_, body := e.get(t, "/apps/ecommerce/detail/1")
	spinner := strings.Index(body, `class="spinner"`)
	fill := strings.Index(body, `<template id="fill-view">`)
	product := strings.Index(body, "Cute Soft Teddybear")
	if spinner < 0 || fill < 0 || product < 0 {
		t.Fatalf("spinner=%d fill=%d product=%d in %s", spinner, fill, product, body)
	}
	if !(spinner < fill && fill < product) {
		t.Errorf("frames out of order: spinner=%d fill=%d product=%d", spinner, fill, product)
	}
	if !strings.HasSuffix(strings.TrimSpace(body), "</html>") {
		t.Error("document not closed")
	}

	// The second visit is memoized.
	_, body = e.get(t, "/apps/ecommerce/detail/2")
	if strings.Contains(body, `class="spinner"`) {
		t.Error("memoized view showed the placeholder")
	}
	if !strings.Contains(body, "MountainWear Jacket") {
		t.Error("second product missing")
	}
}

func TestPage_LoadFailureAndReload(t *testing.T) {
	e := newEnv(t, Options{})

	_, body := e.get(t, "/apps/ecommerce/shop")
	if !strings.Contains(body, "Something went wrong loading this component.") {
		t.Fatalf("no error view: %s", body)
	}
	if !strings.Contains(body, views.ErrNoAPI.Error()) {
		t.Error("error view does not show the load error")
	}
	if !strings.Contains(body, `value="/apps/ecommerce/shop"`) {
		t.Error("reload control does not return to the page")
	}

	resp, _ := e.postForm(t, "/_dash/reload", url.Values{"to": {"/apps/ecommerce/shop"}})
	if resp.StatusCode != http.StatusSeeOther {
		t.Errorf("reload status = %d, want 303", resp.StatusCode)
	}
	if got := resp.Header.Get("Location"); got != "/apps/ecommerce/shop" {
		t.Errorf("reload Location = %q", got)
	}

	if e.app.Sessions().Len() != 1 {
		t.Fatalf("sessions = %d, want 1", e.app.Sessions().Len())
	}
	var gens []int
	for _, c := range e.client.Jar.Cookies(mustURL(t, e.srv.URL)) {
		if s, ok := e.app.Sessions().Get(c.Value); ok {
			gens = append(gens, s.Generation())
			if n := s.Registry().Len(); n != 0 {
				t.Errorf("registry after reload has %d loaders, want 0", n)
			}
		}
	}
	if len(gens) != 1 || gens[0] != 1 {
		t.Errorf("generations = %v, want [1]", gens)
	}
}

// flakyTransport fails its first fails requests, then passes through.
type flakyTransport struct {
	fails atomic.Int32
	next  http.RoundTripper
}

func (f *flakyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if f.fails.Add(-1) >= 0 {
		return nil, stderrors.New("connection reset by peer")
	}
	return f.next.RoundTrip(req)
}

func TestPage_ReloadRetriesFailedLoad(t *testing.T) {
	worker := mocks.New(mocks.WithNext(refuseTransport{}))
	worker.Start()
	if err := worker.WaitReady(context.Background(), time.Second); err != nil {
		t.Fatal(err)
	}
	flaky := &flakyTransport{next: worker}
	flaky.fails.Store(1)
	catalog := views.NewCatalog(views.Deps{
		API: api.NewClient(config.DefaultAPIBase, &http.Client{Transport: flaky, Timeout: 5 * time.Second}, 0),
	})
	e := newEnv(t, Options{Catalog: catalog, Mocks: worker})

	_, body := e.get(t, "/apps/ecommerce/shop")
	if !strings.Contains(body, "Something went wrong loading this component.") {
		t.Fatalf("first visit did not fail: %s", body)
	}

	// A failed loader stays failed until the session reloads.
	_, body = e.get(t, "/apps/ecommerce/shop")
	if !strings.Contains(body, "Something went wrong loading this component.") {
		t.Error("failed loader ran again without a reload")
	}

	resp, _ := e.postForm(t, "/_dash/reload", url.Values{"to": {"/apps/ecommerce/shop"}})
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("reload status = %d, want 303", resp.StatusCode)
	}

	resp, body = e.get(t, resp.Header.Get("Location"))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status after reload = %d", resp.StatusCode)
	}
	if strings.Contains(body, "Something went wrong") {
		t.Error("view still failed after reload")
	}
	if !strings.Contains(body, "Cute Soft Teddybear") {
		t.Error("products missing after reload")
	}
	if served, _ := worker.Stats(); served != 1 {
		t.Errorf("mocked requests = %d, want 1", served)
	}
}

func TestPage_PercentInRouteParam(t *testing.T) {
	catalog, worker := mockedCatalog(t)
	e := newEnv(t, Options{Catalog: catalog, Mocks: worker})

	resp, body := e.get(t, "/apps/ecommerce/detail/100%25")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d (Location %q), want 200", resp.StatusCode, resp.Header.Get("Location"))
	}
	if !strings.Contains(body, `No product with id &quot;100%&quot;.`) {
		t.Errorf("id not decoded once: %s", body)
	}

	_, body = e.get(t, "/apps/ecommerce/detail/%2534")
	if !strings.Contains(body, `No product with id &quot;%34&quot;.`) {
		t.Errorf("id decoded twice: %s", body)
	}
}

func TestReload_RejectsForeignTargets(t *testing.T) {
	e := newEnv(t, Options{})
	for _, to := range []string{"", "//evil.example", "https://evil.example/", `/\evil`} {
		resp, _ := e.postForm(t, "/_dash/reload", url.Values{"to": {to}})
		if got := resp.Header.Get("Location"); got != views.Home {
			t.Errorf("reload to %q Location = %q, want %q", to, got, views.Home)
		}
	}
}

func TestCVGenerator_FormRoundTrip(t *testing.T) {
	store := cv.NewMemoryStore()
	e := newEnv(t, Options{Store: store})

	_, body := e.get(t, "/apps/cv-generator")
	if !strings.Contains(body, "Start filling out your information to see the preview") {
		t.Error("new session does not show the empty preview")
	}

	resp, _ := e.postForm(t, "/apps/cv-generator", url.Values{
		"firstName":        {"Ada"},
		"lastName":         {"Lovelace"},
		"selectedTemplate": {"minimal"},
	})
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("save status = %d, want 303", resp.StatusCode)
	}
	if store.Len() != 1 {
		t.Errorf("store.Len() = %d, want 1", store.Len())
	}

	_, body = e.get(t, resp.Header.Get("Location"))
	for _, want := range []string{"cv--minimal", "Ada Lovelace", "Your CV has been saved."} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}

	req, _ := http.NewRequest(http.MethodGet, e.srv.URL+"/apps/cv-generator", nil)
	req.Header.Set("Accept", "application/json")
	resp, body = e.do(t, req)
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	var got cv.CV
	if err := json.Unmarshal([]byte(body), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.PersonalInfo.FullName() != "Ada Lovelace" || got.SelectedTemplate != "minimal" {
		t.Errorf("stored CV = %+v", got)
	}
}

func TestCVGenerator_RejectsComingSoonTemplate(t *testing.T) {
	e := newEnv(t, Options{})

	req, _ := http.NewRequest(http.MethodPost, e.srv.URL+"/apps/cv-generator",
		strings.NewReader(`{"personalInfo":{"firstName":"Ada"},"selectedTemplate":"creative"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, body := e.do(t, req)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", resp.StatusCode)
	}
	var out map[string]string
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out["field"] != "selectedTemplate" {
		t.Errorf("field = %q, want selectedTemplate", out["field"])
	}

	resp, body = e.postForm(t, "/apps/cv-generator", url.Values{"selectedTemplate": {"executive"}})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("form status = %d, want 422", resp.StatusCode)
	}
	if !strings.Contains(body, "Executive is not available yet") {
		t.Error("form response missing the validation notice")
	}
}

func TestCVGenerator_BadJSON(t *testing.T) {
	e := newEnv(t, Options{})
	req, _ := http.NewRequest(http.MethodPost, e.srv.URL+"/apps/cv-generator", strings.NewReader(`{`))
	req.Header.Set("Content-Type", "application/json")
	if resp, _ := e.do(t, req); resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

// corruptStore always holds an undecodable document.
type corruptStore struct{ *cv.MemoryStore }

func (*corruptStore) Load(context.Context, string) (cv.CV, error) {
	return cv.CV{}, errors.New("D302")
}

func TestCVGenerator_CorruptDocumentFallsBack(t *testing.T) {
	e := newEnv(t, Options{Store: &corruptStore{MemoryStore: cv.NewMemoryStore()}})
	resp, body := e.get(t, "/apps/cv-generator")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(body, "Start filling out your information to see the preview") {
		t.Error("corrupt document did not fall back to an empty CV")
	}
}

func TestMocksReadiness(t *testing.T) {
	cfg := testConfig()
	cfg.Mocks.ReadyTimeout = "30ms"
	worker := mocks.New(mocks.WithNext(refuseTransport{}))
	e := newEnv(t, Options{Config: cfg, Mocks: worker})

	if resp, _ := e.get(t, "/healthz"); resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("healthz before start = %d, want 503", resp.StatusCode)
	}
	if resp, _ := e.get(t, "/dashboards/modern"); resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("page before start = %d, want 503", resp.StatusCode)
	}

	worker.Start()
	if err := worker.WaitReady(context.Background(), time.Second); err != nil {
		t.Fatalf("WaitReady() error = %v", err)
	}
	if resp, body := e.get(t, "/healthz"); resp.StatusCode != http.StatusOK || body != "ok\n" {
		t.Errorf("healthz = %d %q", resp.StatusCode, body)
	}
	if resp, _ := e.get(t, "/dashboards/modern"); resp.StatusCode != http.StatusOK {
		t.Errorf("page after start = %d, want 200", resp.StatusCode)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	e := newEnv(t, Options{})
	e.get(t, "/apps/ecommerce/detail/42")

	_, body := e.get(t, "/metrics")
	for _, want := range []string{
		`admindash_http_requests_total{method="GET",route="/apps/ecommerce/detail/:id",status="200"} 1`,
		`admindash_active_sessions 1`,
		`admindash_view_loads_total{result="error",view="apps/ecommerce/detail"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %s", want)
		}
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Loader.MinDelay = "soon"
	if _, err := New(Options{Config: cfg}); err == nil {
		t.Error("New() accepted an invalid loader delay")
	}
	if _, err := New(Options{}); err == nil {
		t.Error("New() accepted a nil config")
	}
}

func TestLocalPath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/apps/chats", "/apps/chats"},
		{"/apps/chats?x=1", "/apps/chats?x=1"},
		{"", views.Home},
		{"apps", views.Home},
		{"//evil", views.Home},
		{"/\\evil", views.Home},
		{"/a\r\nSet-Cookie: x", views.Home},
	}
	for _, tt := range tests {
		if got := localPath(tt.in); got != tt.want {
			t.Errorf("localPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	return u
}

func TestAssets(t *testing.T) {
	e := newEnv(t, Options{})

	resp, body := e.get(t, "/assets/"+StyleSheet)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/css") {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(body, ".spinner") {
		t.Error("stylesheet missing spinner rules")
	}

	_, page := e.get(t, "/dashboards/modern")
	if !strings.Contains(page, `href="/assets/`+StyleSheet+`"`) {
		t.Error("page does not link the stylesheet")
	}

	if resp, _ := e.get(t, "/assets/missing.css"); resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing asset status = %d, want 404", resp.StatusCode)
	}
}

func TestAssetRelPath(t *testing.T) {
	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{"/assets/admindash.css", "admindash.css", true},
		{"/assets/css/app.css", "css/app.css", true},
		{"/assets/", "", false},
		{"/assets/../app.go", "", false},
		{"/assets//etc/passwd", "", false},
		{"/assets/a\\b.css", "", false},
		{"/assets/a/./b.css", "", false},
		{"/other/admindash.css", "", false},
	}
	for _, tt := range tests {
		got, ok := assetRelPath("/assets", tt.path)
		if got != tt.want || ok != tt.ok {
			t.Errorf("assetRelPath(%q) = %q, %v; want %q, %v", tt.path, got, ok, tt.want, tt.ok)
		}
	}
}
