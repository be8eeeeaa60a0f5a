package mocks

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/vango-dev/admindash/internal/api"
	"github.com/vango-dev/admindash/internal/errors"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubTransport records bypassed requests.
type stubTransport struct {
	calls []string
}

func (s *stubTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	s.calls = append(s.calls, req.URL.String())
	return &http.Response{
		StatusCode: http.StatusTeapot,
		Body:       io.NopCloser(strings.NewReader("network")),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}

func startedWorker(t *testing.T, opts ...Option) (*Worker, *stubTransport) {
	t.Helper()
	next := &stubTransport{}
	w := New(append([]Option{WithNext(next), WithLogger(quietLogger()), WithHost("api.test")}, opts...)...)
	w.Start()
	if err := w.WaitReady(context.Background(), time.Second); err != nil {
		t.Fatalf("WaitReady() error = %v", err)
	}
	return w, next
}

func TestWorker_ServesFixtures(t *testing.T) {
	w, next := startedWorker(t)
	c := api.NewClient("http://api.test", w.Client(time.Second), 0)
	ctx := context.Background()

	products, err := c.Products(ctx)
	if err != nil {
		t.Fatalf("Products() error = %v", err)
	}
	if len(products) != 4 {
		t.Errorf("len(products) = %d, want 4", len(products))
	}

	p, err := c.Product(ctx, 3)
	if err != nil {
		t.Fatalf("Product(3) error = %v", err)
	}
	if p.Title != "Smart Watch" {
		t.Errorf("Product(3).Title = %q", p.Title)
	}

	inv, err := c.Invoice(ctx, 101)
	if err != nil {
		t.Fatalf("Invoice(101) error = %v", err)
	}
	if got := inv.Total(); got != 390 {
		t.Errorf("Invoice(101).Total() = %v, want 390", got)
	}

	invoices, err := c.Invoices(ctx)
	if err != nil || len(invoices) != 3 {
		t.Errorf("Invoices() = %d, %v", len(invoices), err)
	}

	if served, bypassed := w.Stats(); served != 4 || bypassed != 0 {
		t.Errorf("Stats() = %d, %d; want 4, 0", served, bypassed)
	}
	if len(next.calls) != 0 {
		t.Errorf("bypassed calls = %v", next.calls)
	}
}

func TestWorker_NotFoundAndBadID(t *testing.T) {
	w, _ := startedWorker(t)
	c := api.NewClient("http://api.test", w.Client(time.Second), 0)

	if _, err := c.Product(context.Background(), 999); !stderrors.Is(err, api.ErrNotFound) {
		t.Errorf("Product(999) error = %v, want ErrNotFound", err)
	}

	resp, err := w.Client(time.Second).Get("http://api.test/api/invoices/abc")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestWorker_CategoryFilter(t *testing.T) {
	w, _ := startedWorker(t)
	resp, err := w.Client(time.Second).Get("http://api.test/api/products?category=toys")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Teddybear") || strings.Contains(string(body), "Jacket") {
		t.Errorf("filtered body = %s", body)
	}
}

func TestWorker_BypassesUnhandled(t *testing.T) {
	w, next := startedWorker(t)
	client := w.Client(time.Second)

	for _, url := range []string{
		"http://api.test/api/customers",      // no such route
		"http://elsewhere.test/api/products", // other host
	} {
		resp, err := client.Get(url)
		if err != nil {
			t.Fatalf("Get(%s) error = %v", url, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusTeapot {
			t.Errorf("Get(%s) status = %d, want bypass", url, resp.StatusCode)
		}
	}

	req, _ := http.NewRequest(http.MethodPost, "http://api.test/api/products", nil)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if len(next.calls) != 3 {
		t.Errorf("bypassed calls = %v, want 3", next.calls)
	}
	if _, bypassed := w.Stats(); bypassed != 3 {
		t.Errorf("bypassed = %d, want 3", bypassed)
	}
}

func TestWorker_BypassesBeforeStart(t *testing.T) {
	next := &stubTransport{}
	w := New(WithNext(next), WithLogger(quietLogger()))

	resp, err := w.Client(time.Second).Get("http://api.test/api/products")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if len(next.calls) != 1 {
		t.Errorf("request before Start was not bypassed")
	}
}

func TestWorker_WaitReadyTimeout(t *testing.T) {
	w := New(WithLogger(quietLogger()))

	err := w.WaitReady(context.Background(), 10*time.Millisecond)
	if errors.CodeOf(err) != "D501" {
		t.Fatalf("WaitReady() error = %v, want D501", err)
	}
	if !stderrors.Is(err, context.DeadlineExceeded) {
		t.Error("D501 does not wrap context.DeadlineExceeded")
	}
}

func TestWorker_StartIsIdempotent(t *testing.T) {
	w := New(WithLogger(quietLogger()))
	w.Start()
	w.Start()
	select {
	case <-w.Ready():
	case <-time.After(time.Second):
		t.Fatal("worker never became ready")
	}
}

func TestWorker_Latency(t *testing.T) {
	w, _ := startedWorker(t, WithLatency(50*time.Millisecond))
	c := api.NewClient("http://api.test", w.Client(time.Second), 0)

	start := time.Now()
	if _, err := c.Products(context.Background()); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("elapsed = %v, want >= 50ms", elapsed)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Products(ctx); !stderrors.Is(err, context.Canceled) {
		t.Errorf("canceled request error = %v", err)
	}
}
