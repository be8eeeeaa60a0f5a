package loader

import (
	"context"
	"log/slog"
	"time"

	"github.com/vango-dev/admindash/pkg/render"
	"github.com/vango-dev/admindash/pkg/vdom"
	"github.com/vango-dev/admindash/pkg/view"
)

// Sink receives the frames a Boundary produces for one render.
type Sink interface {
	// Placeholder is called at most once, before Resolve.
	Placeholder(node *vdom.VNode) error

	// Resolve is called exactly once with the final view or error view,
	// unless the render is cancelled first.
	Resolve(node *vdom.VNode) error
}

// Outcome describes how a render ended.
type Outcome int

const (
	OutcomeView     Outcome = iota // resolved view rendered
	OutcomeError                   // recoverable error view rendered
	OutcomeCanceled                // render context ended first
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeView:
		return "view"
	case OutcomeError:
		return "error"
	case OutcomeCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// BoundaryOption configures a Boundary.
type BoundaryOption func(*Boundary)

// WithPlaceholder replaces the default spinner.
func WithPlaceholder(fn func() *vdom.VNode) BoundaryOption {
	return func(b *Boundary) {
		if fn != nil {
			b.placeholder = fn
		}
	}
}

// WithErrorView replaces the default recoverable error view.
func WithErrorView(fn func(err *ViewError, returnTo string) *vdom.VNode) BoundaryOption {
	return func(b *Boundary) {
		if fn != nil {
			b.errorView = fn
		}
	}
}

// WithBoundaryLogger sets the logger for render diagnostics.
func WithBoundaryLogger(l *slog.Logger) BoundaryOption {
	return func(b *Boundary) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithBoundaryObserver sets the observer notified of render events.
func WithBoundaryObserver(obs Observer) BoundaryOption {
	return func(b *Boundary) {
		if obs != nil {
			b.observer = obs
		}
	}
}

// Boundary mounts loaders for rendering. It holds no per-render state and
// is safe for concurrent use.
type Boundary struct {
	placeholderDelay time.Duration
	slowThreshold    time.Duration
	placeholder      func() *vdom.VNode
	errorView        func(err *ViewError, returnTo string) *vdom.VNode
	renderer         *render.Renderer
	logger           *slog.Logger
	observer         Observer
}

// NewBoundary creates a boundary using the render side of cfg.
func NewBoundary(cfg Config, opts ...BoundaryOption) *Boundary {
	b := &Boundary{
		placeholderDelay: cfg.PlaceholderDelay,
		slowThreshold:    cfg.SlowThreshold,
		placeholder:      Spinner,
		errorView:        ErrorView,
		renderer:         render.NewRenderer(render.RendererConfig{}),
		logger:           slog.Default().With("component", "boundary"),
		observer:         NopObserver{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Serve starts l if needed, emits the placeholder if the load outlasts the
// placeholder delay, then resolves the view or the error view into sink.
// When ctx ends first, every timer is stopped and OutcomeCanceled is
// returned with ctx's error; the load keeps running.
func (b *Boundary) Serve(ctx context.Context, l *Loader, props view.Props, sink Sink) (Outcome, error) {
	l.Start()

	// A loader that already finished resolves without touching timers.
	select {
	case <-l.Done():
		return b.resolve(l, props, sink)
	default:
	}

	placeholder := time.NewTimer(b.placeholderDelay)
	defer placeholder.Stop()
	placeholderC := placeholder.C

	var slowC <-chan time.Time
	if b.slowThreshold > 0 {
		slow := time.NewTimer(b.slowThreshold)
		defer slow.Stop()
		slowC = slow.C
	}

	for {
		select {
		case <-l.Done():
			return b.resolve(l, props, sink)

		case <-placeholderC:
			placeholderC = nil
			select {
			case <-l.Settled():
				// Work is back, only the minimum delay remains.
				continue
			default:
			}
			if err := sink.Placeholder(b.placeholder()); err != nil {
				return OutcomeCanceled, err
			}
			b.observer.PlaceholderShown(l.Name())

		case <-slowC:
			slowC = nil
			b.logger.Warn("view is taking longer than expected to load",
				"view", l.Name(), "path", props.Path, "threshold", b.slowThreshold)

		case <-ctx.Done():
			return OutcomeCanceled, ctx.Err()
		}
	}
}

// resolve renders the terminal state of l into sink.
func (b *Boundary) resolve(l *Loader, props view.Props, sink Sink) (Outcome, error) {
	def, err := l.Result()
	if err != nil {
		return OutcomeError, sink.Resolve(b.errorView(AsViewError(err), props.Path))
	}

	node, err := b.renderView(l.Name(), def, props)
	if err != nil {
		b.logger.Error("view render failed", "view", l.Name(), "path", props.Path, "error", err)
		b.observer.RenderFailed(l.Name(), err)
		return OutcomeError, sink.Resolve(b.errorView(AsViewError(err), props.Path))
	}
	return OutcomeView, sink.Resolve(node)
}

// renderView renders def to HTML up front so that panics from nested
// components surface here rather than while writing the response.
func (b *Boundary) renderView(name string, def view.Definition, props view.Props) (node *vdom.VNode, err error) {
	defer func() {
		if r := recover(); r != nil {
			cause := panicError(r)
			node, err = nil, &RenderFailure{View: name, Message: cause.Error(), Cause: cause}
		}
	}()

	html, rerr := b.renderer.RenderToString(def.Render(props))
	if rerr != nil {
		return nil, &RenderFailure{View: name, Message: rerr.Error(), Cause: rerr}
	}
	return vdom.Raw(html), nil
}

// Render is a convenience for callers without streaming: it waits for the
// loader and returns the final node, skipping any placeholder.
func (b *Boundary) Render(ctx context.Context, l *Loader, props view.Props) (*vdom.VNode, Outcome, error) {
	var rec collectSink
	outcome, err := b.Serve(ctx, l, props, &rec)
	return rec.final, outcome, err
}

type collectSink struct {
	final *vdom.VNode
}

func (c *collectSink) Placeholder(*vdom.VNode) error { return nil }

func (c *collectSink) Resolve(node *vdom.VNode) error {
	c.final = node
	return nil
}
