package loader

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vango-dev/admindash/pkg/view"
)

// LoadFunc produces a view definition. It is called at most once per Loader.
type LoadFunc func(ctx context.Context) (view.Definition, error)

// Loader memoizes one asynchronous view load.
type Loader struct {
	name     string
	fn       LoadFunc
	minDelay time.Duration
	logger   *slog.Logger
	observer Observer
	ctx      context.Context

	mu        sync.Mutex
	state     State
	startedAt time.Time
	def       view.Definition
	err       error

	// settled closes when fn returns, done when the loader is terminal.
	settled chan struct{}
	done    chan struct{}
}

// Wrap returns an Idle loader for fn. Nothing runs until Start.
func Wrap(name string, fn LoadFunc, opts ...Option) *Loader {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Loader{
		name:     name,
		fn:       fn,
		minDelay: o.minDelay,
		logger:   o.logger,
		observer: o.observer,
		ctx:      o.ctx,
		settled:  make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Name returns the name the loader was wrapped with.
func (l *Loader) Name() string { return l.name }

// Start begins the load on first call. Later calls do nothing.
func (l *Loader) Start() {
	l.mu.Lock()
	if l.state != Idle {
		l.mu.Unlock()
		return
	}
	l.state = Pending
	l.startedAt = time.Now()
	l.mu.Unlock()

	l.observer.LoadStarted(l.name)
	go l.run()
}

// run joins the load with the minimum delay. A failed load short-circuits
// the delay.
func (l *Loader) run() {
	var def view.Definition

	g, gctx := errgroup.WithContext(l.ctx)
	g.Go(func() error {
		d, err := l.call()
		close(l.settled)
		def = d
		return err
	})
	g.Go(func() error {
		t := time.NewTimer(l.minDelay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-gctx.Done():
		}
		return nil
	})
	err := g.Wait()

	l.mu.Lock()
	elapsed := time.Since(l.startedAt)
	if err != nil {
		l.state = Failed
		l.err = err
	} else {
		l.state = Ready
		l.def = def
	}
	l.mu.Unlock()
	close(l.done)

	if err != nil {
		l.logger.Error("view load failed", "view", l.name, "elapsed", elapsed, "error", err)
	} else {
		l.logger.Debug("view loaded", "view", l.name, "elapsed", elapsed)
	}
	l.observer.LoadFinished(l.name, elapsed, err)
}

// call runs fn, converting errors and panics to *LoadFailure.
func (l *Loader) call() (def view.Definition, err error) {
	defer func() {
		if r := recover(); r != nil {
			cause := panicError(r)
			def, err = nil, &LoadFailure{View: l.name, Message: cause.Error(), Cause: cause}
		}
	}()

	def, err = l.fn(l.ctx)
	if err != nil {
		return nil, &LoadFailure{View: l.name, Message: err.Error(), Cause: err}
	}
	if def == nil {
		return nil, &LoadFailure{View: l.name, Message: ErrNoView.Error(), Cause: ErrNoView}
	}
	return def, nil
}

// State returns the current state.
func (l *Loader) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Snapshot returns the current state, start time and error.
func (l *Loader) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Snapshot{State: l.state, StartedAt: l.startedAt, Err: l.err}
}

// Settled closes once the LoadFunc has returned, possibly before the
// minimum delay has elapsed.
func (l *Loader) Settled() <-chan struct{} { return l.settled }

// Done closes once the loader is Ready or Failed.
func (l *Loader) Done() <-chan struct{} { return l.done }

// Result returns the loaded view or the failure. It is only meaningful
// after Done has closed.
func (l *Loader) Result() (view.Definition, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.def, l.err
}

// Wait starts the loader if needed and blocks until it is terminal or ctx
// is done. A cancelled ctx does not cancel the load.
func (l *Loader) Wait(ctx context.Context) (view.Definition, error) {
	l.Start()
	select {
	case <-l.done:
		return l.Result()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
