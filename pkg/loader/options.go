package loader

import (
	"context"
	"log/slog"
	"time"
)

const (
	// DefaultMinDelay is the minimum time before a loader becomes Ready.
	DefaultMinDelay = 300 * time.Millisecond

	// DefaultPlaceholderDelay is how long a render waits before showing the
	// placeholder.
	DefaultPlaceholderDelay = 300 * time.Millisecond

	// DefaultSlowThreshold is when a still pending render logs a warning.
	DefaultSlowThreshold = 8 * time.Second
)

// Config holds the timing knobs shared by loaders and boundaries.
type Config struct {
	// MinDelay is the floor on how quickly a loader can become Ready.
	MinDelay time.Duration

	// PlaceholderDelay is measured from the start of a render. Loads whose
	// work returns within it never show the placeholder.
	PlaceholderDelay time.Duration

	// SlowThreshold logs a warning when a render is still pending after
	// it. Zero disables the warning.
	SlowThreshold time.Duration
}

// DefaultConfig returns the reference timings.
func DefaultConfig() Config {
	return Config{
		MinDelay:         DefaultMinDelay,
		PlaceholderDelay: DefaultPlaceholderDelay,
		SlowThreshold:    DefaultSlowThreshold,
	}
}

// PerceivedLatency returns a Config whose minimum delay and placeholder
// delay are both d.
func PerceivedLatency(d time.Duration) Config {
	c := DefaultConfig()
	c.MinDelay = d
	c.PlaceholderDelay = d
	return c
}

// Option configures a Loader.
type Option func(*options)

type options struct {
	minDelay time.Duration
	logger   *slog.Logger
	observer Observer
	ctx      context.Context
}

func defaultOptions() options {
	return options{
		minDelay: DefaultMinDelay,
		logger:   slog.Default().With("component", "loader"),
		observer: NopObserver{},
		ctx:      context.Background(),
	}
}

// WithMinDelay sets the minimum delay before the loader becomes Ready.
func WithMinDelay(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.minDelay = d
		}
	}
}

// WithConfig applies the loader side of c.
func WithConfig(c Config) Option {
	return WithMinDelay(c.MinDelay)
}

// WithLogger sets the logger used for load diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithObserver sets the observer notified of load events.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// WithContext sets the base context the LoadFunc receives. It is
// independent of any render context, so a render going away does not
// cancel the load.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}
