package loader

import (
	"sort"
	"sync"
)

// Registry hands out one Loader per key. Wrapping a key again returns the
// existing loader and ignores the new LoadFunc, so repeated renders never
// restart a load. Loaders are never evicted; drop the whole Registry to
// start over.
type Registry struct {
	mu      sync.Mutex
	loaders map[string]*Loader
	opts    []Option
}

// NewRegistry creates an empty registry whose loaders use opts.
func NewRegistry(opts ...Option) *Registry {
	return &Registry{
		loaders: make(map[string]*Loader),
		opts:    opts,
	}
}

// Wrap returns the loader for key, creating it from fn on first use.
func (r *Registry) Wrap(key string, fn LoadFunc) *Loader {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.loaders[key]; ok {
		return l
	}
	l := Wrap(key, fn, r.opts...)
	r.loaders[key] = l
	return l
}

// Get returns the loader for key if it has been wrapped.
func (r *Registry) Get(key string) (*Loader, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.loaders[key]
	return l, ok
}

// Len returns the number of loaders.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.loaders)
}

// States returns a snapshot of every loader keyed by name.
func (r *Registry) States() map[string]State {
	r.mu.Lock()
	loaders := make([]*Loader, 0, len(r.loaders))
	for _, l := range r.loaders {
		loaders = append(loaders, l)
	}
	r.mu.Unlock()

	out := make(map[string]State, len(loaders))
	for _, l := range loaders {
		out[l.Name()] = l.State()
	}
	return out
}

// Keys returns the wrapped keys in sorted order.
func (r *Registry) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([]string, 0, len(r.loaders))
	for k := range r.loaders {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
