package cv

import (
	"context"
	stderrors "errors"
	"sync"

	"github.com/vango-dev/admindash/internal/errors"
)

// ErrNotFound is matched by errors.Is when a session has no saved CV.
var ErrNotFound = errors.New("D301")

// ErrCorrupt is matched by errors.Is when a saved CV cannot be decoded.
var ErrCorrupt = errors.New("D302")

func notFound() error {
	return errors.New("D301")
}

func corrupt(err error) error {
	return errors.New("D302").Wrap(err)
}

func unavailable(backend string, err error) error {
	return errors.New("D300").WithField(backend).Wrap(err)
}

// Store persists one CV per session.
type Store interface {
	// Load returns the saved CV. Its error matches ErrNotFound when
	// nothing is saved and ErrCorrupt when the saved document is invalid.
	Load(ctx context.Context, session string) (CV, error)

	// Save overwrites the session's CV.
	Save(ctx context.Context, session string, c CV) error

	// Delete removes the session's CV. Deleting nothing is not an error.
	Delete(ctx context.Context, session string) error

	// Backend names the implementation for logs and metrics.
	Backend() string
}

// LoadOrNew loads the session's CV, falling back to an empty one when
// nothing is saved or the saved document is corrupt. The returned error is
// non-nil only for corrupt documents and store failures; the CV is usable
// either way.
func LoadOrNew(ctx context.Context, s Store, session string) (CV, error) {
	c, err := s.Load(ctx, session)
	switch {
	case err == nil:
		return c, nil
	case stderrors.Is(err, ErrNotFound):
		return New(), nil
	default:
		return New(), err
	}
}

// MemoryStore keeps CVs in process memory as encoded documents, so that
// reads never alias a caller's slices.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

// Load implements Store.
func (m *MemoryStore) Load(_ context.Context, session string) (CV, error) {
	m.mu.RLock()
	data, ok := m.docs[session]
	m.mu.RUnlock()
	if !ok {
		return CV{}, notFound()
	}
	return Unmarshal(data)
}

// Save implements Store.
func (m *MemoryStore) Save(_ context.Context, session string, c CV) error {
	data, err := Marshal(c)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.docs[session] = data
	m.mu.Unlock()
	return nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(_ context.Context, session string) error {
	m.mu.Lock()
	delete(m.docs, session)
	m.mu.Unlock()
	return nil
}

// Backend implements Store.
func (m *MemoryStore) Backend() string { return "memory" }

// Len returns the number of saved CVs.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}
