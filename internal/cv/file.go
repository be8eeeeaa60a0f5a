package cv

import (
	"context"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileStore keeps each session's CV at <dir>/<session>/cvGeneratorData.json.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, unavailable("file", err)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(session string) (string, error) {
	if session == "" || strings.ContainsAny(session, `/\`) || session == "." || session == ".." {
		return "", unavailable("file", fs.ErrInvalid)
	}
	return filepath.Join(f.dir, session, StorageKey+".json"), nil
}

// Load implements Store.
func (f *FileStore) Load(_ context.Context, session string) (CV, error) {
	p, err := f.path(session)
	if err != nil {
		return CV{}, err
	}
	data, err := os.ReadFile(p)
	if stderrors.Is(err, fs.ErrNotExist) {
		return CV{}, notFound()
	}
	if err != nil {
		return CV{}, unavailable("file", err)
	}
	return Unmarshal(data)
}

// Save implements Store. The document is written to a temporary file and
// renamed into place.
func (f *FileStore) Save(_ context.Context, session string, c CV) error {
	p, err := f.path(session)
	if err != nil {
		return err
	}
	data, err := Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return unavailable("file", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(p), StorageKey+"-*.tmp")
	if err != nil {
		return unavailable("file", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return unavailable("file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return unavailable("file", err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		os.Remove(tmp.Name())
		return unavailable("file", err)
	}
	return nil
}

// Delete implements Store.
func (f *FileStore) Delete(_ context.Context, session string) error {
	p, err := f.path(session)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(filepath.Dir(p)); err != nil {
		return unavailable("file", err)
	}
	return nil
}

// Backend implements Store.
func (f *FileStore) Backend() string { return "file" }
