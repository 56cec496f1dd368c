package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// File is the flat fallback backend: a single JSON object on disk, rewritten
// atomically on every mutation.
type File struct {
	path string
	mu   sync.Mutex
}

func NewFile(path string) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errors.Wrap(err, "failed to create fallback store directory")
	}

	return &File{path: path}, nil
}

func (f *File) Get(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.read()
	if err != nil {
		return nil, err
	}

	value, ok := entries[namespaced(key)]
	if !ok {
		return nil, ErrNotFound
	}

	return value, nil
}

func (f *File) Set(_ context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.read()
	if err != nil {
		return err
	}

	entries[namespaced(key)] = value
	return f.write(entries)
}

func (f *File) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.read()
	if err != nil {
		return err
	}

	if _, ok := entries[namespaced(key)]; !ok {
		return nil
	}

	delete(entries, namespaced(key))
	return f.write(entries)
}

func (f *File) Close() error {
	return nil
}

func (f *File) read() (map[string][]byte, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string][]byte), nil
		}
		return nil, errors.Wrap(err, "failed to read fallback store")
	}

	entries := make(map[string][]byte)
	if len(data) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errors.Wrap(err, "failed to parse fallback store")
	}

	return entries, nil
}

func (f *File) write(entries map[string][]byte) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return errors.Wrap(err, "failed to encode fallback store")
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "failed to create fallback store temp file")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // gone after a successful rename

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return errors.Wrap(err, "failed to chmod fallback store temp file")
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "failed to write fallback store temp file")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "failed to sync fallback store temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "failed to close fallback store temp file")
	}

	if err := os.Rename(tmpName, f.path); err != nil {
		return errors.Wrap(err, "failed to replace fallback store")
	}

	return nil
}
