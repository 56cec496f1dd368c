// Package store provides the durable key-value layer under the secret vault: a
// transactional primary backend composed with a flat-file fallback backend.
package store

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
)

// KeyPrefix namespaces every key written by any backend.
const KeyPrefix = "wallet_vault/"

// ErrNotFound is returned by Get when no entry exists for a key.
var ErrNotFound = errors.New("store: key not found")

// Store is a string-keyed byte store. Delete of an absent key is not an error.
// Set must not retain value after it returns; callers zero their buffers.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Lookup reads key and reports absence as found=false instead of an error.
func Lookup(ctx context.Context, s Store, key string) ([]byte, bool, error) {
	value, err := s.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}

	return value, true, nil
}

// Error is returned when an operation failed on both the primary and the
// fallback backend.
type Error struct {
	Op        string
	Key       string
	Primary   error
	Secondary error
}

func (e *Error) Error() string {
	return fmt.Sprintf("store %s %q failed on both backends: primary: %v; fallback: %v", e.Op, e.Key, e.Primary, e.Secondary)
}

func (e *Error) Unwrap() []error {
	return []error{e.Primary, e.Secondary}
}

func namespaced(key string) string {
	return KeyPrefix + key
}

const probeKey = "__probe__"

// Check verifies that s accepts a write, a read and a delete.
func Check(ctx context.Context, s Store) error {
	want := []byte("ok")
	if err := s.Set(ctx, probeKey, want); err != nil {
		return errors.Wrap(err, "failed to write probe key")
	}

	got, err := s.Get(ctx, probeKey)
	if err != nil {
		return errors.Wrap(err, "failed to read probe key")
	}
	if string(got) != string(want) {
		return errors.New("probe key read back mismatch")
	}

	if err := s.Delete(ctx, probeKey); err != nil {
		return errors.Wrap(err, "failed to delete probe key")
	}

	return nil
}
