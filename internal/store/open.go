package store

import (
	"path/filepath"

	"github.com/pkg/errors"
	"github/chapool/quickpay-wallet/internal/config"
	"github/chapool/quickpay-wallet/internal/metrics"
)

// Open builds the configured badger primary and flat-file fallback under cfg.DataDir.
// If badger cannot be opened at all the file backend serves alone behind the
// same fallback decorator, so callers always get a *Fallback.
func Open(cfg config.Store, m *metrics.Service) (*Fallback, error) {
	secondary, err := NewFile(filepath.Join(cfg.DataDir, "vault.json"))
	if err != nil {
		return nil, errors.Wrap(err, "failed to open fallback store")
	}

	primary, err := OpenBadger(BadgerOptions{
		Dir:        filepath.Join(cfg.DataDir, "vault"),
		InMemory:   cfg.InMemory,
		SyncWrites: cfg.SyncWrites,
	})
	if err != nil {
		f := NewFallback(unavailable{err: err}, secondary, m)
		f.log.Warn().Err(err).Msg("Primary store unavailable, running on fallback store only")
		return f, nil
	}

	return NewFallback(primary, secondary, m), nil
}
