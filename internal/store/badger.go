package store

import (
	"context"
	"os"

	badgerdb "github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Badger is the primary backend. Every operation runs in its own badger transaction.
type Badger struct {
	db *badgerdb.DB
}

type BadgerOptions struct {
	// Dir is ignored when InMemory is set.
	Dir        string
	InMemory   bool
	SyncWrites bool
}

func OpenBadger(opts BadgerOptions) (*Badger, error) {
	var bopts badgerdb.Options
	if opts.InMemory {
		bopts = badgerdb.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(opts.Dir, 0o700); err != nil {
			return nil, errors.Wrap(err, "failed to create badger directory")
		}
		bopts = badgerdb.DefaultOptions(opts.Dir).WithSyncWrites(opts.SyncWrites)
	}

	bopts = bopts.
		WithBlockCacheSize(8 << 20).
		WithIndexCacheSize(8 << 20).
		WithLogger(badgerLogger{log.With().Str("component", "badger").Logger()})

	db, err := badgerdb.Open(bopts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open badger")
	}

	return &Badger{db: db}, nil
}

func (b *Badger) Get(_ context.Context, key string) ([]byte, error) {
	var value []byte
	err := b.db.View(func(txn *badgerdb.Txn) error {
		item, err := txn.Get([]byte(namespaced(key)))
		if err != nil {
			return err
		}

		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badgerdb.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "badger get %q", key)
	}

	return value, nil
}

func (b *Badger) Set(_ context.Context, key string, value []byte) error {
	err := b.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Set([]byte(namespaced(key)), value)
	})
	if err != nil {
		return errors.Wrapf(err, "badger set %q", key)
	}

	return nil
}

func (b *Badger) Delete(_ context.Context, key string) error {
	err := b.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Delete([]byte(namespaced(key)))
	})
	if err != nil {
		return errors.Wrapf(err, "badger delete %q", key)
	}

	return nil
}

func (b *Badger) Close() error {
	return b.db.Close()
}

// badgerLogger routes badger's own logging into zerolog, one level down so
// badger's chatty info output only shows up at debug.
type badgerLogger struct {
	log zerolog.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.log.Error().Msgf(format, args...)
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.log.Warn().Msgf(format, args...)
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.log.Debug().Msgf(format, args...)
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.log.Trace().Msgf(format, args...)
}
