package store

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github/chapool/quickpay-wallet/internal/metrics"
)

// tombstonePrefix marks keys deleted while the primary was failing.
const tombstonePrefix = "__tombstone__/"

// errPrimaryMiss stands in for a primary ErrNotFound that must not read as absence.
var errPrimaryMiss = errors.New("no primary entry")

// Fallback composes a primary and a secondary backend. Any primary failure is
// logged, counted and retried against the secondary backend, so no operation
// fails purely because the primary is degraded.
//
// The secondary only ever holds entries the primary could not take, which
// makes them authoritative:
//   - Set during a primary outage writes the value to the secondary; Get
//     returns it ahead of any older primary value.
//   - Delete during a primary outage removes the secondary value and leaves
//     a tombstone; Get reports the key absent even if the primary still has it.
//   - Get moves outage entries into the primary once it accepts writes again.
//   - A successful primary Set or Delete drops the secondary entry and
//     tombstone, and fails if it cannot, since a leftover would shadow it.
type Fallback struct {
	Primary   Store
	Secondary Store

	mu      sync.Mutex
	metrics *metrics.Service
	log     zerolog.Logger
}

func NewFallback(primary Store, secondary Store, m *metrics.Service) *Fallback {
	return &Fallback{
		Primary:   primary,
		Secondary: secondary,
		metrics:   m,
		log:       log.With().Str("component", "store").Logger(),
	}
}

func (f *Fallback) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	value, serr := f.Secondary.Get(ctx, key)
	if serr == nil {
		f.promote(ctx, key, value)
		return value, nil
	}

	if errors.Is(serr, ErrNotFound) {
		_, serr = f.Secondary.Get(ctx, tombstone(key))
		if serr == nil {
			f.settleDelete(ctx, key)
			return nil, ErrNotFound
		}
	}

	if !errors.Is(serr, ErrNotFound) {
		return f.getPrimaryOnly(ctx, key, serr)
	}

	value, err := f.Primary.Get(ctx, key)
	switch {
	case err == nil:
		return value, nil
	case errors.Is(err, ErrNotFound):
		return nil, ErrNotFound
	}

	// The secondary holds nothing for key, so it answers the read.
	f.degraded("get", key, err)

	return nil, ErrNotFound
}

// getPrimaryOnly serves a read the secondary could not answer. Only a primary
// value is trusted; absence cannot be confirmed and fails the read.
func (f *Fallback) getPrimaryOnly(ctx context.Context, key string, serr error) ([]byte, error) {
	f.log.Warn().Err(serr).Str("key", key).Msg("Fallback store read failed")

	value, err := f.Primary.Get(ctx, key)
	if err == nil {
		return value, nil
	}
	if errors.Is(err, ErrNotFound) {
		err = errPrimaryMiss
	}

	return nil, &Error{Op: "get", Key: key, Primary: err, Secondary: serr}
}

func (f *Fallback) Set(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	err := f.Primary.Set(ctx, key, value)
	if err == nil {
		return f.dropSecondary(ctx, key)
	}

	f.degraded("set", key, err)

	if serr := f.Secondary.Set(ctx, key, value); serr != nil {
		return &Error{Op: "set", Key: key, Primary: err, Secondary: serr}
	}

	// A value shadows a tombstone in Get, so a leftover one is harmless.
	if derr := f.Secondary.Delete(ctx, tombstone(key)); derr != nil {
		f.log.Debug().Err(derr).Str("key", key).Msg("Failed to drop tombstone")
	}

	return nil
}

func (f *Fallback) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	err := f.Primary.Delete(ctx, key)
	if err == nil {
		return f.dropSecondary(ctx, key)
	}

	f.degraded("delete", key, err)

	if serr := f.Secondary.Delete(ctx, key); serr != nil {
		return &Error{Op: "delete", Key: key, Primary: err, Secondary: serr}
	}
	if serr := f.Secondary.Set(ctx, tombstone(key), []byte{1}); serr != nil {
		return &Error{Op: "delete", Key: key, Primary: err, Secondary: serr}
	}

	return nil
}

// Close closes both backends that implement Close.
func (f *Fallback) Close() error {
	var firstErr error
	for _, s := range []Store{f.Primary, f.Secondary} {
		c, ok := s.(interface{ Close() error })
		if !ok {
			continue
		}
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

// dropSecondary removes the secondary value and tombstone of key after the
// primary took a write.
func (f *Fallback) dropSecondary(ctx context.Context, key string) error {
	if err := f.Secondary.Delete(ctx, key); err != nil {
		return errors.Wrapf(err, "failed to drop fallback entry %q", key)
	}
	if err := f.Secondary.Delete(ctx, tombstone(key)); err != nil {
		return errors.Wrapf(err, "failed to drop tombstone %q", key)
	}

	return nil
}

// promote copies an outage write into the primary. Failures leave the entry
// in the secondary for the next read.
func (f *Fallback) promote(ctx context.Context, key string, value []byte) {
	if err := f.Primary.Set(ctx, key, value); err != nil {
		f.log.Debug().Err(err).Str("key", key).Msg("Primary not writable yet, keeping fallback entry")
		return
	}
	if err := f.Secondary.Delete(ctx, key); err != nil {
		f.log.Debug().Err(err).Str("key", key).Msg("Failed to drop promoted fallback entry")
		return
	}

	f.log.Info().Str("key", key).Msg("Moved fallback entry into primary store")
}

// settleDelete applies an outage delete to the primary.
func (f *Fallback) settleDelete(ctx context.Context, key string) {
	if err := f.Primary.Delete(ctx, key); err != nil {
		f.log.Debug().Err(err).Str("key", key).Msg("Primary not writable yet, keeping tombstone")
		return
	}
	if err := f.Secondary.Delete(ctx, tombstone(key)); err != nil {
		f.log.Debug().Err(err).Str("key", key).Msg("Failed to drop settled tombstone")
		return
	}

	f.log.Info().Str("key", key).Msg("Applied fallback delete to primary store")
}

func (f *Fallback) degraded(op string, key string, err error) {
	f.log.Warn().Err(err).Str("op", op).Str("key", key).Msg("Primary store failed, using fallback store")
	f.metrics.StoreFallback(op)
}

func tombstone(key string) string {
	return tombstonePrefix + key
}
