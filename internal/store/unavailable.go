package store

import (
	"context"

	"github.com/pkg/errors"
)

// unavailable stands in for a primary backend that failed to open.
type unavailable struct {
	err error
}

func (u unavailable) Get(context.Context, string) ([]byte, error) {
	return nil, errors.Wrap(u.err, "primary store unavailable")
}

func (u unavailable) Set(context.Context, string, []byte) error {
	return errors.Wrap(u.err, "primary store unavailable")
}

func (u unavailable) Delete(context.Context, string) error {
	return errors.Wrap(u.err, "primary store unavailable")
}
