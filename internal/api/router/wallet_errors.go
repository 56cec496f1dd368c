package router

import (
	"github.com/pkg/errors"
	"github/chapool/quickpay-wallet/internal/api/httperrors"
	"github/chapool/quickpay-wallet/internal/wallet/account"
	"github/chapool/quickpay-wallet/internal/wallet/devicekey"
	"github/chapool/quickpay-wallet/internal/wallet/network"
	"github/chapool/quickpay-wallet/internal/wallet/session"
	"github/chapool/quickpay-wallet/internal/wallet/vault"
)

// fromWalletError maps wallet core errors to their public HTTP error. Errors
// it does not know are returned unchanged.
func fromWalletError(err error) error {
	var mapped *httperrors.HTTPError

	switch {
	case errors.Is(err, session.ErrInvalidSeed), errors.Is(err, vault.ErrInvalidSeed):
		mapped = httperrors.ErrBadRequestInvalidSeed
	case errors.Is(err, network.ErrUnknownNetwork):
		mapped = httperrors.ErrBadRequestUnknownNetwork
	case errors.Is(err, vault.ErrNoSeedStored):
		mapped = httperrors.ErrNotFoundNoSeedStored
	case errors.Is(err, session.ErrSessionBusy):
		mapped = httperrors.ErrConflictSessionBusy
	case errors.Is(err, session.ErrInvalidTransition), errors.Is(err, account.ErrAccountClosed):
		mapped = httperrors.ErrConflictInvalidTransition
	case errors.Is(err, session.ErrSessionMaterializationFailed):
		mapped = httperrors.ErrBadGatewayMaterialization
	case errors.Is(err, devicekey.ErrKeyCorrupted):
		mapped = httperrors.ErrInternalKeyCorrupted
	case errors.Is(err, vault.ErrVaultCorrupted):
		mapped = httperrors.ErrInternalVaultCorrupted
	default:
		return err
	}

	return mapped.Wrap(err)
}
