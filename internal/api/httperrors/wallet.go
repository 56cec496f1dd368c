package httperrors

import (
	"net/http"

	"github/chapool/quickpay-wallet/internal/types"
)

var (
	ErrBadRequestInvalidSeed     = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeINVALIDSEED, "The seed phrase is invalid.")
	ErrBadRequestUnknownNetwork  = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeUNKNOWNNETWORK, "The network is unknown.")
	ErrNotFoundNoSeedStored      = NewHTTPError(http.StatusNotFound, types.PublicHTTPErrorTypeNOSEEDSTORED, "No wallet is stored.")
	ErrConflictSessionBusy       = NewHTTPError(http.StatusConflict, types.PublicHTTPErrorTypeSESSIONBUSY, "Another wallet operation is in progress.")
	ErrConflictInvalidTransition = NewHTTPError(http.StatusConflict, types.PublicHTTPErrorTypeINVALIDTRANSITION, "The operation is not allowed in the current wallet state.")
	ErrBadGatewayMaterialization = NewHTTPError(http.StatusBadGateway, types.PublicHTTPErrorTypeSESSIONMATERIALIZATIONFAILED, "The wallet session could not be established.")
	ErrInternalKeyCorrupted      = NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeKEYCORRUPTED, "The device key is corrupted. Disconnect the wallet to reset.")
	ErrInternalVaultCorrupted    = NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeVAULTCORRUPTED, "The stored wallet cannot be decrypted. Disconnect the wallet to reset.")
)
