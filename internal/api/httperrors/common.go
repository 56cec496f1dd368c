package httperrors

import (
	"net/http"

	"github/chapool/quickpay-wallet/internal/types"
)

var (
	ErrBadRequest           = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, http.StatusText(http.StatusBadRequest))
	ErrNotFound             = NewHTTPError(http.StatusNotFound, types.PublicHTTPErrorTypeGeneric, http.StatusText(http.StatusNotFound))
	ErrInternalServer       = NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, http.StatusText(http.StatusInternalServerError))
	ErrConfirmationRequired = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeCONFIRMATIONREQUIRED, "This operation requires explicit confirmation.")
)
