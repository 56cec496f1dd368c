package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github/chapool/quickpay-wallet/internal/api/httperrors"
	"github/chapool/quickpay-wallet/internal/types"
	"github/chapool/quickpay-wallet/internal/util"
)

// HTTPErrorHandler renders every error returned by a handler as a public
// error body. Wallet core errors are mapped first.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	log := util.LogFromEchoContext(c)
	err = fromWalletError(err)

	var (
		code int
		body interface{}
	)

	var httpErr *httperrors.HTTPError
	var validationErr *httperrors.HTTPValidationError
	var echoErr *echo.HTTPError

	switch {
	case errors.As(err, &validationErr):
		code, body = int(*validationErr.Code), validationErr
	case errors.As(err, &httpErr):
		code, body = int(*httpErr.Code), httpErr
	case errors.As(err, &echoErr):
		code = echoErr.Code
		body = httperrors.NewHTTPError(code, types.PublicHTTPErrorTypeGeneric, http.StatusText(code))
	default:
		code = http.StatusInternalServerError
		body = httperrors.ErrInternalServer
	}

	if code >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", code).Msg("Request failed")
	} else {
		log.Debug().Err(err).Int("status", code).Msg("Request rejected")
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, body)
	}
	if err != nil {
		log.Warn().Err(err).Msg("Failed to write error response")
	}
}
