package wallet

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github/chapool/quickpay-wallet/internal/api"
	"github/chapool/quickpay-wallet/internal/api/httperrors"
	"github/chapool/quickpay-wallet/internal/types"
	"github/chapool/quickpay-wallet/internal/util"
)

func PostExportRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.POST("/export", postExportHandler(s))
}

func postExportHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body types.PostConfirmPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		if !util.FalseIfNil(body.Confirm) {
			return httperrors.ErrConfirmationRequired
		}

		mnemonic, err := s.Wallet.ExportSeedPhrase(ctx)
		if err != nil {
			return err
		}

		c.Response().Header().Set(echo.HeaderCacheControl, "no-store")

		return util.ValidateAndReturn(c, http.StatusOK, &types.PostExportSeedResponse{
			Mnemonic: swag.String(mnemonic),
		})
	}
}
