package wallet

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/quickpay-wallet/internal/api"
	"github/chapool/quickpay-wallet/internal/types"
	"github/chapool/quickpay-wallet/internal/util"
)

func PostImportRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.POST("/import", postImportHandler(s))
}

func postImportHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostImportWalletPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		if err := s.Wallet.ImportWallet(ctx, *body.Mnemonic); err != nil {
			log.Debug().Err(err).Msg("Failed to import wallet")
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, toWalletStatus(s, s.Wallet.Snapshot()))
	}
}
