package wallet

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/quickpay-wallet/internal/api"
	"github/chapool/quickpay-wallet/internal/api/httperrors"
	"github/chapool/quickpay-wallet/internal/types"
	"github/chapool/quickpay-wallet/internal/util"
)

func PostDisconnectRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.POST("/disconnect", postDisconnectHandler(s))
}

// postDisconnectHandler irreversibly deletes the stored wallet. The body must
// carry "confirm": true.
func postDisconnectHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostConfirmPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		if !util.FalseIfNil(body.Confirm) {
			return httperrors.ErrConfirmationRequired
		}

		if err := s.Wallet.DisconnectWallet(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to disconnect wallet")
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, toWalletStatus(s, s.Wallet.Snapshot()))
	}
}
