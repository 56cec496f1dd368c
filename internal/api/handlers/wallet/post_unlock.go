package wallet

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/quickpay-wallet/internal/api"
	"github/chapool/quickpay-wallet/internal/util"
)

func PostUnlockRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.POST("/unlock", postUnlockHandler(s))
}

func postUnlockHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		if err := s.Wallet.UnlockWallet(ctx); err != nil {
			util.LogFromContext(ctx).Debug().Err(err).Msg("Failed to unlock wallet")
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, toWalletStatus(s, s.Wallet.Snapshot()))
	}
}
