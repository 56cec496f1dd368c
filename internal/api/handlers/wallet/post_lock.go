package wallet

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/quickpay-wallet/internal/api"
	"github/chapool/quickpay-wallet/internal/util"
)

func PostLockRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.POST("/lock", postLockHandler(s))
}

func postLockHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := s.Wallet.LockWallet(c.Request().Context()); err != nil {
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, toWalletStatus(s, s.Wallet.Snapshot()))
	}
}
