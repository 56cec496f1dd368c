package wallet

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/quickpay-wallet/internal/api"
	"github/chapool/quickpay-wallet/internal/util"
)

func GetStatusRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.GET("/status", getStatusHandler(s))
}

func getStatusHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		return util.ValidateAndReturn(c, http.StatusOK, toWalletStatus(s, s.Wallet.Snapshot()))
	}
}
