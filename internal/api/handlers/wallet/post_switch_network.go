package wallet

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/quickpay-wallet/internal/api"
	"github/chapool/quickpay-wallet/internal/types"
	"github/chapool/quickpay-wallet/internal/util"
)

func PostSwitchNetworkRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.POST("/network", postSwitchNetworkHandler(s))
}

func postSwitchNetworkHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostSwitchNetworkPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		if err := s.Wallet.SwitchNetwork(ctx, *body.Network); err != nil {
			log.Debug().Err(err).Str("network", *body.Network).Msg("Failed to switch network")
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, toWalletStatus(s, s.Wallet.Snapshot()))
	}
}
