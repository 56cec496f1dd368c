package wallet

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github/chapool/quickpay-wallet/internal/api"
	"github/chapool/quickpay-wallet/internal/types"
	"github/chapool/quickpay-wallet/internal/util"
)

func PostRefreshBalanceRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.POST("/balance/refresh", postRefreshBalanceHandler(s))
}

func postRefreshBalanceHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		balance, err := s.Wallet.RefreshBalance(ctx)
		if err != nil {
			util.LogFromContext(ctx).Debug().Err(err).Msg("Failed to refresh balance")
			return err
		}

		address, err := s.Wallet.RefreshAddress(ctx)
		if err != nil {
			util.LogFromContext(ctx).Debug().Err(err).Msg("Failed to refresh address")
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, &types.PostRefreshBalanceResponse{
			Balance: swag.String(balance.String()),
			Address: swag.String(address),
		})
	}
}
