package wallet

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github/chapool/quickpay-wallet/internal/api"
	"github/chapool/quickpay-wallet/internal/types"
	"github/chapool/quickpay-wallet/internal/util"
)

func PostCreateRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.POST("/create", postCreateHandler(s))
}

// postCreateHandler returns the new mnemonic exactly once so it can be backed up.
func postCreateHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		mnemonic, err := s.Wallet.CreateWallet(ctx)
		if err != nil {
			log.Debug().Err(err).Msg("Failed to create wallet")
			return err
		}

		return util.ValidateAndReturn(c, http.StatusCreated, &types.PostCreateWalletResponse{
			Mnemonic: swag.String(mnemonic),
			Status:   toWalletStatus(s, s.Wallet.Snapshot()),
		})
	}
}
