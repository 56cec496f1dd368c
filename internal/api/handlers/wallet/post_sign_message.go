package wallet

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github/chapool/quickpay-wallet/internal/api"
	"github/chapool/quickpay-wallet/internal/types"
	"github/chapool/quickpay-wallet/internal/util"
)

func PostSignMessageRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.POST("/sign", postSignMessageHandler(s))
}

func postSignMessageHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body types.PostSignMessagePayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		acct, err := s.Wallet.Account()
		if err != nil {
			return err
		}

		address, err := acct.GetAddress(ctx)
		if err != nil {
			return err
		}

		sig, err := acct.SignMessage(ctx, []byte(*body.Message))
		if err != nil {
			util.LogFromContext(ctx).Debug().Err(err).Msg("Failed to sign message")
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, &types.PostSignMessageResponse{
			Signature: swag.String(hexutil.Encode(sig)),
			Address:   swag.String(address),
		})
	}
}
