package wallet

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github/chapool/quickpay-wallet/internal/api"
	"github/chapool/quickpay-wallet/internal/types"
	"github/chapool/quickpay-wallet/internal/util"
)

func GetNetworksRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.GET("/networks", getNetworksHandler(s))
}

func getNetworksHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		networks := s.Networks.List()
		items := make([]*types.NetworkItem, 0, len(networks))
		for _, n := range networks {
			items = append(items, &types.NetworkItem{
				ID:               swag.String(n.ID),
				DisplayName:      swag.String(n.DisplayName),
				ChainID:          swag.Int64(n.ChainID),
				RPCURL:           n.RPCURL,
				BlockExplorer:    n.BlockExplorer,
				CurrencySymbol:   n.Currency.Symbol,
				CurrencyDecimals: int64(n.Currency.Decimals),
			})
		}

		selected := s.Wallet.Snapshot().Network
		if selected == "" {
			id, found, err := s.Vault.LoadNetwork(ctx)
			if err != nil {
				log.Debug().Err(err).Msg("Failed to load network preference")
				return err
			}
			if found {
				selected = id
			}
		}

		return util.ValidateAndReturn(c, http.StatusOK, &types.GetNetworksResponse{
			Networks: items,
			Selected: selected,
		})
	}
}
