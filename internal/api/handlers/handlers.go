package handlers

import (
	"github.com/labstack/echo/v4"
	"github/chapool/quickpay-wallet/internal/api"
	"github/chapool/quickpay-wallet/internal/api/handlers/common"
	"github/chapool/quickpay-wallet/internal/api/handlers/wallet"
)

func AttachAllRoutes(s *api.Server) {
	// attach our routes
	s.Router.Routes = append(s.Router.Routes, []*echo.Route{
		common.GetReadyRoute(s),
		wallet.GetNetworksRoute(s),
		wallet.GetStatusRoute(s),
		wallet.PostCreateRoute(s),
		wallet.PostDisconnectRoute(s),
		wallet.PostExportRoute(s),
		wallet.PostImportRoute(s),
		wallet.PostLockRoute(s),
		wallet.PostRefreshBalanceRoute(s),
		wallet.PostSignMessageRoute(s),
		wallet.PostSwitchNetworkRoute(s),
		wallet.PostUnlockRoute(s),
	}...)
}
