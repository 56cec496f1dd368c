package common

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/quickpay-wallet/internal/api"
	"github/chapool/quickpay-wallet/internal/store"
	"github/chapool/quickpay-wallet/internal/util"
)

const readinessStatusCode = 521

func GetReadyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/ready", getReadyHandler(s))
}

// Readiness check
// This endpoint returns 200 when the server is initialized and the store
// accepts writes on at least one backend.
func getReadyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		if !s.Ready() {
			util.LogFromContext(ctx).Warn().Msg("Readiness check failed, server is not fully initialized")
			return c.String(readinessStatusCode, "Not ready.")
		}

		if err := store.Check(ctx, s.Store); err != nil {
			util.LogFromContext(ctx).Warn().Err(err).Msg("Readiness check failed, store is not writable")
			return c.String(readinessStatusCode, "Not ready.")
		}

		return c.String(http.StatusOK, "Ready.")
	}
}
