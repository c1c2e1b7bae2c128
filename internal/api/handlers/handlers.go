package handlers

import (
	"github.com/labstack/echo/v4"
	"github/chapool/wallet-session/internal/api"
	"github/chapool/wallet-session/internal/api/handlers/common"
	"github/chapool/wallet-session/internal/api/handlers/wallet"
)

func AttachAllRoutes(s *api.Server) {
	// attach our routes
	s.Router.Routes = []*echo.Route{
		common.GetHealthyRoute(s),
		common.GetReadyRoute(s),
		wallet.GetEventsRoute(s),
		wallet.GetSessionRoute(s),
		wallet.PostConnectRoute(s),
		wallet.PostDisconnectRoute(s),
		wallet.PostProbeRoute(s),
	}
}
