package wallet

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/wallet-session/internal/api"
)

func PostProbeRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.POST("/probe", postProbeHandler(s))
}

func postProbeHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		s.Session.ProbeAvailability()
		return c.JSON(http.StatusOK, sessionResponse(s, c, s.Session.Snapshot()))
	}
}
