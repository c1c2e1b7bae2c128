package wallet

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/wallet-session/internal/api"
)

func GetSessionRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.GET("/session", getSessionHandler(s))
}

func getSessionHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, sessionResponse(s, c, s.Session.Snapshot()))
	}
}
