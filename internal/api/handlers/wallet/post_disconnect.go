package wallet

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/wallet-session/internal/api"
)

func PostDisconnectRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.POST("/disconnect", postDisconnectHandler(s))
}

func postDisconnectHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, sessionResponse(s, c, s.Session.Disconnect()))
	}
}
