package common

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github/chapool/wallet-session/internal/api"
	"github/chapool/wallet-session/internal/util"
)

type pinger interface {
	Ping(ctx context.Context) error
}

func GetHealthyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/healthy", getHealthyHandler(s))
}

// Health check
// Returns a plain text summary of the wallet provider. A missing wallet is a valid state
// of the session and does not fail the check, an unreachable configured endpoint does.
func getHealthyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !s.Ready() {
			return c.String(521, "Not ready.")
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), s.Config.Provider.RequestTimeout)
		defer cancel()

		var str strings.Builder
		fmt.Fprintf(&str, "Provider: %s\n", s.Provider.Name())

		present := s.Session.ProbeAvailability()
		fmt.Fprintf(&str, "Available: %t\n", present)

		if p, ok := s.Provider.(pinger); ok && present {
			if err := p.Ping(ctx); err != nil {
				util.LogFromEchoContext(c).Warn().Err(err).Msg("Wallet provider ping failed")
				fmt.Fprintf(&str, "Ping: %v\n", err)
				return c.String(521, str.String())
			}
			str.WriteString("Ping: ok\n")
		}

		return c.String(http.StatusOK, str.String())
	}
}
