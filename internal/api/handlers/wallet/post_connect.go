package wallet

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github/chapool/wallet-session/internal/api"
	"github/chapool/wallet-session/internal/api/httperrors"
	"github/chapool/wallet-session/internal/session"
	"github/chapool/wallet-session/internal/util"
)

func PostConnectRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.POST("/connect", postConnectHandler(s))
}

// Rejections by the wallet are part of the session and answered with 200, the client reads
// them from lastError. Only results that did not change the session are HTTP errors.
func postConnectHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), s.Config.Provider.RequestTimeout)
		defer cancel()

		log := util.LogFromContext(ctx)

		snap, err := s.Session.Connect(ctx)
		if err != nil {
			var info *session.ErrorInfo
			switch {
			case errors.As(err, &info):
				log.Debug().Str("kind", string(info.Kind)).Msg("Wallet connect rejected")
			case errors.Is(err, session.ErrNoAccounts):
				return httperrors.ErrConflictNoAccounts
			case errors.Is(err, session.ErrStaleConnect):
				return httperrors.ErrConflictConnectSuperseded
			case errors.Is(err, session.ErrClosed):
				return httperrors.ErrServiceUnavailableClosed
			default:
				log.Debug().Err(err).Msg("Failed to connect wallet")
				return err
			}
		}

		return c.JSON(http.StatusOK, sessionResponse(s, c, snap))
	}
}
