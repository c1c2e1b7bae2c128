package wallet

import (
	"github.com/labstack/echo/v4"
	"github/chapool/wallet-session/internal/api"
	"github/chapool/wallet-session/internal/session"
	"github/chapool/wallet-session/internal/types"
)

func sessionResponse(s *api.Server, c echo.Context, snap session.Session) types.SessionResponse {
	lang := s.I18n.ParseAcceptLanguage(c.Request().Header.Get("Accept-Language"))
	return s.SessionResponse(snap, lang)
}
