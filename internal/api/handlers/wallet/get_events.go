package wallet

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/wallet-session/internal/api"
	"github/chapool/wallet-session/internal/session"
	"github/chapool/wallet-session/internal/util"
)

const eventBufferSize = 16

func GetEventsRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.GET("/events", getEventsHandler(s))
}

// getEventsHandler streams every session transition as a server-sent event, starting with
// the current snapshot. Slow readers lose the oldest pending events.
func getEventsHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		events := make(chan session.Session, eventBufferSize)
		unsubscribe := s.Session.Subscribe(func(snap session.Session) {
			for {
				select {
				case events <- snap:
					return
				default:
				}
				select {
				case <-events:
				default:
				}
			}
		})
		defer unsubscribe()

		res := c.Response()
		res.Header().Set(echo.HeaderContentType, "text/event-stream")
		res.Header().Set(echo.HeaderCacheControl, "no-cache")
		res.Header().Set(echo.HeaderConnection, "keep-alive")
		res.WriteHeader(http.StatusOK)

		if err := writeEvent(s, c, s.Session.Snapshot()); err != nil {
			return err
		}

		for {
			select {
			case <-ctx.Done():
				log.Debug().Msg("Session event stream closed by client")
				return nil
			case snap := <-events:
				if err := writeEvent(s, c, snap); err != nil {
					log.Debug().Err(err).Msg("Failed to write session event")
					return nil
				}
			}
		}
	}
}

func writeEvent(s *api.Server, c echo.Context, snap session.Session) error {
	data, err := json.Marshal(sessionResponse(s, c, snap))
	if err != nil {
		return err
	}

	res := c.Response()
	if _, err := fmt.Fprintf(res, "event: session\ndata: %s\n\n", data); err != nil {
		return err
	}
	res.Flush()

	return nil
}
