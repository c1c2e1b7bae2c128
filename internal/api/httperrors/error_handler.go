package httperrors

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github/chapool/wallet-session/internal/types"
	"github/chapool/wallet-session/internal/util"
)

type HTTPErrorHandlerConfig struct {
	HideInternalServerErrorDetails bool
}

// HTTPErrorHandlerWithConfig renders every error returned by a handler as types.PublicHTTPError.
func HTTPErrorHandlerWithConfig(config HTTPErrorHandlerConfig) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		log := util.LogFromEchoContext(c)

		var (
			httpErr *HTTPError
			echoErr *echo.HTTPError
			res     types.PublicHTTPError
		)

		switch {
		case errors.As(err, &httpErr):
			res = httpErr.PublicHTTPError
			if httpErr.Internal != nil {
				log.Debug().Err(httpErr.Internal).Msg("HTTP error with internal cause")
			}
		case errors.As(err, &echoErr):
			res = types.PublicHTTPError{
				Status: echoErr.Code,
				Type:   types.PublicHTTPErrorTypeGeneric,
				Title:  http.StatusText(echoErr.Code),
			}
			if msg, ok := echoErr.Message.(string); ok {
				res.Title = msg
			}
		default:
			log.Error().Err(err).Msg("Unhandled error in handler")
			res = types.PublicHTTPError{
				Status: http.StatusInternalServerError,
				Type:   types.PublicHTTPErrorTypeGeneric,
				Title:  http.StatusText(http.StatusInternalServerError),
			}
			if !config.HideInternalServerErrorDetails {
				res.Detail = err.Error()
			}
		}

		var sendErr error
		if c.Request().Method == http.MethodHead {
			sendErr = c.NoContent(res.Status)
		} else {
			sendErr = c.JSON(res.Status, res)
		}
		if sendErr != nil {
			log.Warn().Err(sendErr).AnErr("http_err", err).Msg("Failed to send error response")
		}
	}
}
