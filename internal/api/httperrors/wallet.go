package httperrors

import (
	"net/http"

	"github/chapool/wallet-session/internal/types"
)

var (
	ErrConflictNoAccounts        = NewHTTPError(http.StatusConflict, types.PublicHTTPErrorTypeNOACCOUNTS, "The wallet did not authorize any account.")
	ErrConflictConnectSuperseded = NewHTTPError(http.StatusConflict, types.PublicHTTPErrorTypeCONNECTSUPERSEDED, "The connect request was replaced by a disconnect or an account change.")
	ErrServiceUnavailableClosed  = NewHTTPError(http.StatusServiceUnavailable, types.PublicHTTPErrorTypeSESSIONCLOSED, "The wallet session is shutting down.")
)
