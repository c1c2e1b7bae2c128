package api

import (
	"github/chapool/wallet-session/internal/i18n"
	"github/chapool/wallet-session/internal/session"
	"github/chapool/wallet-session/internal/types"
	"golang.org/x/text/language"
)

// SessionResponse renders a snapshot for UI layers. Messages of well known error kinds are
// translated to lang, wallet supplied messages are passed through verbatim.
func (s *Server) SessionResponse(snap session.Session, lang language.Tag) types.SessionResponse {
	res := types.SessionResponse{
		ID:                snap.ID,
		State:             snap.State.String(),
		Address:           snap.Address,
		Provider:          s.Provider.Name(),
		ProviderAvailable: snap.ProviderAvailable,
		UpdatedAt:         snap.UpdatedAt,
	}

	if snap.Connected() {
		res.DisplayAddress = session.ShortenAddress(snap.Address)
	}

	if snap.LastError == nil {
		return res
	}

	e := &types.SessionError{
		Kind:      string(snap.LastError.Kind),
		Message:   snap.LastError.Message,
		Retryable: snap.LastError.Kind.Retryable(),
	}

	if snap.LastError.Localized() {
		e.Message = s.I18n.Translate(snap.LastError.Kind.MessageKey(), lang, i18n.Data{"Provider": s.Provider.Name()})
	}

	if snap.LastError.Kind == session.ErrorKindProviderMissing {
		e.InstallURL = s.Config.Provider.InstallURL
	}

	res.LastError = e
	return res
}
