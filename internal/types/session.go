package types

import "time"

// SessionResponse is the wallet session as rendered for UI layers.
type SessionResponse struct {
	ID                string        `json:"id"`
	State             string        `json:"state"`
	Address           string        `json:"address,omitempty"`
	DisplayAddress    string        `json:"displayAddress,omitempty"`
	Provider          string        `json:"provider"`
	ProviderAvailable bool          `json:"providerAvailable"`
	LastError         *SessionError `json:"lastError,omitempty"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}

type SessionError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	// InstallURL is only set when the wallet is missing.
	InstallURL string `json:"installUrl,omitempty"`
	Retryable  bool   `json:"retryable"`
}

// PublicHTTPError is the body of every non-2xx API response.
type PublicHTTPError struct {
	Status int    `json:"status"`
	Type   string `json:"type"`
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
}

const (
	PublicHTTPErrorTypeGeneric           = "generic"
	PublicHTTPErrorTypeNOACCOUNTS        = "NO_ACCOUNTS"
	PublicHTTPErrorTypeCONNECTSUPERSEDED = "CONNECT_SUPERSEDED"
	PublicHTTPErrorTypeSESSIONCLOSED     = "SESSION_CLOSED"
)
