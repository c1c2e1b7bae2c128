package session

import (
	"time"

	"github.com/pkg/errors"
)

// State is the connection state of a wallet session.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
)

// String returns the lower case name used in logs, metrics labels and JSON.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ErrorKind classifies why the last operation failed.
type ErrorKind string

const (
	// ErrorKindProviderMissing means no wallet is available; retrying is pointless until one is installed.
	ErrorKindProviderMissing ErrorKind = "provider_missing"
	// ErrorKindProviderBusy means the wallet already has a pending request; retry after a delay.
	ErrorKindProviderBusy ErrorKind = "provider_busy"
	// ErrorKindUserRejected means the user declined; immediately retryable.
	ErrorKindUserRejected ErrorKind = "user_rejected"
	// ErrorKindUnknown covers every other failure. Message is the wallet's own text when it sent one.
	ErrorKindUnknown ErrorKind = "unknown"
)

// Retryable reports whether calling Connect again can succeed without user action outside the wallet.
func (k ErrorKind) Retryable() bool {
	return k != ErrorKindProviderMissing
}

// MessageKey maps a kind onto its i18n message id.
func (k ErrorKind) MessageKey() string {
	switch k {
	case ErrorKindProviderMissing:
		return "ProviderMissing"
	case ErrorKindProviderBusy:
		return "ProviderBusy"
	case ErrorKindUserRejected:
		return "UserRejected"
	default:
		return "ConnectionFailed"
	}
}

// ErrorInfo is the user facing description of a failed operation.
// It is immutable once created.
type ErrorInfo struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`

	cause   error
	catalog bool
}

func (e *ErrorInfo) Error() string {
	return e.Message
}

// Localized reports whether Message was taken from the message catalog for Kind,
// as opposed to text supplied by the wallet. Localized messages may be translated again.
func (e *ErrorInfo) Localized() bool {
	return e.catalog
}

// Unwrap returns the provider error the info was built from, if any.
func (e *ErrorInfo) Unwrap() error {
	return e.cause
}

// Session is a point in time snapshot of a WalletSession.
// Address is set if and only if State is StateConnected.
type Session struct {
	ID                string     `json:"id"`
	State             State      `json:"state"`
	Address           string     `json:"address,omitempty"`
	LastError         *ErrorInfo `json:"lastError,omitempty"`
	ProviderAvailable bool       `json:"providerAvailable"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// Connected reports whether an account is authorized, in which case Address is set.
func (s Session) Connected() bool {
	return s.State == StateConnected
}

var (
	// ErrNoAccounts is returned by Connect when the wallet authorized an empty account list.
	// The session is left as it was before the call.
	ErrNoAccounts = errors.New("wallet returned no accounts")

	// ErrStaleConnect is returned by Connect when a disconnect or an account revocation
	// replaced the attempt while it was waiting for the wallet. Its result is discarded.
	ErrStaleConnect = errors.New("connect attempt was superseded")

	// ErrClosed is returned by Connect when the session was closed while waiting for the wallet.
	ErrClosed = errors.New("session closed")
)
