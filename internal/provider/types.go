package provider

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
)

// EIP-1193 / JSON-RPC error codes a wallet uses to reject an authorization request.
const (
	// CodeUserRejected is returned when the user declines the request in the wallet.
	CodeUserRejected = 4001
	// CodeRequestPending is returned while an identical request is still waiting in the wallet UI.
	CodeRequestPending = -32002
)

// AccountsChangedHandler receives the full account list whenever the wallet reports a change.
type AccountsChangedHandler func(accounts []string)

// Provider is the wallet capability a session talks to.
type Provider interface {
	// Name is the human readable wallet name used in user facing messages
	Name() string

	// Present reports synchronously whether the wallet is reachable in the current environment.
	// It never performs network I/O.
	Present() bool

	// RequestAccounts asks the wallet to authorize accounts and blocks until it answers.
	RequestAccounts(ctx context.Context) ([]string, error)

	// SubscribeAccountsChanged registers handler for account changes.
	// The returned function removes the registration and is safe to call more than once.
	SubscribeAccountsChanged(handler AccountsChangedHandler) (unsubscribe func())
}

// Error is a structured wallet rejection. It satisfies go-ethereum's rpc.Error interface.
type Error struct {
	Code    int
	Message string
}

func NewError(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("wallet provider error %d", e.Code)
	}
	return e.Message
}

// ErrorCode returns the numeric rejection code.
func (e *Error) ErrorCode() int {
	return e.Code
}

// Code returns the rejection code carried anywhere in err's chain. Both Error and the
// errors returned by RPCProvider carry one.
func Code(err error) (int, bool) {
	var coded rpc.Error
	if !errors.As(err, &coded) {
		return 0, false
	}
	return coded.ErrorCode(), true
}
