package session

import (
	"strings"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
	"github/chapool/wallet-session/internal/provider"
)

// Translator resolves an i18n message id.
type Translator interface {
	Translate(key string, data map[string]string) string
}

func (s *WalletSession) newErrorInfo(kind ErrorKind, cause error) *ErrorInfo {
	return &ErrorInfo{
		Kind:    kind,
		Message: s.translator.Translate(kind.MessageKey(), map[string]string{"Provider": s.provider.Name()}),
		cause:   cause,
		catalog: true,
	}
}

// fromWallet keeps the wallet's own message as the user facing text when it has one.
func (s *WalletSession) fromWallet(cause error, msg string) *ErrorInfo {
	info := s.newErrorInfo(ErrorKindUnknown, cause)
	if msg != "" {
		info.Message = msg
		info.catalog = false
	}
	return info
}

// classify turns a wallet rejection into an ErrorInfo as soon as it is received.
// Coded rejections follow EIP-1193; everything else is ErrorKindUnknown.
func (s *WalletSession) classify(err error) *ErrorInfo {
	var coded rpc.Error
	if !errors.As(err, &coded) {
		return s.fromWallet(err, strings.TrimSpace(err.Error()))
	}

	switch coded.ErrorCode() {
	case provider.CodeUserRejected:
		return s.newErrorInfo(ErrorKindUserRejected, err)
	case provider.CodeRequestPending:
		return s.newErrorInfo(ErrorKindProviderBusy, err)
	}

	return s.fromWallet(err, walletMessage(coded))
}

// walletMessage is the message the wallet attached to its rejection, verbatim.
func walletMessage(err rpc.Error) string {
	var pe *provider.Error
	if errors.As(err, &pe) {
		return strings.TrimSpace(pe.Message)
	}
	return strings.TrimSpace(err.Error())
}
