package api

import (
	"context"
	"testing"
	"time"

	"github.com/dropbox/godropbox/time2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github/chapool/wallet-session/internal/config"
	"github/chapool/wallet-session/internal/i18n"
	"github/chapool/wallet-session/internal/metrics"
	"github/chapool/wallet-session/internal/provider"
	"github/chapool/wallet-session/internal/session"
)

// PROVIDERS - define here only providers that for various reasons (e.g. cyclic dependency) can't live in their corresponding packages
// or for wrapping providers that only accept sub-configs to prevent the requirement for defining providers for sub-configs.
// https://github.com/google/wire/blob/main/docs/guide.md#defining-providers

// NewProvider dials the configured wallet endpoints. Without endpoints the provider reports itself as absent.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewProvider(cfg config.Server) (provider.Provider, error) {
	if len(cfg.Provider.RPCURLs) == 0 {
		log.Warn().Str("provider", cfg.Provider.Name).Msg("No wallet RPC endpoint configured, wallet will be reported as missing")
	}

	p, err := provider.NewRPCProvider(context.Background(), cfg.Provider.Name, cfg.Provider.RPCURLs, cfg.Provider.PollInterval)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create wallet provider")
	}

	return p, nil
}

func NewI18N(cfg config.Server) (*i18n.Service, error) {
	return i18n.New(cfg.I18n)
}

func NewMetrics(cfg config.Server) (*metrics.Service, error) {
	return metrics.New(cfg)
}

// NewClock returns the real clock, or a mock clock fixed at 2024-01-01 when called from a test.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewClock(t ...*testing.T) time2.Clock {
	if len(t) > 0 && t[0] != nil {
		return time2.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	}

	return time2.DefaultClock
}

func NewSession(
	cfg config.Server,
	p provider.Provider,
	i18nService *i18n.Service,
	metricsService *metrics.Service,
	clock time2.Clock,
) *session.WalletSession {
	return session.New(p,
		session.WithTranslator(i18nService.For(cfg.I18n.DefaultLanguage)),
		session.WithRecorder(metricsService),
		session.WithClock(clock),
	)
}
