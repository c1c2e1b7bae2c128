package test

import (
	"context"
	"testing"
	"time"

	"github/chapool/wallet-session/internal/api"
	"github/chapool/wallet-session/internal/api/router"
	"github/chapool/wallet-session/internal/config"
	"github/chapool/wallet-session/internal/provider"
)

// Config returns the default server configuration for tests. No wallet endpoint is dialed.
func Config() config.Server {
	cfg := config.DefaultServiceConfigFromEnv()

	cfg.Echo.Debug = false
	cfg.Logger.PrettyPrintConsole = false
	cfg.Provider.RPCURLs = nil
	cfg.Provider.RequestTimeout = 5 * time.Second

	return cfg
}

// WithTestServer returns a fully configured server backed by an in-memory wallet (see MockProvider).
func WithTestServer(t *testing.T, closure func(s *api.Server)) {
	t.Helper()

	WithTestServerConfigurable(t, Config(), closure)
}

// WithTestServerConfigurable returns a fully configured server, allowing for configuration using the provided server config.
func WithTestServerConfigurable(t *testing.T, config config.Server, closure func(s *api.Server)) {
	t.Helper()

	WithTestServerProvider(t, config, provider.NewMock(config.Provider.Name), closure)
}

// WithTestServerProvider returns a fully configured server backed by the given wallet provider.
func WithTestServerProvider(t *testing.T, config config.Server, p provider.Provider, closure func(s *api.Server)) {
	t.Helper()

	s, err := api.InitNewServerWithProvider(config, p, t)
	if err != nil {
		t.Fatalf("failed to init server: %v", err)
	}

	router.Init(s)
	s.Session.Start()

	closure(s)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if errs := s.Shutdown(ctx); len(errs) > 0 {
		t.Fatalf("failed to shutdown server: %v", errs)
	}
}

// MockProvider returns the in-memory wallet of a server created by WithTestServer.
func MockProvider(t *testing.T, s *api.Server) *provider.Mock {
	t.Helper()

	m, ok := s.Provider.(*provider.Mock)
	if !ok {
		t.Fatalf("server provider is %T, not *provider.Mock", s.Provider)
	}

	return m
}
