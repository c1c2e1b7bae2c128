//go:build wireinject

package api

import (
	"testing"

	"github.com/google/wire"
	"github/chapool/wallet-session/internal/config"
	"github/chapool/wallet-session/internal/provider"
)

// INJECTORS - https://github.com/google/wire/blob/main/docs/guide.md#injectors

// serviceSet groups the default set of providers that are required for initing a server
var serviceSet = wire.NewSet(
	newServerWithComponents,
	NewI18N,
	NewMetrics,
	NewSession,
)

// InitNewServer returns a new Server instance.
func InitNewServer(
	_ config.Server,
) (*Server, error) {
	wire.Build(serviceSet, NewProvider, NewClock)
	return new(Server), nil
}

// InitNewServerWithProvider returns a new Server instance with the given wallet provider.
// All the other components are initialized via go wire according to the configuration.
func InitNewServerWithProvider(
	_ config.Server,
	_ provider.Provider,
	t ...*testing.T,
) (*Server, error) {
	wire.Build(serviceSet, NewClock)
	return new(Server), nil
}
