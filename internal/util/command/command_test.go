package command_test

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/wallet-session/internal/api"
	"github/chapool/wallet-session/internal/test"
	"github/chapool/wallet-session/internal/util/command"
)

func TestWithServer(t *testing.T) {
	ctx := testContext(t)

	var testError = errors.New("test error")

	cfg := test.Config()
	resultErr := command.WithServer(ctx, cfg, func(ctx context.Context, s *api.Server) error {
		require.NotNil(t, s.Session)
		require.NotNil(t, s.Provider)

		// without endpoints the wallet is reported as missing
		assert.False(t, s.Session.ProbeAvailability())
		assert.Equal(t, "MetaMask", s.Session.ProviderName())

		return testError
	})

	assert.Equal(t, testError, resultErr)
}

func TestNewSubcommandGroup(t *testing.T) {
	sub := &cobra.Command{Use: "child", Run: func(*cobra.Command, []string) {}}

	cmd := command.NewSubcommandGroup("group", sub)
	assert.Equal(t, "group", cmd.Use)
	require.Len(t, cmd.Commands(), 1)
	assert.Equal(t, "child", cmd.Commands()[0].Use)
}
