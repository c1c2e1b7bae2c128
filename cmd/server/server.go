package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/wallet-session/internal/api"
	"github/chapool/wallet-session/internal/api/router"
	"github/chapool/wallet-session/internal/config"
	"github/chapool/wallet-session/internal/util/command"
)

func New() *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Starts the server",
		Long: `Starts the wallet session API server.

The session listens for account changes of the configured wallet
for as long as the server is running.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(cmd.Context())
		},
	}
}

func runServer(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.DefaultServiceConfigFromEnv()

	return command.WithServer(ctx, cfg, func(ctx context.Context, s *api.Server) error {
		router.Init(s)
		s.Session.Start()

		errs := make(chan error, 1)
		go func() {
			errs <- s.Start()
		}()

		log.Info().Str("address", cfg.Echo.ListenAddress).Str("provider", cfg.Provider.Name).Msg("Server started")

		select {
		case <-ctx.Done():
			log.Info().Msg("Received shutdown signal")
			return nil
		case err := <-errs:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			log.Error().Err(err).Msg("Failed to start server")
			return err
		}
	})
}
