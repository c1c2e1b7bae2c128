package probe

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github/chapool/wallet-session/internal/api"
	"github/chapool/wallet-session/internal/config"
	"github/chapool/wallet-session/internal/util/command"
)

type pinger interface {
	Ping(ctx context.Context) error
}

func newLiveness() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "liveness",
		Short: "Pings the configured wallet endpoints",
		Long: `Sends eth_chainId to the configured wallet endpoints.

Exits with a non zero code if none of them answers.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			verbose, err := cmd.Flags().GetBool(verboseFlag)
			if err != nil {
				return err
			}

			return runLiveness(cmd.Context(), verbose)
		},
	}

	cmd.Flags().BoolP(verboseFlag, "v", false, "Show verbose output.")

	return cmd
}

func runLiveness(ctx context.Context, verbose bool) error {
	cfg := config.DefaultServiceConfigFromEnv()

	return command.WithServer(ctx, cfg, func(ctx context.Context, s *api.Server) error {
		p, ok := s.Provider.(pinger)
		if !ok {
			return errors.Errorf("provider %s does not support ping", s.Session.ProviderName())
		}

		ctx, cancel := context.WithTimeout(ctx, cfg.Provider.RequestTimeout)
		defer cancel()

		if err := p.Ping(ctx); err != nil {
			if verbose {
				fmt.Printf("Ping %s: %v\n", s.Session.ProviderName(), err)
			}
			return errors.Wrap(err, "wallet ping failed")
		}

		if verbose {
			fmt.Printf("Ping %s: ok\n", s.Session.ProviderName())
		}

		return nil
	})
}
