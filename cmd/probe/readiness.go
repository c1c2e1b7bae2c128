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

var errWalletMissing = errors.New("wallet not available")

func newReadiness() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "readiness",
		Short: "Checks whether the configured wallet is available",
		Long: `Checks whether the configured wallet is available.

Exits with a non zero code if it is not.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			verbose, err := cmd.Flags().GetBool(verboseFlag)
			if err != nil {
				return err
			}

			return runReadiness(cmd.Context(), verbose)
		},
	}

	cmd.Flags().BoolP(verboseFlag, "v", false, "Show verbose output.")

	return cmd
}

func runReadiness(ctx context.Context, verbose bool) error {
	cfg := config.DefaultServiceConfigFromEnv()

	return command.WithServer(ctx, cfg, func(_ context.Context, s *api.Server) error {
		present := s.Session.ProbeAvailability()

		if verbose {
			snap := s.Session.Snapshot()
			fmt.Printf("Provider: %s\nAvailable: %t\n", s.Session.ProviderName(), snap.ProviderAvailable)
			if snap.LastError != nil {
				fmt.Printf("Message: %s\n", snap.LastError.Message)
			}
		}

		if !present {
			return errWalletMissing
		}

		return nil
	})
}
