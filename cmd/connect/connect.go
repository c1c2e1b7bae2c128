package connect

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/wallet-session/internal/api"
	"github/chapool/wallet-session/internal/config"
	"github/chapool/wallet-session/internal/session"
	"github/chapool/wallet-session/internal/util/command"
	"golang.org/x/text/language"
)

const (
	watchFlag string = "watch"
	langFlag  string = "lang"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Connects the configured wallet once",
		Long: `Requests account access from the configured wallet and prints
the resulting session as JSON.

With --watch the session keeps listening for account changes and
prints every transition until interrupted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			watch, err := cmd.Flags().GetBool(watchFlag)
			if err != nil {
				return err
			}
			lang, err := cmd.Flags().GetString(langFlag)
			if err != nil {
				return err
			}

			return runConnect(cmd.Context(), watch, lang)
		},
	}

	cmd.Flags().Bool(watchFlag, false, "Keep printing session transitions after connecting.")
	cmd.Flags().String(langFlag, "", "Language of error messages, defaults to SERVER_I18N_DEFAULT_LANGUAGE.")

	return cmd
}

func runConnect(ctx context.Context, watch bool, lang string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.DefaultServiceConfigFromEnv()

	tag := cfg.I18n.DefaultLanguage
	if lang != "" {
		parsed, err := language.Parse(lang)
		if err != nil {
			return errors.Wrapf(err, "invalid language %q", lang)
		}
		tag = parsed
	}

	return command.WithServer(ctx, cfg, func(ctx context.Context, s *api.Server) error {
		if watch {
			s.Session.Start()
			unsubscribe := s.Session.Subscribe(func(snap session.Session) {
				printSession(s, snap, tag)
			})
			defer unsubscribe()
		}

		connectCtx, cancel := context.WithTimeout(ctx, cfg.Provider.RequestTimeout)
		defer cancel()

		snap, err := s.Session.Connect(connectCtx)
		if !watch {
			printSession(s, snap, tag)
		}

		var info *session.ErrorInfo
		if err != nil && !errors.As(err, &info) {
			log.Error().Err(err).Msg("Wallet connect did not complete")
			return err
		}
		if !watch {
			return err
		}

		<-ctx.Done()
		return nil
	})
}

func printSession(s *api.Server, snap session.Session, lang language.Tag) {
	out, err := json.MarshalIndent(s.SessionResponse(snap, lang), "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal session")
		return
	}

	fmt.Println(string(out))
}
