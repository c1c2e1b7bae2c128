package config

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"golang.org/x/text/language"
)

type EchoServer struct {
	Debug                          bool
	ListenAddress                  string
	HideInternalServerErrorDetails bool
}

type LoggerServer struct {
	Level              zerolog.Level
	RequestLevel       zerolog.Level
	PrettyPrintConsole bool
}

// Provider configures the wallet the session connects to.
type Provider struct {
	// Name is shown in user facing messages, e.g. "MetaMask not detected."
	Name       string
	InstallURL string
	// RPCURLs are tried in order; empty means no wallet is available.
	RPCURLs        []string
	RequestTimeout time.Duration
	PollInterval   time.Duration
}

type I18n struct {
	DefaultLanguage language.Tag
}

type Metrics struct {
	Enabled bool
}

type Server struct {
	Echo     EchoServer
	Logger   LoggerServer
	Provider Provider
	I18n     I18n
	Metrics  Metrics
}

// DefaultServiceConfigFromEnv returns the server config as parsed from environment variables
// and their respective defaults defined below.
// We don't expect that ENV_VARs change while we are running our application or our tests
// (and it would be a bad thing to do anyways with parallel testing).
// Do NOT use os.Setenv / os.Unsetenv in tests utilizing DefaultServiceConfigFromEnv()!
func DefaultServiceConfigFromEnv() Server {
	// An `.env.local` file in your project root can override the currently set ENV variables.
	LoadEnvFiles()

	v := newViper()

	return Server{
		Echo: EchoServer{
			Debug:                          v.GetBool("SERVER_ECHO_DEBUG"),
			ListenAddress:                  v.GetString("SERVER_ECHO_LISTEN_ADDRESS"),
			HideInternalServerErrorDetails: v.GetBool("SERVER_ECHO_HIDE_INTERNAL_SERVER_ERROR_DETAILS"),
		},
		Logger: LoggerServer{
			Level:              parseLevel(v.GetString("SERVER_LOGGER_LEVEL"), zerolog.DebugLevel),
			RequestLevel:       parseLevel(v.GetString("SERVER_LOGGER_REQUEST_LEVEL"), zerolog.DebugLevel),
			PrettyPrintConsole: v.GetBool("SERVER_LOGGER_PRETTY_PRINT_CONSOLE"),
		},
		Provider: Provider{
			Name:           v.GetString("SERVER_PROVIDER_NAME"),
			InstallURL:     v.GetString("SERVER_PROVIDER_INSTALL_URL"),
			RPCURLs:        splitList(v.GetString("SERVER_PROVIDER_RPC_URLS")),
			RequestTimeout: v.GetDuration("SERVER_PROVIDER_REQUEST_TIMEOUT"),
			PollInterval:   v.GetDuration("SERVER_PROVIDER_POLL_INTERVAL"),
		},
		I18n: I18n{
			DefaultLanguage: language.Make(v.GetString("SERVER_I18N_DEFAULT_LANGUAGE")),
		},
		Metrics: Metrics{
			Enabled: v.GetBool("SERVER_METRICS_ENABLED"),
		},
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_ECHO_DEBUG", false)
	v.SetDefault("SERVER_ECHO_LISTEN_ADDRESS", ":8080")
	v.SetDefault("SERVER_ECHO_HIDE_INTERNAL_SERVER_ERROR_DETAILS", true)

	v.SetDefault("SERVER_LOGGER_LEVEL", zerolog.DebugLevel.String())
	v.SetDefault("SERVER_LOGGER_REQUEST_LEVEL", zerolog.DebugLevel.String())
	// pretty console output only when attached to a terminal
	v.SetDefault("SERVER_LOGGER_PRETTY_PRINT_CONSOLE", term.IsTerminal(int(os.Stdout.Fd())))

	v.SetDefault("SERVER_PROVIDER_NAME", "MetaMask")
	v.SetDefault("SERVER_PROVIDER_INSTALL_URL", "https://metamask.io/download/")
	v.SetDefault("SERVER_PROVIDER_RPC_URLS", "")
	v.SetDefault("SERVER_PROVIDER_REQUEST_TIMEOUT", 2*time.Minute)
	v.SetDefault("SERVER_PROVIDER_POLL_INTERVAL", 2*time.Second)

	v.SetDefault("SERVER_I18N_DEFAULT_LANGUAGE", "en")

	v.SetDefault("SERVER_METRICS_ENABLED", true)

	return v
}

func parseLevel(s string, fallback zerolog.Level) zerolog.Level {
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return fallback
	}
	return level
}

// splitList splits a comma separated ENV value, dropping empty entries.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	res := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			res = append(res, part)
		}
	}
	return res
}
