package config_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/wallet-session/internal/config"
	"golang.org/x/text/language"
)

func TestPrintServiceEnv(t *testing.T) {
	config := config.DefaultServiceConfigFromEnv()
	_, err := json.MarshalIndent(config, "", "  ")

	if err != nil {
		t.Fatal(err)
	}
}

func TestProviderConfigFromEnv(t *testing.T) {
	t.Setenv("SERVER_PROVIDER_NAME", "Rabby")
	t.Setenv("SERVER_PROVIDER_RPC_URLS", "http://127.0.0.1:8545, ,ws://127.0.0.1:8546")
	t.Setenv("SERVER_PROVIDER_REQUEST_TIMEOUT", "30s")
	t.Setenv("SERVER_LOGGER_LEVEL", "warn")
	t.Setenv("SERVER_I18N_DEFAULT_LANGUAGE", "zh")

	cfg := config.DefaultServiceConfigFromEnv()

	assert.Equal(t, "Rabby", cfg.Provider.Name)
	assert.Equal(t, []string{"http://127.0.0.1:8545", "ws://127.0.0.1:8546"}, cfg.Provider.RPCURLs)
	assert.Equal(t, 30*time.Second, cfg.Provider.RequestTimeout)
	assert.Equal(t, zerolog.WarnLevel, cfg.Logger.Level)
	assert.Equal(t, language.Chinese, cfg.I18n.DefaultLanguage)
}

func TestProviderConfigDefaults(t *testing.T) {
	t.Setenv("SERVER_PROVIDER_RPC_URLS", "")

	cfg := config.DefaultServiceConfigFromEnv()

	require.Empty(t, cfg.Provider.RPCURLs)
	assert.Equal(t, "https://metamask.io/download/", cfg.Provider.InstallURL)
	assert.Equal(t, 2*time.Second, cfg.Provider.PollInterval)
}
