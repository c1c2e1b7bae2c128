package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/wallet-session/internal/config"
	"github/chapool/wallet-session/internal/i18n"
	"golang.org/x/text/language"
)

func TestTranslate(t *testing.T) {
	s, err := i18n.New(config.I18n{DefaultLanguage: language.English})
	require.NoError(t, err)

	assert.Equal(t, "MetaMask not detected. Please install it.",
		s.Translate("ProviderMissing", language.English, i18n.Data{"Provider": "MetaMask"}))
	assert.Equal(t, "Connection request was rejected.", s.Translate("UserRejected", language.English))
	assert.Equal(t, "连接请求已被拒绝。", s.Translate("UserRejected", language.Chinese))
}

func TestTranslateFallsBack(t *testing.T) {
	s := i18n.Default()

	assert.Equal(t, "Wallet connection failed.", s.Translate("ConnectionFailed", language.German))
	assert.Equal(t, "does.not.exist", s.Translate("does.not.exist", language.English))
}

func TestParseAcceptLanguage(t *testing.T) {
	s := i18n.Default()

	assert.Equal(t, language.Chinese, s.ParseAcceptLanguage("zh-CN,zh;q=0.9,en;q=0.8"))
	assert.Equal(t, language.English, s.ParseAcceptLanguage("de-AT"))
	assert.Equal(t, language.English, s.ParseAcceptLanguage(""))
	assert.Len(t, s.Tags(), 2)
}

func TestLocalizer(t *testing.T) {
	l := i18n.Default().For(language.English)

	assert.Equal(t, "Rabby is already processing a connection request. Please check your extension.",
		l.Translate("ProviderBusy", map[string]string{"Provider": "Rabby"}))
}
