package i18n

import (
	"embed"
	"path"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github/chapool/wallet-session/internal/config"
	"golang.org/x/text/language"
)

//go:embed messages/*.toml
var messageFiles embed.FS

// Data is the template data passed into a message.
type Data map[string]string

// Service resolves user facing messages from the embedded message bundle.
type Service struct {
	bundle      *i18n.Bundle
	matcher     language.Matcher
	defaultLang language.Tag
}

func New(cfg config.I18n) (*Service, error) {
	defaultLang := cfg.DefaultLanguage
	if defaultLang == language.Und {
		defaultLang = language.English
	}

	bundle := i18n.NewBundle(defaultLang)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := messageFiles.ReadDir("messages")
	if err != nil {
		return nil, errors.Wrap(err, "failed to read message files")
	}

	for _, entry := range entries {
		name := path.Join("messages", entry.Name())

		buf, err := messageFiles.ReadFile(name)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read message file %s", name)
		}

		if _, err := bundle.ParseMessageFileBytes(buf, name); err != nil {
			return nil, errors.Wrapf(err, "failed to parse message file %s", name)
		}
	}

	return &Service{
		bundle:      bundle,
		matcher:     language.NewMatcher(bundle.LanguageTags()),
		defaultLang: defaultLang,
	}, nil
}

// Default returns a Service for English. It panics if the embedded messages are broken.
func Default() *Service {
	s, err := New(config.I18n{DefaultLanguage: language.English})
	if err != nil {
		panic(err)
	}
	return s
}

// Translate resolves key for lang. Unknown keys are returned unchanged.
func (s *Service) Translate(key string, lang language.Tag, data ...Data) string {
	localizer := i18n.NewLocalizer(s.bundle, lang.String(), s.defaultLang.String())

	cfg := &i18n.LocalizeConfig{MessageID: key}
	if len(data) > 0 {
		cfg.TemplateData = data[0]
	}

	msg, err := localizer.Localize(cfg)
	if err != nil {
		log.Debug().Err(err).Str("key", key).Str("lang", lang.String()).Msg("Failed to localize message")
		return key
	}

	return msg
}

// ParseAcceptLanguage matches an Accept-Language header against the bundled languages.
func (s *Service) ParseAcceptLanguage(header string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return s.defaultLang
	}

	_, idx, _ := s.matcher.Match(tags...)
	return s.bundle.LanguageTags()[idx]
}

func (s *Service) Tags() []language.Tag {
	return s.bundle.LanguageTags()
}

// For binds the service to a single language.
func (s *Service) For(lang language.Tag) *Localizer {
	return &Localizer{service: s, lang: lang}
}

// Localizer is a Service bound to one language.
type Localizer struct {
	service *Service
	lang    language.Tag
}

func (l *Localizer) Translate(key string, data map[string]string) string {
	return l.service.Translate(key, l.lang, data)
}
