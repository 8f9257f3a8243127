// Package i18n renders the labels of statuses and enums in the shop's languages.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var locales embed.FS

type Translator struct {
	bundle      *i18n.Bundle
	defaultLang string
}

// New loads the embedded locales. defaultLang is used when a caller gives no
// language or one that has no messages.
func New(defaultLang string) (*Translator, error) {
	tag, err := language.Parse(defaultLang)
	if err != nil {
		return nil, fmt.Errorf("parse default language %q: %w", defaultLang, err)
	}

	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	for _, file := range []string{"locales/active.en.json", "locales/active.es.json"} {
		if _, err := bundle.LoadMessageFileFS(locales, file); err != nil {
			return nil, fmt.Errorf("load %s: %w", file, err)
		}
	}
	return &Translator{bundle: bundle, defaultLang: tag.String()}, nil
}

// T translates messageID for the given Accept-Language style preferences.
// Unknown ids come back unchanged.
func (t *Translator) T(lang, messageID string, data map[string]any) string {
	loc := i18n.NewLocalizer(t.bundle, lang, t.defaultLang)
	msg, err := loc.Localize(&i18n.LocalizeConfig{MessageID: messageID, TemplateData: data})
	if err != nil {
		return messageID
	}
	return msg
}

func (t *Translator) Label(lang, prefix, value string) string {
	return t.T(lang, prefix+"."+value, nil)
}
