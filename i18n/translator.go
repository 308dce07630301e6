package i18n

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. Keys are the English format strings, so a key without a
// translation for the active locale renders as English.
const (
	MsgCannotCreate  = "%s cannot be created: %s"
	MsgCannotDestroy = "%s cannot be destroyed: %s"
)

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "en"

var translations = map[language.Tag]map[string]string{
	language.German: {
		MsgCannotCreate:  "%s kann nicht erstellt werden: %s",
		MsgCannotDestroy: "%s kann nicht beendet werden: %s",
	},
}

// Renderer renders user-facing text from a message key and arguments.
type Renderer interface {
	Tr(key string, args ...any) string
}

// Translator renders catalog messages for one locale.
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

// New creates a Translator for a BCP 47 locale such as "en" or "de-DE".
func New(locale string) (*Translator, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("i18n: invalid locale %q: %w", locale, err)
	}

	cat, err := buildCatalog()
	if err != nil {
		return nil, err
	}

	return &Translator{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(cat)),
	}, nil
}

// MustNew is like New but panics on an invalid locale.
func MustNew(locale string) *Translator {
	t, err := New(locale)
	if err != nil {
		panic(err)
	}
	return t
}

// Tr renders key with args in the translator's locale.
func (t *Translator) Tr(key string, args ...any) string {
	return t.printer.Sprintf(key, args...)
}

// Locale returns the locale tag the translator was created for.
func (t *Translator) Locale() string {
	return t.tag.String()
}

func buildCatalog() (*catalog.Builder, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range translations {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("i18n: register %s message: %w", tag, err)
			}
		}
	}
	return b, nil
}

var _ Renderer = (*Translator)(nil)
