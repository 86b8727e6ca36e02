package render

import (
	"errors"
	"strings"

	"github.com/goliatone/go-formfield/pkg/validation"
)

// MessageKeyPrefix namespaces validation message keys in translation
// catalogues, e.g. "formfield.validation.stringTooShort".
const MessageKeyPrefix = "formfield.validation."

// ErrMissingTranslator is passed to MissingTranslationHandler when no
// translator is configured.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Translator resolves a key for a locale. Implementations may substitute
// args themselves.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

// Translate calls fn.
func (fn TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return fn(locale, key, args...)
}

// MissingTranslationHandler decides the text used when a translation is
// missing. params carries a map with the fallback under "default".
type MissingTranslationHandler func(locale, key string, params []any, err error) string

func missingTranslationDefault(_ string, key string, params []any, _ error) string {
	for _, param := range params {
		if values, ok := param.(map[string]any); ok {
			if fallback, ok := values["default"].(string); ok && strings.TrimSpace(fallback) != "" {
				return fallback
			}
		}
	}
	return key
}

// LocalizedMessages translates each template in base for locale. Keys are
// MessageKeyPrefix plus the rule name; untranslated rules keep the base
// template. The result can be handed to field.WithMessages so validation
// messages are produced in the requested language.
func LocalizedMessages(t Translator, locale string, base validation.Messages, onMissing MissingTranslationHandler) validation.Messages {
	if base == nil {
		base = validation.DefaultMessages()
	}
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	out := make(validation.Messages, len(base))
	for rule, fallback := range base {
		out[rule] = translate(locale, MessageKeyPrefix+rule, fallback, t, onMissing)
	}
	return out
}

func translate(locale, key, fallback string, t Translator, onMissing MissingTranslationHandler) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}
	if t == nil {
		return onMissing(locale, key, []any{map[string]any{"default": fallback}}, ErrMissingTranslator)
	}
	result, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	return onMissing(locale, key, []any{map[string]any{"default": fallback}}, err)
}
