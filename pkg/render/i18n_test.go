package render

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/model"
	"github.com/goliatone/go-formfield/pkg/validation"
)

type mapTranslator map[string]map[string]string

func (m mapTranslator) Translate(locale, key string, _ ...any) (string, error) {
	if msg, ok := m[locale][key]; ok {
		return msg, nil
	}
	return "", errors.New("missing")
}

var spanish = mapTranslator{
	"es": {
		MessageKeyPrefix + model.RuleStringTooShort: "Debe tener al menos {0} caracteres",
		MessageKeyPrefix + model.RuleNotOptional:    "Campo obligatorio.",
	},
}

func TestLocalizedMessages(t *testing.T) {
	msgs := LocalizedMessages(spanish, "es", nil, nil)
	if got := msgs.Format(model.RuleStringTooShort, 3); got != "Debe tener al menos 3 caracteres" {
		t.Fatalf("translated template: got %q", got)
	}
	if got := msgs.Lookup(model.RuleInvalidPattern); got != validation.DefaultMessages()[model.RuleInvalidPattern] {
		t.Fatalf("untranslated rule should keep default, got %q", got)
	}

	var seen error
	LocalizedMessages(nil, "es", nil, func(_, _ string, _ []any, err error) string {
		seen = err
		return "x"
	})
	if !errors.Is(seen, ErrMissingTranslator) {
		t.Fatalf("expected ErrMissingTranslator, got %v", seen)
	}
}

func TestLocalizedMessages_DriveFieldValidation(t *testing.T) {
	msgs := LocalizedMessages(spanish, "es", nil, nil)
	f := field.NewTextField("code", model.FieldSchema{Required: true}, model.FieldSettings{}, field.WithMessages(msgs))
	f.Setup()
	f.Render(nil)
	if f.Validate() {
		t.Fatalf("expected required failure")
	}
	if got := f.ValidationInfo()[model.RuleNotOptional].Message; got != "Campo obligatorio." {
		t.Fatalf("message: got %q", got)
	}
}

func TestTemplateI18nFuncs(t *testing.T) {
	funcs := TemplateI18nFuncs(spanish, TemplateI18nConfig{})
	translate := funcs["translate"].(func(any, string, ...any) string)
	current := funcs["current_locale"].(func(any) string)

	key := MessageKeyPrefix + model.RuleNotOptional
	if got := translate(map[string]any{"locale": "es"}, key); got != "Campo obligatorio." {
		t.Fatalf("translate via map: got %q", got)
	}
	if got := translate(struct{ Locale string }{Locale: "es"}, key); got != "Campo obligatorio." {
		t.Fatalf("translate via struct: got %q", got)
	}
	if got := translate("fr", key, map[string]any{"default": "Requis"}); got != "Requis" {
		t.Fatalf("missing translation should use default, got %q", got)
	}
	if got := translate("fr", key); got != key {
		t.Fatalf("missing translation without default should return key, got %q", got)
	}
	if got := current(&struct{ Locale string }{Locale: "es"}); got != "es" {
		t.Fatalf("current_locale: got %q", got)
	}
}

func TestJSONRenderer_LocalizesFailedRules(t *testing.T) {
	f := renderedField(t, model.FieldSchema{MinLength: model.IntPtr(10)}, model.FieldSettings{}, "hola")
	f.Validate()

	out, err := NewJSONRenderer(spanish, "").Render(context.Background(), f, RenderOptions{Locale: "es"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var doc FieldDocument
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.Valid {
		t.Fatalf("expected invalid document")
	}
	if len(doc.Messages) != 1 || doc.Messages[0].Message != "Debe tener al menos 10 caracteres" {
		t.Fatalf("unexpected messages: %+v", doc.Messages)
	}
	if f.ValidationInfo()[model.RuleStringTooShort].Message == doc.Messages[0].Message {
		t.Fatalf("field validation info must not be mutated by rendering")
	}
	if doc.Element.Tag != "input" || doc.Element.Attrs["value"] != "hola" {
		t.Fatalf("unexpected element: %+v", doc.Element)
	}
	if doc.Element.Order[0] != "type" || doc.Element.Order[1] != "id" {
		t.Fatalf("attribute order lost: %v", doc.Element.Order)
	}
}

func TestJSONRenderer_MarkupAndMaskMessage(t *testing.T) {
	f := renderedField(t, model.FieldSchema{}, model.FieldSettings{Mask: true, MaskString: "aaa-999"}, "AB")
	if f.Validate() {
		t.Fatalf("expected incomplete mask failure")
	}
	translator := mapTranslator{"es": {MessageKeyPrefix + model.RuleIncompleteMask: "Formato esperado {0}"}}

	out, err := NewJSONRenderer(translator, "").Render(context.Background(), f, RenderOptions{Locale: "es"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var doc FieldDocument
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(doc.Messages) != 1 || doc.Messages[0].Message != "Formato esperado ___-___" {
		t.Fatalf("unexpected messages: %+v", doc.Messages)
	}
	for _, want := range []string{`<input type="text" id="title"`, `placeholder="___-___"`, `data-mask="aaa-999"`, `value="AB"`, `class="formfield-textfield"`} {
		if !strings.Contains(doc.Markup, want) {
			t.Fatalf("expected %s in markup %q", want, doc.Markup)
		}
	}
}

func TestJSONRenderer_UnrenderedFieldMarkup(t *testing.T) {
	f := field.NewTextField("draft", model.FieldSchema{}, model.FieldSettings{Size: 12})

	out, err := NewJSONRenderer(nil, "").Render(context.Background(), f, RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var doc FieldDocument
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.Markup != `<input type="text" id="draft" size="12" class="formfield-textfield"/>` {
		t.Fatalf("unexpected markup %q", doc.Markup)
	}
}
