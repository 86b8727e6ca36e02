package render

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goliatone/go-formfield/pkg/dom"
	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/model"
)

// JSONRenderer emits the field state as a JSON document, for clients that
// build the input themselves.
type JSONRenderer struct {
	translator Translator
	indent     string
}

var _ Renderer = (*JSONRenderer)(nil)

// NewJSONRenderer builds a JSONRenderer. indent is passed to
// json.MarshalIndent; empty produces compact output.
func NewJSONRenderer(t Translator, indent string) *JSONRenderer {
	return &JSONRenderer{translator: t, indent: indent}
}

// FieldDocument is the payload written by JSONRenderer.
type FieldDocument struct {
	ID         string               `json:"id"`
	Type       string               `json:"type"`
	Element    ElementDocument      `json:"element"`
	Markup     string               `json:"markup"`
	Value      string               `json:"value"`
	Valid      bool                 `json:"valid"`
	Validation model.ValidationInfo `json:"validation,omitempty"`
	Messages   []Message            `json:"messages,omitempty"`
}

// ElementDocument describes the input element.
type ElementDocument struct {
	Tag     string            `json:"tag"`
	Attrs   map[string]string `json:"attrs"`
	Order   []string          `json:"order"`
	Classes []string          `json:"classes,omitempty"`
}

func (r *JSONRenderer) Name() string {
	return "json"
}

func (r *JSONRenderer) ContentType() string {
	return "application/json"
}

func (r *JSONRenderer) Render(_ context.Context, f field.Field, options RenderOptions) ([]byte, error) {
	if f == nil {
		return nil, errors.New("render: field is nil")
	}

	el := f.Element()
	if el == nil {
		desc := field.RenderTextInput(f.ID(), f.Settings())
		desc.Classes = []string{field.TextFieldClass}
		el = dom.New(desc)
	}
	markup, err := el.RenderHTML()
	if err != nil {
		return nil, fmt.Errorf("render: field %q markup: %w", f.ID(), err)
	}

	info := localizeInfo(f, r.translator, options.Locale)
	doc := FieldDocument{
		ID:         f.ID(),
		Type:       f.Type(),
		Element:    elementDocument(el.Descriptor()),
		Markup:     markup,
		Value:      f.Value(),
		Valid:      info.Valid() && len(normalizeErrors(options.Errors)) == 0,
		Validation: info,
	}
	if !options.SkipMessages {
		doc.Messages = collectMessages(info, options.Errors)
	}

	var out []byte
	if r.indent != "" {
		out, err = json.MarshalIndent(doc, "", r.indent)
	} else {
		out, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("render: encode field %q: %w", f.ID(), err)
	}
	return out, nil
}

func elementDocument(desc dom.Descriptor) ElementDocument {
	doc := ElementDocument{
		Tag:     desc.Tag,
		Attrs:   make(map[string]string, len(desc.Attrs)),
		Order:   make([]string, 0, len(desc.Attrs)),
		Classes: desc.Classes,
	}
	for _, attr := range desc.Attrs {
		if _, exists := doc.Attrs[attr.Name]; !exists {
			doc.Order = append(doc.Order, attr.Name)
		}
		doc.Attrs[attr.Name] = attr.Value
	}
	return doc
}
