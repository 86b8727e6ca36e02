package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formfield/pkg/model"
)

// ExtensionNamespace prefixes schema extensions copied into Property.Hints,
// e.g. "x-formfield-widget: text" becomes Hints["widget"] = "text".
const ExtensionNamespace = "x-formfield"

// ErrComponentNotFound is returned when the requested component schema is
// missing from the document.
var ErrComponentNotFound = errors.New("openapi: component not found")

// ErrPropertyNotFound is returned when the component has no such property.
var ErrPropertyNotFound = errors.New("openapi: property not found")

// Property is a component property converted to a field schema.
type Property struct {
	Name   string
	Schema model.FieldSchema
	Hints  map[string]string
}

// FieldSchemaFrom converts a kin-openapi schema. minLength and maxLength of 0
// are reported as no constraint.
func FieldSchemaFrom(src *openapi3.Schema) model.FieldSchema {
	if src == nil {
		return model.FieldSchema{}
	}
	schema := model.FieldSchema{
		Type:        firstSchemaType(src.Type),
		Title:       src.Title,
		Description: src.Description,
		Pattern:     src.Pattern,
		Default:     src.Default,
	}
	if src.MinLength != 0 {
		schema.MinLength = model.IntPtr(int(src.MinLength))
	}
	if src.MaxLength != nil && *src.MaxLength != 0 {
		schema.MaxLength = model.IntPtr(int(*src.MaxLength))
	}
	return schema
}

// ParseDocument loads raw (JSON or YAML) with kin-openapi and validates it.
func ParseDocument(ctx context.Context, raw []byte) (*openapi3.T, error) {
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("openapi: validate: %w", err)
	}
	return doc, nil
}

// LoadProperties parses raw and returns the properties of
// #/components/schemas/<component>.
func LoadProperties(ctx context.Context, raw []byte, component string) (map[string]Property, error) {
	doc, err := ParseDocument(ctx, raw)
	if err != nil {
		return nil, err
	}
	return ComponentProperties(doc, component)
}

// LoadProperty parses raw and returns one property of a component.
func LoadProperty(ctx context.Context, raw []byte, component, property string) (Property, error) {
	props, err := LoadProperties(ctx, raw, component)
	if err != nil {
		return Property{}, err
	}
	prop, ok := props[property]
	if !ok {
		return Property{}, fmt.Errorf("%w: %q in %q (have %s)", ErrPropertyNotFound, property, component, strings.Join(PropertyNames(props), ", "))
	}
	return prop, nil
}

// ComponentProperties returns the properties of a component schema keyed by
// property name. Properties listed in the component's required array are
// marked Required.
func ComponentProperties(doc *openapi3.T, component string) (map[string]Property, error) {
	if doc == nil || doc.Components == nil {
		return nil, fmt.Errorf("%w: %q", ErrComponentNotFound, component)
	}
	ref, ok := doc.Components.Schemas[component]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("%w: %q", ErrComponentNotFound, component)
	}

	required := make(map[string]struct{}, len(ref.Value.Required))
	for _, name := range ref.Value.Required {
		required[name] = struct{}{}
	}

	out := make(map[string]Property, len(ref.Value.Properties))
	for name, prop := range ref.Value.Properties {
		if prop == nil || prop.Value == nil {
			continue
		}
		schema := FieldSchemaFrom(prop.Value)
		if _, ok := required[name]; ok {
			schema.Required = true
		}
		out[name] = Property{
			Name:   name,
			Schema: schema,
			Hints:  extractHints(prop.Value.Extensions),
		}
	}
	return out, nil
}

// ComponentNames lists the component schemas of doc in sorted order.
func ComponentNames(doc *openapi3.T) []string {
	if doc == nil || doc.Components == nil {
		return nil
	}
	names := make([]string, 0, len(doc.Components.Schemas))
	for name := range doc.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadFieldSchemas is LoadProperties without the hints.
func LoadFieldSchemas(ctx context.Context, raw []byte, component string) (map[string]model.FieldSchema, error) {
	props, err := LoadProperties(ctx, raw, component)
	if err != nil {
		return nil, err
	}
	out := make(map[string]model.FieldSchema, len(props))
	for name, prop := range props {
		out[name] = prop.Schema
	}
	return out, nil
}

// PropertyNames lists the keys of props in sorted order.
func PropertyNames(props map[string]Property) []string {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	switch len(values) {
	case 0:
		return ""
	case 1:
		return values[0]
	default:
		return strings.Join(values, ",")
	}
}

func extractHints(raw map[string]any) map[string]string {
	if len(raw) == 0 {
		return nil
	}
	hints := make(map[string]string)
	for key, value := range raw {
		if !strings.HasPrefix(key, ExtensionNamespace+"-") {
			continue
		}
		name := strings.TrimPrefix(key, ExtensionNamespace+"-")
		if name == "" || value == nil {
			continue
		}
		hints[name] = strings.TrimSpace(fmt.Sprint(value))
	}
	if len(hints) == 0 {
		return nil
	}
	return hints
}
