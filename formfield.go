// Package formfield renders and validates schema-driven text fields.
//
// The quickest path is NewTextField + Validate + RenderHTML. Generate wires
// the whole pipeline: OpenAPI property, settings file, field registry,
// validation and a named renderer.
package formfield

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formfield/pkg/config"
	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/model"
	"github.com/goliatone/go-formfield/pkg/openapi"
	"github.com/goliatone/go-formfield/pkg/registry"
	"github.com/goliatone/go-formfield/pkg/render"
)

// RenderOptions aliases render.RenderOptions.
type RenderOptions = render.RenderOptions

// NewTextField builds a text field and runs Setup and Render so it is ready
// for SetValue and Validate.
func NewTextField(id string, schema model.FieldSchema, settings model.FieldSettings, options ...field.Option) *field.TextField {
	f := field.NewTextField(id, schema, settings, options...)
	f.Setup()
	f.Render(nil)
	return f
}

// Validate checks value against schema and settings without keeping a field
// around.
func Validate(value string, schema model.FieldSchema, settings model.FieldSettings, options ...field.Option) (bool, model.ValidationInfo) {
	f := NewTextField("", schema, settings, options...)
	f.SetValue(value, true)
	valid := f.Validate()
	return valid, f.ValidationInfo()
}

// RenderHTML renders f with the default HTML renderer.
func RenderHTML(ctx context.Context, f field.Field, options RenderOptions, htmlOptions ...render.HTMLOption) ([]byte, error) {
	r, err := render.NewHTMLRenderer(htmlOptions...)
	if err != nil {
		return nil, err
	}
	return r.Render(ctx, f, options)
}

// Request describes one Generate call.
type Request struct {
	// Source or Document provide the OpenAPI document; Document wins.
	Source   openapi.Source
	Document []byte

	Component string
	Property  string

	// Value, when set, is written to the field before validation.
	Value *string
	// Validate runs validation even when Value is nil.
	Validate bool

	// Renderer names the output renderer. When blank, Accept is negotiated
	// and render.DefaultRenderer is the fallback.
	Renderer string
	Accept   string
	Render   RenderOptions
}

// Result is what Generate produced.
type Result struct {
	Field       field.Field
	Valid       bool
	Output      []byte
	ContentType string
}

// Option configures Generate.
type Option func(*generator)

type generator struct {
	fields        *registry.Registry
	renderers     *render.Registry
	settings      *config.Store
	loaderOptions []openapi.LoaderOption
	htmlOptions   []render.HTMLOption
	fieldOptions  []field.Option
	translator    render.Translator
	logger        *slog.Logger
}

// WithRegistry replaces the field registry.
func WithRegistry(r *registry.Registry) Option {
	return func(g *generator) {
		if r != nil {
			g.fields = r
		}
	}
}

// WithRenderers replaces the renderer registry.
func WithRenderers(r *render.Registry) Option {
	return func(g *generator) {
		if r != nil {
			g.renderers = r
		}
	}
}

// WithSettings supplies per-field settings, looked up by
// "<component>.<property>" and then by property name.
func WithSettings(store *config.Store) Option {
	return func(g *generator) {
		g.settings = store
	}
}

// WithLoaderOptions configures how Request.Source is fetched.
func WithLoaderOptions(options ...openapi.LoaderOption) Option {
	return func(g *generator) {
		g.loaderOptions = append(g.loaderOptions, options...)
	}
}

// WithThemeSelector passes a go-theme selector to the HTML renderer.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(g *generator) {
		g.htmlOptions = append(g.htmlOptions, render.WithThemeSelector(selector, name, variant))
	}
}

// WithHTMLOptions forwards options to the default HTML renderer.
func WithHTMLOptions(options ...render.HTMLOption) Option {
	return func(g *generator) {
		g.htmlOptions = append(g.htmlOptions, options...)
	}
}

// WithTranslator localizes validation messages for Request.Render.Locale.
func WithTranslator(t render.Translator) Option {
	return func(g *generator) {
		g.translator = t
	}
}

// WithFieldOptions forwards options to the created field.
func WithFieldOptions(options ...field.Option) Option {
	return func(g *generator) {
		g.fieldOptions = append(g.fieldOptions, options...)
	}
}

// WithLogger sets the logger used by Generate and the created field.
func WithLogger(logger *slog.Logger) Option {
	return func(g *generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// Generate loads the requested property, builds its field through the
// registry, optionally sets and validates a value and renders it.
func Generate(ctx context.Context, req Request, options ...Option) (Result, error) {
	g := &generator{
		fields: registry.New(),
		logger: slog.Default(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(g)
		}
	}

	raw := req.Document
	if len(raw) == 0 {
		if req.Source == nil {
			return Result{}, errors.New("formfield: document or source is required")
		}
		data, err := openapi.Load(ctx, req.Source, g.loaderOptions...)
		if err != nil {
			return Result{}, err
		}
		raw = data
	}

	prop, err := openapi.LoadProperty(ctx, raw, req.Component, req.Property)
	if err != nil {
		return Result{}, err
	}

	settings, hints := g.lookupSettings(req.Component, req.Property, prop.Hints)
	fieldOptions := append([]field.Option{field.WithLogger(g.logger)}, g.fieldOptions...)
	if g.translator != nil && req.Render.Locale != "" {
		fieldOptions = append(fieldOptions, field.WithMessages(render.LocalizedMessages(g.translator, req.Render.Locale, nil, nil)))
	}

	f, err := g.fields.Build(req.Property, prop.Schema, settings, hints, fieldOptions...)
	if err != nil {
		return Result{}, err
	}
	f.Setup()
	f.Render(nil)

	result := Result{Field: f, Valid: true}
	if req.Value != nil {
		f.SetValue(*req.Value, false)
	}
	if req.Value != nil || req.Validate {
		result.Valid = f.Validate()
	}
	g.logger.Debug("field generated", "component", req.Component, "property", req.Property, "type", f.Type(), "valid", result.Valid)

	renderers := g.renderers
	if renderers == nil {
		renderers, err = render.NewDefaultRegistry(g.translator, g.htmlOptions...)
		if err != nil {
			return Result{}, err
		}
	}
	var r render.Renderer
	if strings.TrimSpace(req.Renderer) == "" && req.Accept != "" {
		r, err = renderers.Negotiate(req.Accept)
	} else {
		r, err = renderers.Lookup(req.Renderer)
	}
	if err != nil {
		return Result{}, err
	}
	out, err := r.Render(ctx, f, req.Render)
	if err != nil {
		return Result{}, err
	}
	result.Output = out
	result.ContentType = r.ContentType()
	return result, nil
}

func (g *generator) lookupSettings(component, property string, schemaHints map[string]string) (model.FieldSettings, map[string]string) {
	hints := make(map[string]string, len(schemaHints))
	for k, v := range schemaHints {
		hints[k] = v
	}
	if g.settings == nil {
		return model.FieldSettings{}, hints
	}
	cfg, ok := g.settings.Field(component + "." + property)
	if !ok {
		cfg, ok = g.settings.Field(property)
	}
	if !ok {
		return model.FieldSettings{}, hints
	}
	for k, v := range cfg.Hints {
		hints[k] = v
	}
	return cfg.Settings, hints
}
