package render

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formfield/pkg/field"
	rendertemplate "github.com/goliatone/go-formfield/pkg/render/template"
	"github.com/goliatone/go-formfield/pkg/render/template/gotemplate"
)

// ErrUnsupportedField is returned for field types without a template.
var ErrUnsupportedField = errors.New("render: unsupported field type")

// HTMLOption configures an HTMLRenderer.
type HTMLOption func(*htmlConfig)

type htmlConfig struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	selector         theme.ThemeSelector
	themeName        string
	themeVariant     string
	translator       Translator
	policy           *bluemonday.Policy
	sanitize         bool
	logger           *slog.Logger
}

// WithTemplatesFS supplies an alternate template bundle.
func WithTemplatesFS(files fs.FS) HTMLOption {
	return func(cfg *htmlConfig) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) HTMLOption {
	return func(cfg *htmlConfig) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template engine.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) HTMLOption {
	return func(cfg *htmlConfig) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithThemeSelector resolves template partials from a go-theme selection.
// name and variant are the defaults used when RenderOptions leave them blank.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) HTMLOption {
	return func(cfg *htmlConfig) {
		cfg.selector = selector
		cfg.themeName = name
		cfg.themeVariant = variant
	}
}

// WithTranslator localizes validation messages for RenderOptions.Locale.
func WithTranslator(t Translator) HTMLOption {
	return func(cfg *htmlConfig) {
		cfg.translator = t
	}
}

// WithSanitizer replaces the default bluemonday policy.
func WithSanitizer(policy *bluemonday.Policy) HTMLOption {
	return func(cfg *htmlConfig) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

// WithoutSanitizer returns template output as is.
func WithoutSanitizer() HTMLOption {
	return func(cfg *htmlConfig) {
		cfg.sanitize = false
	}
}

// WithHTMLLogger sets the renderer logger.
func WithHTMLLogger(logger *slog.Logger) HTMLOption {
	return func(cfg *htmlConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// HTMLRenderer renders fields through the controlFieldText and field
// templates.
type HTMLRenderer struct {
	templates    rendertemplate.TemplateRenderer
	selector     theme.ThemeSelector
	themeName    string
	themeVariant string
	translator   Translator
	policy       *bluemonday.Policy
	logger       *slog.Logger
}

var _ Renderer = (*HTMLRenderer)(nil)

// NewHTMLRenderer builds the renderer. Without a template renderer it loads
// the embedded templates with the pongo2 adapter.
func NewHTMLRenderer(options ...HTMLOption) (*HTMLRenderer, error) {
	cfg := htmlConfig{
		templateFS: TemplatesFS(),
		sanitize:   true,
		logger:     slog.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithTemplateFunc(TemplateI18nFuncs(cfg.translator, TemplateI18nConfig{})),
		)
		if err != nil {
			return nil, fmt.Errorf("render: configure template renderer: %w", err)
		}
		renderer = engine
	}

	r := &HTMLRenderer{
		templates:    renderer,
		selector:     cfg.selector,
		themeName:    cfg.themeName,
		themeVariant: cfg.themeVariant,
		translator:   cfg.translator,
		logger:       cfg.logger,
	}
	if cfg.sanitize {
		r.policy = cfg.policy
		if r.policy == nil {
			r.policy = FieldPolicy()
		}
	}
	return r, nil
}

func (r *HTMLRenderer) Name() string {
	return "html"
}

func (r *HTMLRenderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render writes the control wrapped in its container, followed by the list
// of failed validation messages unless options.SkipMessages is set.
func (r *HTMLRenderer) Render(_ context.Context, f field.Field, options RenderOptions) ([]byte, error) {
	if f == nil {
		return nil, errors.New("render: field is nil")
	}
	if r.templates == nil {
		return nil, errors.New("render: template renderer is nil")
	}
	if f.Type() != field.TypeText {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedField, f.Type())
	}

	themeName := firstNonEmpty(options.ThemeName, r.themeName)
	themeVariant := firstNonEmpty(options.ThemeVariant, r.themeVariant)
	themeCfg, err := resolveTheme(r.selector, themeName, themeVariant)
	if err != nil {
		return nil, err
	}

	data := r.viewData(f, options)
	control, err := r.templates.RenderTemplate(themeCfg.Partials[PartialText], data)
	if err != nil {
		return nil, fmt.Errorf("render: render control: %w", err)
	}
	data["control"] = strings.TrimSpace(control)
	data["theme"] = map[string]any{
		"name":    themeCfg.Theme,
		"variant": themeCfg.Variant,
		"cssVars": themeCfg.CSSVars(),
	}

	out, err := r.templates.RenderTemplate(themeCfg.Partials[PartialField], data)
	if err != nil {
		return nil, fmt.Errorf("render: render field: %w", err)
	}
	out = strings.TrimSpace(out)
	if r.policy != nil {
		out = r.policy.Sanitize(out)
	}
	r.logger.Debug("field rendered", "field", f.ID(), "type", f.Type(), "theme", themeCfg.Theme)
	return []byte(out), nil
}

func (r *HTMLRenderer) viewData(f field.Field, options RenderOptions) map[string]any {
	settings := f.Settings()
	desc := field.RenderTextInput(f.ID(), settings)
	placeholder, _ := desc.Attr("placeholder")

	var attrs []map[string]any
	for _, attr := range desc.Attrs {
		if strings.HasPrefix(attr.Name, "data-") {
			attrs = append(attrs, map[string]any{"name": attr.Name, "value": attr.Value})
		}
	}
	if m := fieldMask(f); m != nil {
		attrs = append(attrs, map[string]any{"name": "data-mask", "value": m.String()})
	}

	classes := []string{field.TextFieldClass}
	disabled := false
	if el := f.Element(); el != nil {
		classes = el.Classes()
		disabled = el.Disabled()
	}

	info := localizeInfo(f, r.translator, options.Locale)
	var messages []map[string]any
	if !options.SkipMessages {
		for _, msg := range collectMessages(info, options.Errors) {
			messages = append(messages, map[string]any{"rule": msg.Rule, "message": msg.Message})
		}
	}

	view := map[string]any{
		"id": f.ID(),
		"settings": map[string]any{
			"size":        sizeAttr(settings.Size),
			"readonly":    settings.Readonly,
			"formName":    strings.TrimSpace(settings.FormName),
			"placeholder": placeholder,
		},
		"dataAttrs":      attrs,
		"value":          f.Value(),
		"disabled":       disabled,
		"invalid":        !info.Valid() || len(normalizeErrors(options.Errors)) > 0,
		"classes":        classes,
		"type":           f.Type(),
		"containerClass": field.ContainerClass,
		"messages":       messages,
		"locale":         options.Locale,
	}
	return view
}

func sizeAttr(size int) string {
	if size <= 0 {
		return ""
	}
	return strconv.Itoa(size)
}

func normalizeErrors(messages []string) []string {
	var out []string
	for _, message := range messages {
		if trimmed := strings.TrimSpace(message); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
