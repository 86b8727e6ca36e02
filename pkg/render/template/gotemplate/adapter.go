package gotemplate

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/flosch/pongo2/v6"
	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-formfield/pkg/render/template"
)

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	baseDir string
	files   fs.FS
	funcs   map[string]any
}

// WithBaseDir loads partials from a directory on disk. It is searched before
// the filesystem given to WithFS.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads partials from files.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.files = files
	}
}

// WithTemplateFunc adds helpers. pongo2 filter functions become filters,
// other funcs become globals callable from partials.
func WithTemplateFunc(funcs map[string]any) Option {
	return func(cfg *config) {
		if len(funcs) == 0 {
			return
		}
		if cfg.funcs == nil {
			cfg.funcs = make(map[string]any, len(funcs))
		}
		for name, fn := range funcs {
			if name = strings.TrimSpace(name); name != "" && fn != nil {
				cfg.funcs[name] = fn
			}
		}
	}
}

// Engine renders field partials on a go-template engine with the field
// filters installed and surrounding whitespace trimmed from the output.
type Engine struct {
	renderer *gotemplatepkg.Engine
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New constructs an Engine. Either a base dir or an fs.FS is required.
func New(options ...Option) (*Engine, error) {
	cfg := config{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.baseDir == "" && cfg.files == nil {
		return nil, errors.New("gotemplate: need to provide either base dir or fs.FS")
	}

	opts := []gotemplatepkg.Option{gotemplatepkg.WithTemplateFunc(FieldFilters())}
	if cfg.baseDir != "" {
		opts = append(opts, gotemplatepkg.WithBaseDir(cfg.baseDir))
	}
	if cfg.files != nil {
		opts = append(opts, gotemplatepkg.WithFS(cfg.files))
	}
	if len(cfg.funcs) > 0 {
		opts = append(opts, gotemplatepkg.WithTemplateFunc(cfg.funcs))
	}

	renderer, err := gotemplatepkg.NewRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: configure engine: %w", err)
	}
	renderer.RegisterPostHook(trimOutput)
	return &Engine{renderer: renderer}, nil
}

// RenderTemplate renders the partial at name. The .tpl extension is appended
// when missing.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.renderer == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("gotemplate: template name is required")
	}
	rendered, err := e.renderer.RenderTemplate(name, data, out...)
	if err != nil {
		return "", fmt.Errorf("gotemplate: render %q: %w", name, err)
	}
	return rendered, nil
}

func trimOutput(ctx *gotemplatepkg.HookContext) (string, error) {
	return strings.TrimSpace(ctx.Output), nil
}

// FieldFilters returns the filters field partials rely on. classlist joins
// class names, dropping blanks and duplicates.
func FieldFilters() map[string]any {
	return map[string]any{
		"classlist": pongo2.FilterFunction(filterClassList),
	}
}

func filterClassList(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	seen := make(map[string]struct{})
	var classes []string
	add := func(raw string) {
		for _, class := range strings.Fields(raw) {
			if _, ok := seen[class]; ok {
				continue
			}
			seen[class] = struct{}{}
			classes = append(classes, class)
		}
	}
	if in.CanSlice() && !in.IsString() {
		// Index unwraps interface elements, so []any from decoded view data
		// yields the underlying strings.
		for i := 0; i < in.Len(); i++ {
			add(in.Index(i).String())
		}
	} else if !in.IsNil() {
		add(in.String())
	}
	return pongo2.AsValue(strings.Join(classes, " ")), nil
}
