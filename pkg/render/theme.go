package render

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Partial keys looked up in a theme manifest's templates.
const (
	PartialText  = "forms.text"
	PartialField = "forms.field"
)

// ThemeConfig is the resolved theme data handed to templates.
type ThemeConfig struct {
	Theme    string
	Variant  string
	Partials map[string]string
	Tokens   map[string]string
}

func defaultThemePartials() map[string]string {
	return map[string]string{
		PartialText:  templateControlPath,
		PartialField: templateFieldPath,
	}
}

// resolveTheme asks selector for name/variant and merges the manifest's
// templates over the built-in partials. Variant templates and tokens win over
// the base manifest. A nil selector yields the defaults.
func resolveTheme(selector theme.ThemeSelector, name, variant string) (*ThemeConfig, error) {
	cfg := &ThemeConfig{
		Theme:    name,
		Variant:  variant,
		Partials: defaultThemePartials(),
		Tokens:   map[string]string{},
	}
	if selector == nil {
		return cfg, nil
	}

	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("render: select theme %q: %w", name, err)
	}
	if selection == nil {
		return cfg, nil
	}
	cfg.Theme = selection.Theme
	cfg.Variant = selection.Variant

	manifest := selection.Manifest
	if manifest == nil {
		return cfg, nil
	}
	mergeNonEmpty(cfg.Partials, manifest.Templates)
	mergeNonEmpty(cfg.Tokens, manifest.Tokens)
	if v, ok := manifest.Variants[selection.Variant]; ok {
		mergeNonEmpty(cfg.Partials, v.Templates)
		mergeNonEmpty(cfg.Tokens, v.Tokens)
	}
	return cfg, nil
}

func mergeNonEmpty(dst, src map[string]string) {
	for key, value := range src {
		if strings.TrimSpace(value) == "" {
			continue
		}
		dst[key] = value
	}
}

// CSSVars converts theme tokens into CSS custom properties ("brand" becomes
// "--brand").
func (c *ThemeConfig) CSSVars() map[string]string {
	if c == nil || len(c.Tokens) == 0 {
		return nil
	}
	out := make(map[string]string, len(c.Tokens))
	for key, value := range c.Tokens {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if !strings.HasPrefix(key, "--") {
			key = "--" + key
		}
		out[key] = value
	}
	return out
}
