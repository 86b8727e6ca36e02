package template

import (
	"io"
)

// TemplateRenderer renders a named field partial. *template.Engine from
// github.com/goliatone/go-template satisfies it, as does the gotemplate
// adapter.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}
