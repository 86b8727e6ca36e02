package render

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

const (
	templateControlPath = "templates/controlFieldText.tpl"
	templateFieldPath   = "templates/field.tpl"
)

// TemplatesFS exposes the built-in templates so callers can layer their own
// bundle on top of them.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
