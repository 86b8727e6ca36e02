package render

import (
	"context"

	"github.com/goliatone/go-formfield/pkg/field"
)

// Renderer converts a field into a byte representation (HTML, JSON, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, f field.Field, options RenderOptions) ([]byte, error)
}
