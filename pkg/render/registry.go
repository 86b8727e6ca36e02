package render

import (
	"errors"
	"fmt"
	"mime"
	"sort"
	"strings"
	"sync"
)

// DefaultRenderer names the renderer used when a request asks for none.
const DefaultRenderer = "html"

// ErrUnknownRenderer is returned when no registered renderer matches.
var ErrUnknownRenderer = errors.New("render: unknown renderer")

// Registry holds the field renderers available to a generator, keyed by
// name and by media type.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Renderer
	byType map[string]Renderer
}

// NewRegistry creates a registry holding renderers.
func NewRegistry(renderers ...Renderer) (*Registry, error) {
	r := &Registry{
		byName: make(map[string]Renderer),
		byType: make(map[string]Renderer),
	}
	for _, renderer := range renderers {
		if err := r.Register(renderer); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// NewDefaultRegistry holds the HTML and JSON field renderers, both
// localising messages through t.
func NewDefaultRegistry(t Translator, options ...HTMLOption) (*Registry, error) {
	htmlRenderer, err := NewHTMLRenderer(append([]HTMLOption{WithTranslator(t)}, options...)...)
	if err != nil {
		return nil, err
	}
	return NewRegistry(htmlRenderer, NewJSONRenderer(t, "  "))
}

// Register adds a renderer under its lower-cased Name(). The first renderer
// registered for a media type answers negotiation for it.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	name := strings.ToLower(strings.TrimSpace(renderer.Name()))
	if name == "" {
		return fmt.Errorf("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	r.byName[name] = renderer
	if mediaType := baseMediaType(renderer.ContentType()); mediaType != "" {
		if _, exists := r.byType[mediaType]; !exists {
			r.byType[mediaType] = renderer
		}
	}
	return nil
}

// Lookup returns the renderer called name, or DefaultRenderer when name is
// blank.
func (r *Registry) Lookup(name string) (Renderer, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultRenderer
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %s)", ErrUnknownRenderer, name, strings.Join(r.namesLocked(), ", "))
	}
	return renderer, nil
}

// Negotiate picks the renderer for an Accept header. Media types are tried in
// the order listed; wildcards and an empty header select DefaultRenderer.
func (r *Registry) Negotiate(accept string) (Renderer, error) {
	for _, part := range strings.Split(accept, ",") {
		mediaType := baseMediaType(part)
		if mediaType == "" {
			continue
		}
		if strings.HasSuffix(mediaType, "/*") {
			break
		}
		r.mu.RLock()
		renderer, ok := r.byType[mediaType]
		r.mu.RUnlock()
		if ok {
			return renderer, nil
		}
	}
	return r.Lookup(DefaultRenderer)
}

// Names returns the registered renderer names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func baseMediaType(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(value)
	if err != nil {
		return ""
	}
	return mediaType
}
