package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/model"
)

// Schema types that resolve to the text field by default.
const (
	SchemaTypeString = "string"
	SchemaTypeAny    = "any"
)

// ErrUnknownFieldType is returned when no factory is registered for a name.
var ErrUnknownFieldType = errors.New("registry: unknown field type")

// Factory constructs a field of a registered type.
type Factory func(id string, schema model.FieldSchema, settings model.FieldSettings, options ...field.Option) field.Field

// Matcher decides whether a field type should handle a schema. Hints carry
// caller supplied directives such as an explicit type.
type Matcher func(schema model.FieldSchema, hints map[string]string) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry maps field type names to factories and selects a type for a
// schema. Resolution order: explicit hint, matchers (higher priority first,
// ties by registration order), then the schema type default mapping.
type Registry struct {
	mu          sync.RWMutex
	factories   map[string]Factory
	schemaTypes map[string]string
	rules       []rule
}

// New constructs a registry with the text field registered under "text" and
// set as the default for "string" and "any" schemas.
func New() *Registry {
	reg := &Registry{
		factories:   make(map[string]Factory),
		schemaTypes: make(map[string]string),
	}
	reg.registerBuiltins()
	return reg
}

// Register adds or replaces the factory for name.
func (r *Registry) Register(name string, factory Factory) error {
	name = normalize(name)
	if name == "" {
		return fmt.Errorf("registry: field type name is required")
	}
	if factory == nil {
		return fmt.Errorf("registry: factory for %q is nil", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(name string, factory Factory) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

// MapSchemaType makes name the default field type for schemaType.
func (r *Registry) MapSchemaType(schemaType, name string) {
	schemaType = normalize(schemaType)
	name = normalize(name)
	if schemaType == "" || name == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schemaTypes[schemaType] = name
}

// Match registers a matcher with the given priority.
func (r *Registry) Match(name string, priority int, matcher Matcher) {
	name = normalize(name)
	if name == "" || matcher == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = append(r.rules, rule{
		name:     name,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the field type name for a schema.
func (r *Registry) Resolve(schema model.FieldSchema, hints map[string]string) (string, bool) {
	if explicit := explicitType(hints); explicit != "" {
		return explicit, true
	}

	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	mapped := r.schemaTypes[schemaTypeKey(schema.Type)]
	r.mu.RUnlock()

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(schema, hints) {
			return entry.name, true
		}
	}
	if mapped != "" {
		return mapped, true
	}
	return "", false
}

// Create builds a field of the named type.
func (r *Registry) Create(name, id string, schema model.FieldSchema, settings model.FieldSettings, options ...field.Option) (field.Field, error) {
	key := normalize(name)
	r.mu.RLock()
	factory, ok := r.factories[key]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFieldType, name)
	}
	return factory(id, schema, settings, options...), nil
}

// Build resolves the type for schema and constructs the field.
func (r *Registry) Build(id string, schema model.FieldSchema, settings model.FieldSettings, hints map[string]string, options ...field.Option) (field.Field, error) {
	name, ok := r.Resolve(schema, hints)
	if !ok {
		return nil, fmt.Errorf("%w: no mapping for schema type %q", ErrUnknownFieldType, schema.Type)
	}
	return r.Create(name, id, schema, settings, options...)
}

// Names returns the registered field type names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a factory is registered for name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[normalize(name)]
	return ok
}

func (r *Registry) registerBuiltins() {
	r.MustRegister(field.TypeText, func(id string, schema model.FieldSchema, settings model.FieldSettings, options ...field.Option) field.Field {
		return field.NewTextField(id, schema, settings, options...)
	})
	r.MapSchemaType(SchemaTypeString, field.TypeText)
	r.MapSchemaType(SchemaTypeAny, field.TypeText)
}

func explicitType(hints map[string]string) string {
	if len(hints) == 0 {
		return ""
	}
	for _, key := range []string{"type", "widget"} {
		if value := normalize(hints[key]); value != "" {
			return value
		}
	}
	return ""
}

func schemaTypeKey(schemaType string) string {
	if key := normalize(schemaType); key != "" {
		return key
	}
	return SchemaTypeAny
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
