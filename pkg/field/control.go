package field

import (
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/goliatone/go-formfield/pkg/dom"
	"github.com/goliatone/go-formfield/pkg/model"
	"github.com/goliatone/go-formfield/pkg/validation"
)

// ContainerClass marks containers created by the field itself.
const ContainerClass = "formfield-container"

var idCounter atomic.Uint64

func nextID() string {
	return fmt.Sprintf("formfield-%d", idCounter.Add(1))
}

// ControlField is the base every control composes. It owns the container,
// the bound control element and the value mirror, and implements the base
// validation (the notOptional rule).
type ControlField struct {
	id       string
	schema   model.FieldSchema
	settings model.FieldSettings

	container *dom.Element
	control   *dom.Element

	value      string
	listeners  []ChangeListener
	validation model.ValidationInfo
	messages   validation.Messages
	logger     *slog.Logger
}

// NewControlField constructs the base. An empty id is replaced with a
// generated one. Settings are copied so later mutation by the caller has no
// effect.
func NewControlField(id string, schema model.FieldSchema, settings model.FieldSettings, options ...Option) *ControlField {
	cfg := config{
		logger:   slog.Default(),
		messages: validation.DefaultMessages(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	id = strings.TrimSpace(id)
	if id == "" {
		id = nextID()
	}

	return &ControlField{
		id:        id,
		schema:    schema,
		settings:  settings.Clone(),
		container: cfg.container,
		listeners: append([]ChangeListener(nil), cfg.listeners...),
		messages:  cfg.messages,
		logger:    cfg.logger.With("field", id),
	}
}

// ID returns the field identifier, also used as the control's id attribute.
func (c *ControlField) ID() string {
	return c.id
}

// Schema returns the schema.
func (c *ControlField) Schema() model.FieldSchema {
	return c.schema
}

// Settings returns a copy of the effective settings.
func (c *ControlField) Settings() model.FieldSettings {
	return c.settings.Clone()
}

// Logger returns the field scoped logger.
func (c *ControlField) Logger() *slog.Logger {
	return c.logger
}

// Messages returns the effective message catalogue.
func (c *ControlField) Messages() validation.Messages {
	return c.messages
}

// Setup applies base defaults: per-field message overrides and a sanity
// check of the schema pattern.
func (c *ControlField) Setup() {
	c.messages = c.messages.With(c.settings.Messages)
	if c.schema.Pattern != "" {
		if _, err := validation.CompilePattern(c.schema.Pattern); err != nil {
			c.logger.Warn("schema pattern ignored", "pattern", c.schema.Pattern, "error", err)
		}
	}
}

// MutateSettings lets composing controls apply their own defaults during
// Setup.
func (c *ControlField) MutateSettings(fn func(*model.FieldSettings)) {
	if fn != nil {
		fn(&c.settings)
	}
}

// Container returns the container, creating a detached one when none was
// configured.
func (c *ControlField) Container() *dom.Element {
	if c.container == nil {
		c.container = dom.New(dom.Descriptor{Tag: "div", Classes: []string{ContainerClass}})
	}
	return c.container
}

// Inject binds el as the control element and appends it to the container,
// replacing any previously injected control.
func (c *ControlField) Inject(el *dom.Element) {
	if el == nil {
		return
	}
	if c.control != nil && c.control != el {
		c.control.Remove()
	}
	c.control = el
	c.Container().AppendChild(el)
}

// Element returns the bound control element, nil before rendering.
func (c *ControlField) Element() *dom.Element {
	return c.control
}

// Value returns the mirrored value.
func (c *ControlField) Value() string {
	return c.value
}

// SetValue records value and, unless stopUpdateTrigger is set, notifies
// listeners when it changed.
func (c *ControlField) SetValue(value string, stopUpdateTrigger bool) {
	previous := c.value
	c.value = value
	if stopUpdateTrigger || previous == value {
		return
	}
	for _, listener := range c.listeners {
		listener(previous, value)
	}
}

// OnChange registers a change listener.
func (c *ControlField) OnChange(fn ChangeListener) {
	if fn != nil {
		c.listeners = append(c.listeners, fn)
	}
}

// Required reports whether an empty value is a validation failure.
func (c *ControlField) Required() bool {
	if c.schema.Required {
		return true
	}
	return c.settings.Optional != nil && !*c.settings.Optional
}

// Validate runs the base rules against value.
func (c *ControlField) Validate(value string) []validation.Outcome {
	return []validation.Outcome{
		validation.Required(value, c.Required(), c.messages),
	}
}

// SetValidationInfo stores the latest merged result.
func (c *ControlField) SetValidationInfo(info model.ValidationInfo) {
	c.validation = info
}

// ValidationInfo returns a copy of the latest validation result.
func (c *ControlField) ValidationInfo() model.ValidationInfo {
	return c.validation.Clone()
}

// Enable clears the disabled state of the control.
func (c *ControlField) Enable() {
	if c.control != nil {
		c.control.SetDisabled(false)
	}
}

// Disable sets the disabled state of the control.
func (c *ControlField) Disable() {
	if c.control != nil {
		c.control.SetDisabled(true)
	}
}

// Focus moves focus to the control.
func (c *ControlField) Focus() {
	if c.control != nil {
		c.control.Focus()
	}
}
