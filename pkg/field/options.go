package field

import (
	"log/slog"

	"github.com/goliatone/go-formfield/pkg/dom"
	"github.com/goliatone/go-formfield/pkg/validation"
)

// Option configures a field at construction.
type Option func(*config)

type config struct {
	container *dom.Element
	logger    *slog.Logger
	messages  validation.Messages
	listeners []ChangeListener
}

// WithContainer sets the element the control is injected into. Without one a
// detached container is created on first render.
func WithContainer(container *dom.Element) Option {
	return func(cfg *config) {
		if container != nil {
			cfg.container = container
		}
	}
}

// WithLogger injects a structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithMessages replaces the message catalogue used for validation messages.
// Per-field overrides in FieldSettings.Messages still apply on top.
func WithMessages(msgs validation.Messages) Option {
	return func(cfg *config) {
		if len(msgs) > 0 {
			cfg.messages = msgs
		}
	}
}

// WithChangeListener registers a listener at construction.
func WithChangeListener(fn ChangeListener) Option {
	return func(cfg *config) {
		if fn != nil {
			cfg.listeners = append(cfg.listeners, fn)
		}
	}
}
