package field

import (
	"github.com/goliatone/go-formfield/pkg/dom"
	"github.com/goliatone/go-formfield/pkg/model"
)

// Field is the capability set shared by all controls.
type Field interface {
	ID() string
	Type() string
	Setup()
	Render(onSuccess func())
	Value() string
	SetValue(value string, stopUpdateTrigger bool)
	Validate() bool
	ValidationInfo() model.ValidationInfo
	Enable()
	Disable()
	Focus()
	Element() *dom.Element
	Schema() model.FieldSchema
	Settings() model.FieldSettings
}

// ChangeListener receives value change notifications.
type ChangeListener func(previous, current string)
