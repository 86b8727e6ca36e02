package field

import (
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formfield/pkg/dom"
	"github.com/goliatone/go-formfield/pkg/mask"
	"github.com/goliatone/go-formfield/pkg/model"
	"github.com/goliatone/go-formfield/pkg/validation"
)

const (
	// TypeText is the registry key for TextField.
	TypeText = "text"
	// TextFieldClass is added to every rendered text input.
	TextFieldClass = "formfield-textfield"
	// TemplateText names the template that renders a text input.
	TemplateText = "controlFieldText"
)

// TextField is a single-line text input validated against pattern,
// minLength and maxLength.
type TextField struct {
	*ControlField
	mask *mask.Mask
}

var _ Field = (*TextField)(nil)

// NewTextField constructs an unrendered text field.
func NewTextField(id string, schema model.FieldSchema, settings model.FieldSettings, options ...Option) *TextField {
	return &TextField{ControlField: NewControlField(id, schema, settings, options...)}
}

// Type returns TypeText.
func (f *TextField) Type() string {
	return TypeText
}

// Setup applies base defaults, then defaults an unset Size to
// model.DefaultSize. Any other size is kept as given.
func (f *TextField) Setup() {
	f.ControlField.Setup()
	f.MutateSettings(func(s *model.FieldSettings) {
		if s.Size == 0 {
			s.Size = model.DefaultSize
		}
	})
}

// Render builds the input element, injects it into the container, applies
// the configured mask and then calls onSuccess once.
func (f *TextField) Render(onSuccess func()) {
	settings := f.Settings()
	el := dom.New(RenderTextInput(f.ID(), settings))
	el.AddClass(TextFieldClass)
	if value := f.ControlField.Value(); value != "" {
		el.SetValue(value)
	}
	f.Inject(el)

	f.mask = nil
	if settings.Mask && settings.MaskString != "" {
		m, err := mask.Compile(settings.MaskString)
		if err != nil {
			f.Logger().Debug("mask ignored", "mask", settings.MaskString, "error", err)
		} else {
			f.mask = m
			el.SetFormatter(m)
			el.SetAttr("data-mask", m.String())
			f.ControlField.SetValue(el.Value(), true)
		}
	}
	f.Logger().Debug("text field rendered", "size", settings.Size, "masked", f.mask != nil)

	if onSuccess != nil {
		onSuccess()
	}
}

// Value returns the value held by the input element. Before rendering it
// returns the value recorded by SetValue.
func (f *TextField) Value() string {
	if el := f.Element(); el != nil {
		return el.Value()
	}
	return f.ControlField.Value()
}

// SetValue writes value into the input (empty values clear it) and then
// hands over to the base so listeners fire unless stopUpdateTrigger is set.
// Masked inputs store the masked form, which is also what the base records.
func (f *TextField) SetValue(value string, stopUpdateTrigger bool) {
	if el := f.Element(); el != nil {
		el.SetValue(value)
		value = el.Value()
	} else if f.mask != nil && value != "" {
		value = f.mask.Format(value)
	}
	f.ControlField.SetValue(value, stopUpdateTrigger)
}

// Validate checks the base rules plus pattern, maxLength and minLength, and
// for masked inputs that every mask slot is filled. It stores the merged
// ValidationInfo and reports whether everything passed.
func (f *TextField) Validate() bool {
	value := f.Value()
	msgs := f.Messages()
	schema := f.Schema()

	outcomes := f.ControlField.Validate(value)
	outcomes = append(outcomes,
		validation.Pattern(value, schema, msgs),
		validation.MaxLength(value, schema, msgs),
		validation.MinLength(value, schema, msgs),
	)
	if f.mask != nil {
		outcomes = append(outcomes, validation.MaskComplete(value, f.mask, msgs))
	}
	valid, info := validation.Merge(outcomes...)
	f.SetValidationInfo(info)
	return valid
}

// Mask returns the compiled mask, nil when the field is not masked.
func (f *TextField) Mask() *mask.Mask {
	return f.mask
}

// RenderTextInput describes the input element for id and settings. Masked
// inputs without a placeholder show the mask layout. It has no side effects;
// TextField.Render turns the result into a live element.
func RenderTextInput(id string, settings model.FieldSettings) dom.Descriptor {
	desc := dom.Descriptor{
		Tag: "input",
		Attrs: []dom.Attr{
			{Name: "type", Value: "text"},
			{Name: "id", Value: id},
		},
	}
	if settings.Size > 0 {
		desc.Attrs = append(desc.Attrs, dom.Attr{Name: "size", Value: strconv.Itoa(settings.Size)})
	}
	if settings.Readonly {
		desc.Attrs = append(desc.Attrs, dom.Attr{Name: "readonly", Value: "on"})
	}
	if name := strings.TrimSpace(settings.FormName); name != "" {
		desc.Attrs = append(desc.Attrs, dom.Attr{Name: "name", Value: name})
	}
	if placeholder := textPlaceholder(settings); placeholder != "" {
		desc.Attrs = append(desc.Attrs, dom.Attr{Name: "placeholder", Value: placeholder})
	}
	for _, key := range DataKeys(settings.Data) {
		desc.Attrs = append(desc.Attrs, dom.Attr{Name: "data-" + key, Value: settings.Data[key]})
	}
	return desc
}

// textPlaceholder prefers the configured placeholder and falls back to the
// mask's slot layout for masked inputs.
func textPlaceholder(settings model.FieldSettings) string {
	if placeholder := strings.TrimSpace(settings.Placeholder); placeholder != "" {
		return placeholder
	}
	if !settings.Mask || settings.MaskString == "" {
		return ""
	}
	m, err := mask.Compile(settings.MaskString)
	if err != nil {
		return ""
	}
	return m.Placeholder()
}

// DataKeys returns the usable data-* suffixes in sorted order. Keys with
// characters that are not valid in an attribute name are skipped.
func DataKeys(data map[string]string) []string {
	if len(data) == 0 {
		return nil
	}
	keys := make([]string, 0, len(data))
	for key := range data {
		if validDataKey(key) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

func validDataKey(key string) bool {
	if key == "" {
		return false
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}
