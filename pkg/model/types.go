package model

// Rule identifiers used as keys in ValidationInfo. The names double as message
// catalogue keys so renderers can look up localized copies.
const (
	RuleNotOptional    = "notOptional"
	RuleInvalidPattern = "invalidPattern"
	RuleStringTooLong  = "stringTooLong"
	RuleStringTooShort = "stringTooShort"
	// RuleIncompleteMask is only reported by masked fields.
	RuleIncompleteMask = "incompleteMask"
)

// DefaultSize is applied to FieldSettings.Size when a text field is set up
// without an explicit display width.
const DefaultSize = 40

// FieldSchema is the subset of a JSON Schema property a text field obeys.
// Nil length pointers and an empty Pattern mean "no constraint".
type FieldSchema struct {
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Pattern     string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	MinLength   *int   `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength   *int   `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Required    bool   `json:"required,omitempty" yaml:"required,omitempty"`
	Default     any    `json:"default,omitempty" yaml:"default,omitempty"`
}

// FieldSettings configures how a field renders, independent of the value's
// schema. Data entries render as data-<key> attributes.
type FieldSettings struct {
	Size        int               `json:"size,omitempty" yaml:"size,omitempty"`
	Readonly    bool              `json:"readonly,omitempty" yaml:"readonly,omitempty"`
	FormName    string            `json:"formName,omitempty" yaml:"formName,omitempty"`
	Placeholder string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Mask        bool              `json:"mask,omitempty" yaml:"mask,omitempty"`
	MaskString  string            `json:"maskString,omitempty" yaml:"maskString,omitempty"`
	Optional    *bool             `json:"optional,omitempty" yaml:"optional,omitempty"`
	Data        map[string]string `json:"data,omitempty" yaml:"data,omitempty"`
	Messages    map[string]string `json:"messages,omitempty" yaml:"messages,omitempty"`
}

// Clone returns a deep copy so callers can apply defaults without mutating
// shared configuration.
func (s FieldSettings) Clone() FieldSettings {
	out := s
	if s.Optional != nil {
		value := *s.Optional
		out.Optional = &value
	}
	out.Data = cloneStringMap(s.Data)
	out.Messages = cloneStringMap(s.Messages)
	return out
}

// RuleResult is the outcome of a single validation rule. Message is only
// populated when Status is false.
type RuleResult struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

// ValidationInfo maps rule identifiers to their latest outcome.
type ValidationInfo map[string]RuleResult

// Valid reports whether every recorded rule passed.
func (v ValidationInfo) Valid() bool {
	for _, result := range v {
		if !result.Status {
			return false
		}
	}
	return true
}

// Messages returns the failure messages keyed by rule.
func (v ValidationInfo) Messages() map[string]string {
	out := make(map[string]string)
	for rule, result := range v {
		if !result.Status && result.Message != "" {
			out[rule] = result.Message
		}
	}
	return out
}

// Clone copies the mapping.
func (v ValidationInfo) Clone() ValidationInfo {
	if v == nil {
		return nil
	}
	out := make(ValidationInfo, len(v))
	for rule, result := range v {
		out[rule] = result
	}
	return out
}

// IntPtr is a small helper for building schemas in code and tests.
func IntPtr(value int) *int {
	return &value
}

func cloneStringMap(src map[string]string) map[string]string {
	if src == nil {
		return nil
	}
	out := make(map[string]string, len(src))
	for key, value := range src {
		out[key] = value
	}
	return out
}
