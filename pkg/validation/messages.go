package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formfield/pkg/model"
)

// Messages maps rule identifiers to message templates containing {0}-style
// tokens.
type Messages map[string]string

// DefaultMessages returns the built-in English templates.
func DefaultMessages() Messages {
	return Messages{
		model.RuleNotOptional:    "This field is not optional.",
		model.RuleInvalidPattern: "This field should have pattern {0}",
		model.RuleStringTooShort: "This field should contain at least {0} numbers or characters",
		model.RuleStringTooLong:  "This field should contain at most {0} numbers or characters",
		model.RuleIncompleteMask: "This field should match the format {0}",
	}
}

// With returns a copy of m with overrides applied. Blank overrides are
// ignored so partial configuration files cannot erase a default.
func (m Messages) With(overrides map[string]string) Messages {
	out := make(Messages, len(m)+len(overrides))
	for key, value := range m {
		out[key] = value
	}
	for key, value := range overrides {
		if strings.TrimSpace(value) == "" {
			continue
		}
		out[strings.TrimSpace(key)] = value
	}
	return out
}

// Lookup returns the template for rule, falling back to the defaults and then
// to the rule name itself.
func (m Messages) Lookup(rule string) string {
	if msg := strings.TrimSpace(m[rule]); msg != "" {
		return m[rule]
	}
	if msg, ok := DefaultMessages()[rule]; ok {
		return msg
	}
	return rule
}

// Format looks up the template for rule and substitutes args into it.
func (m Messages) Format(rule string, args ...any) string {
	return SubstituteTokens(m.Lookup(rule), args...)
}

// SubstituteTokens replaces {0}, {1}, ... with the matching argument. Tokens
// without an argument are left untouched.
func SubstituteTokens(template string, args ...any) string {
	if len(args) == 0 || !strings.Contains(template, "{") {
		return template
	}
	var b strings.Builder
	b.Grow(len(template))
	for i := 0; i < len(template); i++ {
		if template[i] != '{' {
			b.WriteByte(template[i])
			continue
		}
		end := strings.IndexByte(template[i:], '}')
		if end < 0 {
			b.WriteString(template[i:])
			break
		}
		idx, err := strconv.Atoi(template[i+1 : i+end])
		if err != nil || idx < 0 || idx >= len(args) {
			b.WriteByte(template[i])
			continue
		}
		b.WriteString(fmt.Sprint(args[idx]))
		i += end
	}
	return b.String()
}
