package validation

import (
	"fmt"
	"regexp"
	"sync"
	"unicode/utf8"

	"github.com/goliatone/go-formfield/pkg/mask"
	"github.com/goliatone/go-formfield/pkg/model"
)

// Outcome pairs a rule identifier with its result.
type Outcome struct {
	Rule   string
	Result model.RuleResult
}

var patternCache sync.Map // source -> *regexp.Regexp

// CompilePattern compiles a schema pattern with full-match semantics.
// Compiled expressions are cached by source.
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	if cached, ok := patternCache.Load(pattern); ok {
		return cached.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		return nil, fmt.Errorf("validation: compile pattern %q: %w", pattern, err)
	}
	patternCache.Store(pattern, re)
	return re, nil
}

// Pattern fails when the schema declares a pattern and value does not match
// it in full. Patterns that do not compile impose no constraint; callers that
// care should check them with CompilePattern up front.
func Pattern(value string, schema model.FieldSchema, msgs Messages) Outcome {
	out := Outcome{Rule: model.RuleInvalidPattern, Result: model.RuleResult{Status: true}}
	if schema.Pattern == "" {
		return out
	}
	re, err := CompilePattern(schema.Pattern)
	if err != nil {
		return out
	}
	if !re.MatchString(value) {
		out.Result = model.RuleResult{
			Status:  false,
			Message: msgs.Format(model.RuleInvalidPattern, schema.Pattern),
		}
	}
	return out
}

// MinLength fails when a non-empty value is shorter than schema.MinLength.
func MinLength(value string, schema model.FieldSchema, msgs Messages) Outcome {
	out := Outcome{Rule: model.RuleStringTooShort, Result: model.RuleResult{Status: true}}
	if value == "" || schema.MinLength == nil || *schema.MinLength <= 0 {
		return out
	}
	if utf8.RuneCountInString(value) < *schema.MinLength {
		out.Result = model.RuleResult{
			Status:  false,
			Message: msgs.Format(model.RuleStringTooShort, *schema.MinLength),
		}
	}
	return out
}

// MaxLength fails when a non-empty value is longer than schema.MaxLength.
// Like MinLength, a zero limit imposes no constraint.
func MaxLength(value string, schema model.FieldSchema, msgs Messages) Outcome {
	out := Outcome{Rule: model.RuleStringTooLong, Result: model.RuleResult{Status: true}}
	if value == "" || schema.MaxLength == nil || *schema.MaxLength <= 0 {
		return out
	}
	if utf8.RuneCountInString(value) > *schema.MaxLength {
		out.Result = model.RuleResult{
			Status:  false,
			Message: msgs.Format(model.RuleStringTooLong, *schema.MaxLength),
		}
	}
	return out
}

// MaskComplete fails when a non-empty value leaves required slots of m
// unfilled. A nil mask imposes no constraint.
func MaskComplete(value string, m *mask.Mask, msgs Messages) Outcome {
	out := Outcome{Rule: model.RuleIncompleteMask, Result: model.RuleResult{Status: true}}
	if value == "" || m == nil {
		return out
	}
	if !m.Complete(value) {
		out.Result = model.RuleResult{
			Status:  false,
			Message: msgs.Format(model.RuleIncompleteMask, m.Placeholder()),
		}
	}
	return out
}

// Required fails when required is set and value is empty.
func Required(value string, required bool, msgs Messages) Outcome {
	out := Outcome{Rule: model.RuleNotOptional, Result: model.RuleResult{Status: true}}
	if required && value == "" {
		out.Result = model.RuleResult{
			Status:  false,
			Message: msgs.Format(model.RuleNotOptional),
		}
	}
	return out
}

// Merge folds outcomes into a new ValidationInfo and reports whether all of
// them passed. Later outcomes for the same rule replace earlier ones.
func Merge(outcomes ...Outcome) (bool, model.ValidationInfo) {
	info := make(model.ValidationInfo, len(outcomes))
	valid := true
	for _, outcome := range outcomes {
		if outcome.Rule == "" {
			continue
		}
		info[outcome.Rule] = outcome.Result
	}
	for _, result := range info {
		valid = valid && result.Status
	}
	return valid, info
}

// String runs the pattern, max-length and min-length rules against value.
func String(value string, schema model.FieldSchema, msgs Messages) (bool, model.ValidationInfo) {
	return Merge(
		Pattern(value, schema, msgs),
		MaxLength(value, schema, msgs),
		MinLength(value, schema, msgs),
	)
}
