package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/model"
)

var (
	// ErrAborted signals the user aborted input (e.g. Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrInvalid is returned when the final answer fails validation.
	ErrInvalid = errors.New("prompt: invalid value")
)

// ruleOrder fixes which failing rule is reported first.
var ruleOrder = []string{
	model.RuleNotOptional,
	model.RuleInvalidPattern,
	model.RuleStringTooLong,
	model.RuleStringTooShort,
	model.RuleIncompleteMask,
}

// Ask prompts for a value for f. Each attempt is validated through the
// field; the first failing rule's message is shown and the user is asked
// again. The accepted value is set on f with change notification enabled.
// message defaults to the schema title, then the field id.
func Ask(ctx context.Context, driver Driver, f field.Field, message string) (string, error) {
	if driver == nil {
		return "", errors.New("prompt: driver is nil")
	}
	if f == nil {
		return "", errors.New("prompt: field is nil")
	}
	schema := f.Schema()
	if strings.TrimSpace(message) == "" {
		message = firstNonEmpty(schema.Title, f.ID())
	}

	previous := f.Value()
	previousInfo := f.ValidationInfo()
	check := func(value string) error {
		f.SetValue(value, true)
		valid := f.Validate()
		info := f.ValidationInfo()
		f.SetValue(previous, true)
		restoreValidationInfo(f, previousInfo)
		if valid {
			return nil
		}
		return errors.New(FirstFailure(info))
	}

	answer, err := driver.Input(ctx, InputConfig{
		Message:   message,
		Default:   previous,
		Help:      schema.Description,
		Validator: check,
	})
	if err != nil {
		return "", err
	}
	if err := check(answer); err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalid, err.Error())
	}

	f.SetValue(answer, false)
	f.Validate()
	return f.Value(), nil
}

// validationSetter is implemented by fields built on field.ControlField.
type validationSetter interface {
	SetValidationInfo(model.ValidationInfo)
}

// restoreValidationInfo puts back the result f held before a trial
// validation, so a rejected attempt leaves no trace on the field.
func restoreValidationInfo(f field.Field, info model.ValidationInfo) {
	if setter, ok := f.(validationSetter); ok {
		setter.SetValidationInfo(info)
	}
}

// FirstFailure returns the message of the first failing rule, checking the
// built-in rules before any others in name order.
func FirstFailure(info model.ValidationInfo) string {
	for _, rule := range ruleOrder {
		if result, ok := info[rule]; ok && !result.Status {
			return result.Message
		}
	}
	var first string
	for rule, result := range info {
		if result.Status {
			continue
		}
		if first == "" || rule < first {
			first = rule
		}
	}
	if first == "" {
		return ""
	}
	return info[first].Message
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
