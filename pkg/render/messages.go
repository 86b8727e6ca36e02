package render

import (
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/mask"
	"github.com/goliatone/go-formfield/pkg/model"
	"github.com/goliatone/go-formfield/pkg/validation"
)

// RuleServer tags messages supplied through RenderOptions.Errors.
const RuleServer = "server"

// Message is one entry of the rendered message list.
type Message struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// collectMessages lists failed rules in name order followed by extra server
// messages. Blank and duplicate texts are dropped.
func collectMessages(info model.ValidationInfo, extra []string) []Message {
	rules := make([]string, 0, len(info))
	for rule, result := range info {
		if !result.Status {
			rules = append(rules, rule)
		}
	}
	sort.Strings(rules)

	out := make([]Message, 0, len(rules)+len(extra))
	seen := make(map[string]struct{}, len(rules)+len(extra))
	add := func(rule, text string) {
		text = strings.TrimSpace(text)
		if text == "" {
			return
		}
		if _, exists := seen[text]; exists {
			return
		}
		seen[text] = struct{}{}
		out = append(out, Message{Rule: rule, Message: text})
	}
	for _, rule := range rules {
		add(rule, info[rule].Message)
	}
	for _, text := range extra {
		add(RuleServer, text)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// localizeInfo re-formats failed rule messages with translated templates.
// Rules without a translation keep their original message.
func localizeInfo(f field.Field, t Translator, locale string) model.ValidationInfo {
	info := f.ValidationInfo()
	if t == nil || strings.TrimSpace(locale) == "" || len(info) == 0 {
		return info
	}
	out := info.Clone()
	for rule, result := range out {
		if result.Status {
			continue
		}
		tmpl, err := t.Translate(locale, MessageKeyPrefix+rule)
		if err != nil || strings.TrimSpace(tmpl) == "" {
			continue
		}
		result.Message = validation.SubstituteTokens(tmpl, ruleArgs(rule, f)...)
		out[rule] = result
	}
	return out
}

func ruleArgs(rule string, f field.Field) []any {
	schema := f.Schema()
	switch rule {
	case model.RuleInvalidPattern:
		return []any{schema.Pattern}
	case model.RuleStringTooShort:
		if schema.MinLength != nil {
			return []any{strconv.Itoa(*schema.MinLength)}
		}
	case model.RuleStringTooLong:
		if schema.MaxLength != nil {
			return []any{strconv.Itoa(*schema.MaxLength)}
		}
	case model.RuleIncompleteMask:
		if m := fieldMask(f); m != nil {
			return []any{m.Placeholder()}
		}
	}
	return nil
}

func fieldMask(f field.Field) *mask.Mask {
	if masked, ok := f.(interface{ Mask() *mask.Mask }); ok {
		return masked.Mask()
	}
	return nil
}
