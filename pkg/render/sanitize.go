package render

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

var (
	idPattern     = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_.:-]*$`)
	classPattern  = regexp.MustCompile(`^[A-Za-z0-9_ -]*$`)
	sizePattern   = regexp.MustCompile(`^[0-9]+$`)
	boolAttrValue = regexp.MustCompile(`^(on|true|false|disabled|readonly)$`)
)

// FieldPolicy returns the bluemonday policy applied to rendered field markup.
// It keeps the text input, its container and message list, and drops
// everything else (scripts, event handlers, unknown elements).
func FieldPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowDataAttributes()
	p.AllowElements("div", "ul", "li", "input")

	p.AllowAttrs("type").Matching(regexp.MustCompile(`^text$`)).OnElements("input")
	p.AllowAttrs("id").Matching(idPattern).Globally()
	p.AllowAttrs("class").Matching(classPattern).Globally()
	p.AllowAttrs("size").Matching(sizePattern).OnElements("input")
	p.AllowAttrs("readonly", "disabled").Matching(boolAttrValue).OnElements("input")
	p.AllowAttrs("name", "placeholder", "value").OnElements("input")
	p.AllowAttrs("aria-invalid").Matching(boolAttrValue).OnElements("input")
	p.AllowAttrs("aria-describedby").Matching(idPattern).OnElements("input")
	return p
}

// Sanitize runs markup through policy, defaulting to FieldPolicy.
func Sanitize(policy *bluemonday.Policy, markup string) string {
	if policy == nil {
		policy = FieldPolicy()
	}
	return policy.Sanitize(markup)
}
