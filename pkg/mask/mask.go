// Package mask implements fixed-format input masks. A mask string mixes
// placeholders with literal characters:
//
//	9  a digit
//	a  a letter
//	*  a letter or digit
//	?  everything after this marker is optional
//
// Any other character is a literal that is inserted automatically, e.g.
// "(999) 999-9999" or "99/99/9999".
package mask

import (
	"errors"
	"strings"
	"unicode"
)

// ErrNoPlaceholders is returned for mask strings that would never accept input.
var ErrNoPlaceholders = errors.New("mask: mask string has no placeholders")

// PlaceholderRune is shown in place of unfilled slots.
const PlaceholderRune = '_'

type token struct {
	literal rune
	accept  func(rune) bool
}

// Mask is a compiled mask string. It satisfies dom.Formatter.
type Mask struct {
	source   string
	tokens   []token
	required int
}

// Compile parses a mask string.
func Compile(source string) (*Mask, error) {
	m := &Mask{source: source, required: -1}
	slots := 0
	for _, r := range source {
		switch r {
		case '9':
			m.tokens = append(m.tokens, token{accept: unicode.IsDigit})
			slots++
		case 'a':
			m.tokens = append(m.tokens, token{accept: unicode.IsLetter})
			slots++
		case '*':
			m.tokens = append(m.tokens, token{accept: isAlphanumeric})
			slots++
		case '?':
			if m.required < 0 {
				m.required = len(m.tokens)
			}
		default:
			m.tokens = append(m.tokens, token{literal: r})
		}
	}
	if slots == 0 {
		return nil, ErrNoPlaceholders
	}
	if m.required < 0 {
		m.required = len(m.tokens)
	}
	return m, nil
}

// MustCompile panics when the mask string is invalid.
func MustCompile(source string) *Mask {
	m, err := Compile(source)
	if err != nil {
		panic(err)
	}
	return m
}

// String returns the original mask string.
func (m *Mask) String() string {
	return m.source
}

// Format lays raw input over the mask. Characters that do not fit the next
// slot are dropped, literals are inserted, and trailing literals after the
// last filled slot are trimmed.
func (m *Mask) Format(raw string) string {
	input := []rune(raw)
	var out []rune
	filled := 0
	idx := 0
	for _, tok := range m.tokens {
		if idx >= len(input) {
			break
		}
		if tok.accept == nil {
			out = append(out, tok.literal)
			if input[idx] == tok.literal {
				idx++
			}
			continue
		}
		for idx < len(input) && !tok.accept(input[idx]) {
			idx++
		}
		if idx >= len(input) {
			break
		}
		out = append(out, input[idx])
		idx++
		filled = len(out)
	}
	return string(out[:filled])
}

// Complete reports whether value fills every required slot of the mask.
func (m *Mask) Complete(value string) bool {
	input := []rune(value)
	if len(input) > len(m.tokens) {
		return false
	}
	for idx := 0; idx < m.required; idx++ {
		if idx >= len(input) {
			return false
		}
		tok := m.tokens[idx]
		if tok.accept == nil {
			if input[idx] != tok.literal {
				return false
			}
			continue
		}
		if !tok.accept(input[idx]) {
			return false
		}
	}
	return true
}

// Placeholder renders the mask with unfilled slots, suitable for a
// placeholder attribute.
func (m *Mask) Placeholder() string {
	var b strings.Builder
	for _, tok := range m.tokens {
		if tok.accept == nil {
			b.WriteRune(tok.literal)
			continue
		}
		b.WriteRune(PlaceholderRune)
	}
	return b.String()
}

func isAlphanumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
