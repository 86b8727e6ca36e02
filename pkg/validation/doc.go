// Package validation holds the string constraint rules a text field applies.
// Each rule is a pure function returning an immutable model.RuleResult; Merge
// folds the results into a fresh model.ValidationInfo so no rule ever writes
// into shared state.
//
// Patterns use full-match semantics: the whole value must match, as if the
// expression were wrapped in ^(?:...)$. Lengths count runes, and empty values
// are exempt from the length rules (required-ness is checked separately by the
// notOptional rule).
package validation
