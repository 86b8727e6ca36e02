// Package model defines the schema, settings and validation result types a
// form field works with. FieldSchema carries the JSON Schema string
// constraints (pattern, minLength, maxLength), FieldSettings the per-field
// rendering directives (size, readonly, formName, masking and data-*
// attributes), and ValidationInfo the per-rule outcome keyed by the canonical
// rule identifiers (invalidPattern, stringTooLong, stringTooShort,
// notOptional). Types carry JSON and YAML tags so they can be loaded from
// configuration files or emitted as deterministic snapshots.
package model
