// Package registry maps field type names to constructors and picks a field
// type for a schema. Registries are plain values; nothing is registered
// process-wide. New returns one with the text field registered under "text"
// and mapped as the default for "string" and "any" schemas.
package registry
