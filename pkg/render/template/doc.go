// Package template defines the contract field renderers use to execute
// partials. The gotemplate subpackage provides the default engine.
package template
