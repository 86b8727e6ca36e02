// Package openapi extracts text field schemas from OpenAPI 3 documents using
// kin-openapi. Documents can be read from files, an fs.FS or HTTP.
package openapi
