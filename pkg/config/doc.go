// Package config loads per-field settings from JSON or YAML files.
//
// A file holds a "fields" map keyed by field name (dot paths are allowed)
// and an optional "messages" map applied to every field in that file:
//
//	messages:
//	  stringTooShort: "Too short, need {0}"
//	fields:
//	  article.title:
//	    size: 60
//	    placeholder: Title
//	    mask: true
//	    maskString: "aaa-999"
//	    hints:
//	      widget: text
package config
