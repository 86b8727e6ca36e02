package config

import (
	"sort"
	"strings"

	"github.com/goliatone/go-formfield/pkg/model"
)

// FieldConfig is the configuration loaded for one field.
type FieldConfig struct {
	Settings model.FieldSettings
	// Hints are passed to the field registry (e.g. "widget").
	Hints map[string]string
	// OriginalKey is the key as written in the file.
	OriginalKey string
	Source      string
}

// Store indexes FieldConfig values by normalised field name.
type Store struct {
	fields map[string]FieldConfig
}

// Field returns the configuration for name.
func (s *Store) Field(name string) (FieldConfig, bool) {
	if s == nil {
		return FieldConfig{}, false
	}
	cfg, ok := s.fields[NormalizeFieldName(name)]
	if !ok {
		return FieldConfig{}, false
	}
	cfg.Settings = cfg.Settings.Clone()
	return cfg, true
}

// Settings returns the settings for name, or zero settings when absent.
func (s *Store) Settings(name string) model.FieldSettings {
	cfg, _ := s.Field(name)
	return cfg.Settings
}

// Names lists the configured field names in sorted order.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.fields))
	for name := range s.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Empty reports whether the store holds any fields.
func (s *Store) Empty() bool {
	return s == nil || len(s.fields) == 0
}

// NormalizeFieldName trims whitespace and stray dots and converts bracket
// segments to dots, so "article[title]" and "article.title" are the same key.
func NormalizeFieldName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	replacer := strings.NewReplacer("[", ".", "]", "")
	normalised := replacer.Replace(trimmed)
	for strings.Contains(normalised, "..") {
		normalised = strings.ReplaceAll(normalised, "..", ".")
	}
	return strings.Trim(normalised, ".")
}
