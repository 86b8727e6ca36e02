package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formfield/pkg/model"
)

// LoadFS walks fsys and parses every JSON/YAML settings file. A nil fsys
// yields an empty store. Defining the same field twice is an error.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{fields: make(map[string]FieldConfig)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSettingsFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("config: read %s: %w", path, err)
		}
		parsed, err := Parse(data, path)
		if err != nil {
			return err
		}
		return store.merge(parsed)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Parse decodes a single settings document. source is used in errors.
func Parse(data []byte, source string) (*Store, error) {
	doc, err := parseDocument(data, source)
	if err != nil {
		return nil, err
	}

	store := &Store{fields: make(map[string]FieldConfig, len(doc.Fields))}
	for key, raw := range doc.Fields {
		name := NormalizeFieldName(key)
		if name == "" {
			return nil, fmt.Errorf("config: file %s field key %q normalises to an empty name", source, key)
		}
		if _, exists := store.fields[name]; exists {
			return nil, fmt.Errorf("config: file %s defines duplicate field %q", source, name)
		}
		if raw.Size < 0 {
			return nil, fmt.Errorf("config: file %s field %q has negative size %d", source, name, raw.Size)
		}

		settings := raw.FieldSettings.Clone()
		settings.Messages = mergeMessages(doc.Messages, raw.Messages)
		store.fields[name] = FieldConfig{
			Settings:    settings,
			Hints:       cloneHints(raw.Hints),
			OriginalKey: key,
			Source:      source,
		}
	}
	return store, nil
}

func (s *Store) merge(other *Store) error {
	for name, cfg := range other.fields {
		if existing, exists := s.fields[name]; exists {
			return fmt.Errorf("config: duplicate field %q (files %s and %s)", name, existing.Source, cfg.Source)
		}
		s.fields[name] = cfg
	}
	return nil
}

type documentFile struct {
	Messages map[string]string    `json:"messages" yaml:"messages"`
	Fields   map[string]fieldFile `json:"fields" yaml:"fields"`
}

type fieldFile struct {
	model.FieldSettings `json:",inline" yaml:",inline"`
	Hints               map[string]string `json:"hints" yaml:"hints"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("config: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("config: parse %s: invalid JSON or YAML: %w", source, err)
	}
	return doc, nil
}

func mergeMessages(fileLevel, fieldLevel map[string]string) map[string]string {
	if len(fileLevel) == 0 && len(fieldLevel) == 0 {
		return nil
	}
	out := make(map[string]string, len(fileLevel)+len(fieldLevel))
	for rule, msg := range fileLevel {
		out[rule] = msg
	}
	for rule, msg := range fieldLevel {
		out[rule] = msg
	}
	return out
}

func cloneHints(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out
}

func isSettingsFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
