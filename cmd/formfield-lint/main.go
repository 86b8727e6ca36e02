package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-formfield/pkg/model"
	"github.com/goliatone/go-formfield/pkg/openapi"
	"github.com/goliatone/go-formfield/pkg/registry"
	"github.com/goliatone/go-formfield/pkg/validation"
)

var allowedHintKeys = []string{"type", "widget"}

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [paths...]\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nLint OpenAPI component properties used as text fields.\n"); err != nil {
			panic(err)
		}
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{"testdata/article.yaml"}
	}

	ctx := context.Background()
	fields := registry.New()

	var violations []violation
	for _, path := range paths {
		linted, err := lintFile(ctx, fields, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
			os.Exit(1)
		}
		violations = append(violations, linted...)
	}

	if len(violations) > 0 {
		sort.Slice(violations, func(i, j int) bool {
			if violations[i].file == violations[j].file {
				if violations[i].location == violations[j].location {
					return violations[i].message < violations[j].message
				}
				return violations[i].location < violations[j].location
			}
			return violations[i].file < violations[j].file
		})
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
		}
		os.Exit(1)
	}
}

func lintFile(ctx context.Context, fields *registry.Registry, path string) ([]violation, error) {
	raw, err := openapi.Load(ctx, openapi.SourceFromFile(path))
	if err != nil {
		return nil, err
	}
	doc, err := openapi.ParseDocument(ctx, raw)
	if err != nil {
		return nil, err
	}

	var result []violation
	for _, component := range openapi.ComponentNames(doc) {
		props, err := openapi.ComponentProperties(doc, component)
		if err != nil {
			return nil, err
		}
		for _, name := range openapi.PropertyNames(props) {
			location := strings.Join([]string{"components", component, "properties", name}, " > ")
			for _, msg := range lintProperty(fields, props[name]) {
				result = append(result, violation{file: path, location: location, message: msg})
			}
		}
	}
	return result, nil
}

func lintProperty(fields *registry.Registry, prop openapi.Property) []string {
	var out []string
	keys := make([]string, 0, len(prop.Hints))
	for key := range prop.Hints {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if !isAllowedHint(key) {
			out = append(out, fmt.Sprintf("unsupported extension %s-%s (supported: %s)", openapi.ExtensionNamespace, key, strings.Join(allowedHintKeys, ", ")))
		}
	}

	name, ok := fields.Resolve(prop.Schema, prop.Hints)
	switch {
	case !ok:
		return out
	case !fields.Has(name):
		out = append(out, fmt.Sprintf("unknown field type %q", name))
		return out
	}

	out = append(out, lintSchema(prop.Schema)...)
	return out
}

func lintSchema(schema model.FieldSchema) []string {
	var out []string
	if schema.Pattern != "" {
		if _, err := validation.CompilePattern(schema.Pattern); err != nil {
			out = append(out, fmt.Sprintf("pattern %q does not compile: %v", schema.Pattern, err))
		}
	}
	if schema.MinLength != nil && schema.MaxLength != nil && *schema.MaxLength > 0 && *schema.MinLength > *schema.MaxLength {
		out = append(out, fmt.Sprintf("minLength %d is greater than maxLength %d", *schema.MinLength, *schema.MaxLength))
	}
	return out
}

func isAllowedHint(key string) bool {
	for _, allowed := range allowedHintKeys {
		if key == allowed {
			return true
		}
	}
	return false
}
