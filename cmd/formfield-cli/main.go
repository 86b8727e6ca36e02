package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/goliatone/go-formfield"
	"github.com/goliatone/go-formfield/pkg/config"
	"github.com/goliatone/go-formfield/pkg/openapi"
	"github.com/goliatone/go-formfield/pkg/prompt"
	"github.com/goliatone/go-formfield/pkg/registry"
)

func main() {
	source := flag.String("schema", "testdata/article.yaml", "OpenAPI document path or URL")
	component := flag.String("component", "Article", "component schema name")
	property := flag.String("property", "title", "property to render")
	settingsDir := flag.String("settings", "", "directory with JSON/YAML field settings")
	value := flag.String("value", "", "value to validate")
	interactive := flag.Bool("interactive", false, "prompt for the value in the terminal")
	locale := flag.String("locale", "", "locale passed to renderers")
	renderer := flag.String("renderer", "html", "renderer to use (html, json)")
	output := flag.String("output", "", "output file (stdout if empty)")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx := context.Background()
	src, err := parseSource(*source)
	if err != nil {
		log.Fatalf("invalid source: %v", err)
	}
	raw, err := openapi.Load(ctx, src, openapi.WithHTTPFallback(0))
	if err != nil {
		log.Fatalf("Failed to load schema: %v", err)
	}

	var store *config.Store
	if *settingsDir != "" {
		store, err = config.LoadFS(os.DirFS(*settingsDir))
		if err != nil {
			log.Fatalf("Failed to load settings: %v", err)
		}
	}

	req := formfield.Request{
		Document:  raw,
		Component: *component,
		Property:  *property,
		Renderer:  *renderer,
		Render:    formfield.RenderOptions{Locale: *locale},
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "value" {
			req.Value = value
		}
	})
	options := []formfield.Option{formfield.WithSettings(store), formfield.WithLogger(logger)}

	if *interactive {
		answer, err := ask(ctx, raw, req, store, logger)
		if err != nil {
			if errors.Is(err, prompt.ErrAborted) {
				os.Exit(130)
			}
			log.Fatalf("Prompt failed: %v", err)
		}
		req.Value = &answer
	}

	result, err := formfield.Generate(ctx, req, options...)
	if err != nil {
		log.Fatalf("Failed to render field: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, result.Output, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Field written to %s\n", *output)
	} else {
		fmt.Println(string(result.Output))
	}

	if req.Value != nil {
		info, err := json.MarshalIndent(result.Field.ValidationInfo(), "", "  ")
		if err != nil {
			log.Fatalf("Failed to encode validation: %v", err)
		}
		fmt.Println(string(info))
	}
	if !result.Valid {
		os.Exit(1)
	}
}

// ask builds the field on its own so the prompt validates every attempt
// with the same schema and settings Generate will use.
func ask(ctx context.Context, raw []byte, req formfield.Request, store *config.Store, logger *slog.Logger) (string, error) {
	props, err := openapi.LoadProperties(ctx, raw, req.Component)
	if err != nil {
		return "", err
	}
	prop, ok := props[req.Property]
	if !ok {
		return "", fmt.Errorf("property %q not found", req.Property)
	}
	cfg, found := store.Field(req.Component + "." + req.Property)
	if !found {
		cfg, _ = store.Field(req.Property)
	}
	hints := prop.Hints
	if len(cfg.Hints) > 0 {
		hints = cfg.Hints
	}
	f, err := registry.New().Build(req.Property, prop.Schema, cfg.Settings, hints)
	if err != nil {
		return "", err
	}
	f.Setup()
	f.Render(nil)
	if req.Value != nil {
		f.SetValue(*req.Value, true)
	}
	logger.Debug("prompting", "field", f.ID())
	return prompt.Ask(ctx, prompt.NewSurveyDriver(), f, "")
}

func parseSource(raw string) (openapi.Source, error) {
	path := strings.TrimSpace(raw)
	if path == "" {
		return nil, errors.New("empty source")
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return openapi.SourceFromURL(path)
	}
	return openapi.SourceFromFile(path), nil
}
