package gotemplate

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formfield/pkg/testsupport"
)

func newEngine(t *testing.T, options ...Option) *Engine {
	t.Helper()
	files := fstest.MapFS{
		"hello.tpl":   {Data: []byte("\n  Hello {{ name }}!\n")},
		"greet.tpl":   {Data: []byte(`{{ greet(name) }}`)},
		"classes.tpl": {Data: []byte(`{{ classes|classlist }}`)},
	}
	engine, err := New(append([]Option{WithFS(files)}, options...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestNew_RequiresSource(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatalf("expected error without base dir or fs")
	}
}

func TestEngine_RenderTemplateWritesTrimmedOutput(t *testing.T) {
	engine := newEngine(t)

	got, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})
	if got != "Hello Ada!" {
		t.Fatalf("unexpected result %q", got)
	}
	if written != got {
		t.Fatalf("writer mismatch: %q", written)
	}
}

func TestEngine_RenderStructUsesJSONNames(t *testing.T) {
	engine := newEngine(t)
	payload := struct {
		Name string `json:"name"`
	}{Name: "Grace"}

	got, err := engine.RenderTemplate("hello.tpl", payload)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Hello Grace!" {
		t.Fatalf("unexpected result %q", got)
	}
}

func TestEngine_TemplateFuncBecomesGlobal(t *testing.T) {
	engine := newEngine(t, WithTemplateFunc(map[string]any{
		"greet": func(name string) string { return "hi " + name },
	}))

	got, err := engine.RenderTemplate("greet", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "hi Ada" {
		t.Fatalf("unexpected result %q", got)
	}
}

func TestEngine_ClassListFilter(t *testing.T) {
	engine := newEngine(t)

	var decoded any
	if err := json.Unmarshal([]byte(`["formfield-textfield","is-wide"]`), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}

	tests := []struct {
		name    string
		classes any
		want    string
	}{
		{name: "strings", classes: []string{"a", " b  c", "a", ""}, want: "a b c"},
		{name: "decoded interfaces", classes: decoded, want: "formfield-textfield is-wide"},
		{name: "single string", classes: "x  y x", want: "x y"},
		{name: "missing", classes: nil, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.RenderTemplate("classes", map[string]any{"classes": tt.classes})
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if got != tt.want {
				t.Fatalf("class list = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEngine_BaseDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "disk.tpl"), []byte(`<b>{{ v }}</b>`), 0o600); err != nil {
		t.Fatalf("write template: %v", err)
	}
	engine, err := New(WithBaseDir(dir))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	got, err := engine.RenderTemplate("disk", map[string]any{"v": `"<x>"`})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(got, "<x>") {
		t.Fatalf("expected value to be escaped, got %q", got)
	}
}

func TestEngine_MissingTemplate(t *testing.T) {
	engine := newEngine(t)
	if _, err := engine.RenderTemplate("missing", nil); err == nil {
		t.Fatalf("expected error for missing template")
	}
	if _, err := engine.RenderTemplate("  ", nil); err == nil {
		t.Fatalf("expected error for blank name")
	}
}
