package render

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultRegistry(t *testing.T) {
	registry, err := NewDefaultRegistry(nil)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	if diff := cmp.Diff([]string{"html", "json"}, registry.Names()); diff != "" {
		t.Fatalf("renderers mismatch (-want +got):\n%s", diff)
	}
	if err := registry.Register(NewJSONRenderer(nil, "")); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
}

func TestRegistry_Lookup(t *testing.T) {
	registry, err := NewDefaultRegistry(nil)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}

	r, err := registry.Lookup("")
	if err != nil {
		t.Fatalf("lookup default: %v", err)
	}
	if r.Name() != DefaultRenderer {
		t.Fatalf("expected %q for blank name, got %q", DefaultRenderer, r.Name())
	}

	r, err = registry.Lookup(" JSON ")
	if err != nil {
		t.Fatalf("lookup json: %v", err)
	}
	if r.Name() != "json" {
		t.Fatalf("expected json renderer, got %q", r.Name())
	}

	if _, err := registry.Lookup("xml"); !errors.Is(err, ErrUnknownRenderer) {
		t.Fatalf("expected ErrUnknownRenderer, got %v", err)
	}
}

func TestRegistry_Negotiate(t *testing.T) {
	registry, err := NewDefaultRegistry(nil)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}

	tests := []struct {
		accept string
		want   string
	}{
		{accept: "", want: "html"},
		{accept: "application/json", want: "json"},
		{accept: "application/xml, application/json;q=0.8", want: "json"},
		{accept: "text/html, application/json", want: "html"},
		{accept: "*/*, application/json", want: "html"},
		{accept: "not a media type;;, application/json", want: "json"},
		{accept: "image/png", want: "html"},
	}
	for _, tt := range tests {
		t.Run(tt.accept, func(t *testing.T) {
			r, err := registry.Negotiate(tt.accept)
			if err != nil {
				t.Fatalf("negotiate: %v", err)
			}
			if r.Name() != tt.want {
				t.Fatalf("Negotiate(%q) = %q, want %q", tt.accept, r.Name(), tt.want)
			}
		})
	}
}

func TestNewRegistry_RejectsNil(t *testing.T) {
	if _, err := NewRegistry(nil); err == nil {
		t.Fatalf("expected error for nil renderer")
	}
}
