package registry

import (
	"errors"
	"testing"

	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/model"
)

func TestResolve_Defaults(t *testing.T) {
	reg := New()

	cases := []struct {
		name   string
		schema model.FieldSchema
		expect string
		ok     bool
	}{
		{name: "string", schema: model.FieldSchema{Type: "string"}, expect: field.TypeText, ok: true},
		{name: "any", schema: model.FieldSchema{Type: "any"}, expect: field.TypeText, ok: true},
		{name: "untyped falls back to any", schema: model.FieldSchema{}, expect: field.TypeText, ok: true},
		{name: "case insensitive", schema: model.FieldSchema{Type: " String "}, expect: field.TypeText, ok: true},
		{name: "unmapped", schema: model.FieldSchema{Type: "boolean"}, ok: false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := reg.Resolve(tc.schema, nil)
			if ok != tc.ok || got != tc.expect {
				t.Fatalf("resolve %s: want %q (ok=%v), got %q (ok=%v)", tc.name, tc.expect, tc.ok, got, ok)
			}
		})
	}
}

func TestResolve_ExplicitHintWins(t *testing.T) {
	reg := New()
	reg.Match("custom", 999, func(model.FieldSchema, map[string]string) bool { return true })

	got, ok := reg.Resolve(model.FieldSchema{Type: "string"}, map[string]string{"widget": "Text"})
	if !ok || got != field.TypeText {
		t.Fatalf("expected explicit widget to win, got %q (ok=%v)", got, ok)
	}
}

func TestResolve_PriorityOrder(t *testing.T) {
	reg := New()
	reg.Match("low", 10, func(schema model.FieldSchema, _ map[string]string) bool { return schema.Pattern != "" })
	reg.Match("high", 20, func(schema model.FieldSchema, _ map[string]string) bool { return schema.Pattern != "" })
	reg.Match("tie", 20, func(schema model.FieldSchema, _ map[string]string) bool { return schema.Pattern != "" })

	got, ok := reg.Resolve(model.FieldSchema{Type: "string", Pattern: "x"}, nil)
	if !ok || got != "high" {
		t.Fatalf("priority matcher should win, got %q (ok=%v)", got, ok)
	}

	got, _ = reg.Resolve(model.FieldSchema{Type: "string"}, nil)
	if got != field.TypeText {
		t.Fatalf("non-matching schemas should fall back to the type mapping, got %q", got)
	}
}

func TestBuild_CreatesTextField(t *testing.T) {
	reg := New()
	f, err := reg.Build("title", model.FieldSchema{Type: "string"}, model.FieldSettings{}, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if f.Type() != field.TypeText || f.ID() != "title" {
		t.Fatalf("unexpected field %s/%s", f.Type(), f.ID())
	}
	if _, ok := f.(*field.TextField); !ok {
		t.Fatalf("expected *field.TextField, got %T", f)
	}
}

func TestBuild_UnknownType(t *testing.T) {
	reg := New()
	if _, err := reg.Build("flag", model.FieldSchema{Type: "boolean"}, model.FieldSettings{}, nil); !errors.Is(err, ErrUnknownFieldType) {
		t.Fatalf("expected ErrUnknownFieldType, got %v", err)
	}
	if _, err := reg.Create("missing", "id", model.FieldSchema{}, model.FieldSettings{}); !errors.Is(err, ErrUnknownFieldType) {
		t.Fatalf("expected ErrUnknownFieldType, got %v", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	reg := New()
	if err := reg.Register(" ", nil); err == nil {
		t.Fatalf("expected error for blank name")
	}
	if err := reg.Register("x", nil); err == nil {
		t.Fatalf("expected error for nil factory")
	}
	if !reg.Has("TEXT") {
		t.Fatalf("expected builtin text field")
	}
	if names := reg.Names(); len(names) != 1 || names[0] != field.TypeText {
		t.Fatalf("unexpected names %v", names)
	}
}

func TestRegistries_AreIndependent(t *testing.T) {
	a := New()
	b := New()
	a.MapSchemaType("boolean", field.TypeText)
	if _, ok := b.Resolve(model.FieldSchema{Type: "boolean"}, nil); ok {
		t.Fatalf("mapping leaked between registries")
	}
}
