package dom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type upperFormatter struct{}

func (upperFormatter) Format(raw string) string {
	out := []rune(raw)
	for i, r := range out {
		if r >= 'a' && r <= 'z' {
			out[i] = r - 32
		}
	}
	return string(out)
}

func TestElement_AttributesKeepOrder(t *testing.T) {
	el := New(Descriptor{
		Tag:   "INPUT",
		Attrs: []Attr{{Name: "type", Value: "text"}, {Name: "id", Value: "name"}},
	})
	el.SetAttr("size", "40")
	el.SetAttr("type", "search")

	want := []Attr{
		{Name: "type", Value: "search"},
		{Name: "id", Value: "name"},
		{Name: "size", Value: "40"},
	}
	if diff := cmp.Diff(want, el.Attrs()); diff != "" {
		t.Fatalf("attrs mismatch (-want +got):\n%s", diff)
	}
	if el.Tag() != "input" {
		t.Fatalf("expected lower-cased tag, got %q", el.Tag())
	}

	el.RemoveAttr("size")
	if _, ok := el.Attr("size"); ok {
		t.Fatalf("expected size removed")
	}
}

func TestElement_AppendChildMovesBetweenParents(t *testing.T) {
	doc := NewDocument()
	first := doc.CreateElement(Descriptor{Tag: "div", Attrs: []Attr{{Name: "id", Value: "first"}}})
	second := doc.CreateElement(Descriptor{Tag: "div", Attrs: []Attr{{Name: "id", Value: "second"}}})
	doc.Body().AppendChild(first)
	doc.Body().AppendChild(second)

	input := New(Descriptor{Tag: "input", Attrs: []Attr{{Name: "id", Value: "control"}}})
	first.AppendChild(input)
	second.AppendChild(input)

	if len(first.Children()) != 0 {
		t.Fatalf("expected child moved out of first container")
	}
	if input.Parent() != second {
		t.Fatalf("expected second container as parent")
	}
	if doc.GetElementByID("control") != input {
		t.Fatalf("expected lookup by id to find the moved input")
	}
}

func TestElement_FocusTracking(t *testing.T) {
	doc := NewDocument()
	a := doc.CreateElement(Descriptor{Tag: "input"})
	b := doc.CreateElement(Descriptor{Tag: "input"})
	doc.Body().AppendChild(a)
	doc.Body().AppendChild(b)

	a.Focus()
	if doc.ActiveElement() != a || !a.Focused() {
		t.Fatalf("expected a focused")
	}
	b.Focus()
	if a.Focused() || !b.Focused() {
		t.Fatalf("expected focus to move to b")
	}

	b.SetDisabled(true)
	if doc.ActiveElement() != nil {
		t.Fatalf("disabling the focused element should blur it")
	}
	b.Focus()
	if b.Focused() {
		t.Fatalf("disabled element must not take focus")
	}

	detached := New(Descriptor{Tag: "input"})
	detached.Focus()
	if detached.Focused() {
		t.Fatalf("detached element has no document to focus in")
	}
}

func TestElement_ValueFormatter(t *testing.T) {
	el := New(Descriptor{Tag: "input"})
	el.SetValue("abc")
	el.SetFormatter(upperFormatter{})
	if got := el.Value(); got != "ABC" {
		t.Fatalf("existing value should be reformatted, got %q", got)
	}
	el.SetValue("xy")
	if got := el.Value(); got != "XY" {
		t.Fatalf("expected formatted value, got %q", got)
	}
	el.SetValue("")
	if got := el.Value(); got != "" {
		t.Fatalf("expected empty value, got %q", got)
	}
}

func TestElement_RenderHTML(t *testing.T) {
	el := New(Descriptor{
		Tag:     "input",
		Attrs:   []Attr{{Name: "type", Value: "text"}, {Name: "data-note", Value: `a "quoted" <b>`}},
		Classes: []string{"formfield-textfield"},
	})
	el.SetValue("hi")
	el.SetDisabled(true)

	got, err := el.RenderHTML()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `<input type="text" data-note="a &#34;quoted&#34; &lt;b&gt;" value="hi" disabled="disabled" class="formfield-textfield"/>`
	if got != want {
		t.Fatalf("render mismatch\nwant: %s\n got: %s", want, got)
	}

	parsed, err := ParseFragment(got)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(parsed) != 1 {
		t.Fatalf("expected one element, got %d", len(parsed))
	}
	if note, _ := parsed[0].Attr("data-note"); note != `a "quoted" <b>` {
		t.Fatalf("round trip lost attribute value: %q", note)
	}
}
