package dom

import (
	"slices"
	"strings"
)

// Attr is a single HTML attribute.
type Attr struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Descriptor describes an element without any live state. Attribute order is
// preserved so rendered output stays deterministic.
type Descriptor struct {
	Tag     string   `json:"tag"`
	Attrs   []Attr   `json:"attrs,omitempty"`
	Classes []string `json:"classes,omitempty"`
}

// Attr returns the value of the named attribute on the descriptor.
func (d Descriptor) Attr(name string) (string, bool) {
	for _, attr := range d.Attrs {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Formatter rewrites raw values before they are stored on an element. Input
// masks implement it.
type Formatter interface {
	Format(raw string) string
}

// Element is a live node. It is not safe for concurrent use.
type Element struct {
	tag      string
	attrs    []Attr
	classes  []string
	children []*Element
	parent   *Element
	doc      *Document

	value     string
	disabled  bool
	formatter Formatter
}

// New instantiates an element from a descriptor. The element is detached
// until appended to a container.
func New(desc Descriptor) *Element {
	el := &Element{
		tag:     strings.ToLower(strings.TrimSpace(desc.Tag)),
		attrs:   slices.Clone(desc.Attrs),
		classes: slices.Clone(desc.Classes),
	}
	if value, ok := desc.Attr("value"); ok {
		el.value = value
	}
	if _, ok := desc.Attr("disabled"); ok {
		el.disabled = true
	}
	return el
}

// Tag returns the lower-cased element name.
func (e *Element) Tag() string {
	return e.tag
}

// ID returns the id attribute.
func (e *Element) ID() string {
	id, _ := e.Attr("id")
	return id
}

// Attr looks up an attribute. value and disabled are reported from live
// state rather than the static attribute list.
func (e *Element) Attr(name string) (string, bool) {
	switch name {
	case "value":
		return e.value, e.value != ""
	case "disabled":
		if e.disabled {
			return "disabled", true
		}
		return "", false
	}
	for _, attr := range e.attrs {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// SetAttr sets or replaces an attribute.
func (e *Element) SetAttr(name, value string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	switch name {
	case "value":
		e.SetValue(value)
		return
	case "disabled":
		e.SetDisabled(true)
		return
	}
	for idx := range e.attrs {
		if e.attrs[idx].Name == name {
			e.attrs[idx].Value = value
			return
		}
	}
	e.attrs = append(e.attrs, Attr{Name: name, Value: value})
}

// RemoveAttr deletes an attribute if present.
func (e *Element) RemoveAttr(name string) {
	switch name {
	case "value":
		e.value = ""
		return
	case "disabled":
		e.SetDisabled(false)
		return
	}
	e.attrs = slices.DeleteFunc(e.attrs, func(attr Attr) bool {
		return attr.Name == name
	})
}

// Attrs returns the static attributes in insertion order.
func (e *Element) Attrs() []Attr {
	return slices.Clone(e.attrs)
}

// AddClass appends class names, skipping duplicates.
func (e *Element) AddClass(names ...string) {
	for _, name := range names {
		for _, class := range strings.Fields(name) {
			if !slices.Contains(e.classes, class) {
				e.classes = append(e.classes, class)
			}
		}
	}
}

// HasClass reports whether the class is present.
func (e *Element) HasClass(name string) bool {
	return slices.Contains(e.classes, strings.TrimSpace(name))
}

// Classes returns the class list.
func (e *Element) Classes() []string {
	return slices.Clone(e.classes)
}

// AppendChild attaches child to e, detaching it from any previous parent.
func (e *Element) AppendChild(child *Element) {
	if child == nil || child == e {
		return
	}
	if child.parent != nil {
		child.parent.removeChild(child)
	}
	child.parent = e
	child.adopt(e.doc)
	e.children = append(e.children, child)
}

// Remove detaches e from its parent.
func (e *Element) Remove() {
	if e.parent == nil {
		return
	}
	e.parent.removeChild(e)
	e.parent = nil
	if e.doc != nil && e.doc.active == e {
		e.doc.active = nil
	}
}

// Children returns the direct children.
func (e *Element) Children() []*Element {
	return slices.Clone(e.children)
}

// Parent returns the containing element, nil when detached.
func (e *Element) Parent() *Element {
	return e.parent
}

// Find returns the first descendant (or e itself) with the given id.
func (e *Element) Find(id string) *Element {
	if e.ID() == id {
		return e
	}
	for _, child := range e.children {
		if found := child.Find(id); found != nil {
			return found
		}
	}
	return nil
}

// Value returns the current control value.
func (e *Element) Value() string {
	return e.value
}

// SetValue stores value, passing it through the attached formatter first.
func (e *Element) SetValue(value string) {
	if e.formatter != nil && value != "" {
		value = e.formatter.Format(value)
	}
	e.value = value
}

// SetFormatter attaches a formatter (for example an input mask). Any value
// already present is reformatted.
func (e *Element) SetFormatter(f Formatter) {
	e.formatter = f
	if f != nil && e.value != "" {
		e.value = f.Format(e.value)
	}
}

// Disabled reports the disabled state.
func (e *Element) Disabled() bool {
	return e.disabled
}

// SetDisabled toggles the disabled state. Disabling the focused element
// blurs it.
func (e *Element) SetDisabled(disabled bool) {
	e.disabled = disabled
	if disabled && e.Focused() {
		e.doc.active = nil
	}
}

// Focus moves document focus to e. Disabled or detached elements cannot
// receive focus.
func (e *Element) Focus() {
	if e.disabled || e.doc == nil {
		return
	}
	e.doc.active = e
}

// Blur drops focus when e holds it.
func (e *Element) Blur() {
	if e.Focused() {
		e.doc.active = nil
	}
}

// Focused reports whether e is the document's active element.
func (e *Element) Focused() bool {
	return e.doc != nil && e.doc.active == e
}

// Descriptor snapshots the element, including live value and disabled state.
func (e *Element) Descriptor() Descriptor {
	desc := Descriptor{
		Tag:     e.tag,
		Attrs:   slices.Clone(e.attrs),
		Classes: slices.Clone(e.classes),
	}
	if e.value != "" {
		desc.Attrs = append(desc.Attrs, Attr{Name: "value", Value: e.value})
	}
	if e.disabled {
		desc.Attrs = append(desc.Attrs, Attr{Name: "disabled", Value: "disabled"})
	}
	return desc
}

func (e *Element) removeChild(child *Element) {
	e.children = slices.DeleteFunc(e.children, func(candidate *Element) bool {
		return candidate == child
	})
}

func (e *Element) adopt(doc *Document) {
	if e.doc != nil && e.doc != doc && e.doc.active == e {
		e.doc.active = nil
	}
	e.doc = doc
	for _, child := range e.children {
		child.adopt(doc)
	}
}
