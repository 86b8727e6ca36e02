package dom

// Document owns a root element and tracks which element has focus.
type Document struct {
	root   *Element
	active *Element
}

// NewDocument creates a document with an empty body root.
func NewDocument() *Document {
	doc := &Document{}
	doc.root = &Element{tag: "body", doc: doc}
	return doc
}

// Body returns the root element.
func (d *Document) Body() *Element {
	return d.root
}

// CreateElement instantiates a descriptor bound to d. The element still has
// to be appended somewhere before it is part of the tree.
func (d *Document) CreateElement(desc Descriptor) *Element {
	el := New(desc)
	el.doc = d
	return el
}

// ActiveElement returns the focused element, nil when nothing has focus.
func (d *Document) ActiveElement() *Element {
	return d.active
}

// GetElementByID searches the tree below the body.
func (d *Document) GetElementByID(id string) *Element {
	if id == "" {
		return nil
	}
	return d.root.Find(id)
}
