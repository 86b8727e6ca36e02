package dom

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RenderHTML serialises the element subtree, including live value and
// disabled state.
func (e *Element) RenderHTML() (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, e.node()); err != nil {
		return "", fmt.Errorf("dom: render %s: %w", e.tag, err)
	}
	return buf.String(), nil
}

// ParseFragment parses markup into descriptors for its top-level elements.
// Text nodes are ignored. It is used to check template output against the
// descriptor a field produced.
func ParseFragment(markup string) ([]Descriptor, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, fmt.Errorf("dom: parse fragment: %w", err)
	}
	var out []Descriptor
	for _, node := range nodes {
		if node.Type != html.ElementNode {
			continue
		}
		desc := Descriptor{Tag: node.Data}
		for _, attr := range node.Attr {
			if attr.Key == "class" {
				desc.Classes = strings.Fields(attr.Val)
				continue
			}
			desc.Attrs = append(desc.Attrs, Attr{Name: attr.Key, Value: attr.Val})
		}
		out = append(out, desc)
	}
	return out, nil
}

func (e *Element) node() *html.Node {
	desc := e.Descriptor()
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     desc.Tag,
		DataAtom: atom.Lookup([]byte(desc.Tag)),
	}
	for _, attr := range desc.Attrs {
		n.Attr = append(n.Attr, html.Attribute{Key: attr.Name, Val: attr.Value})
	}
	if len(desc.Classes) > 0 {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: strings.Join(desc.Classes, " ")})
	}
	for _, child := range e.children {
		n.AppendChild(child.node())
	}
	return n
}
