package xmltree

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/jacoelho/docpath/convert"
	"github.com/jacoelho/docpath/internal/stack"
	"github.com/jacoelho/docpath/internal/tree"
	"github.com/jacoelho/docpath/internal/xpath"
)

const declaration = `<?xml version="1.0" encoding="UTF-8"?>`

// Encode writes the whole document with an XML declaration.
func (c *Cursor) Encode(w io.Writer, style tree.Style) error {
	doc := xmlquery.GetRoot(c.node)

	opts := []xmlquery.OutputOption{xmlquery.WithEmptyTagSupport()}
	if style == tree.Pretty {
		opts = append(opts, xmlquery.WithIndentation("  "))
	}
	if doc.Type != xmlquery.DocumentNode {
		opts = append(opts, xmlquery.WithOutputSelf())
	}

	if first := doc.FirstChild; doc.Type != xmlquery.DocumentNode || first == nil || first.Type != xmlquery.DeclarationNode {
		if _, err := io.WriteString(w, declaration); err != nil {
			return err
		}
	}
	if err := doc.WriteWithOptions(w, opts...); err != nil {
		return err
	}
	if style == tree.Pretty {
		_, err := io.WriteString(w, "\n")
		return err
	}
	return nil
}

// normalizeDeclaration makes the declaration name the UTF-8 encoding output
// is always written in, adding one when the source had none.
func normalizeDeclaration(doc *xmlquery.Node) {
	decl := doc.FirstChild
	if decl == nil || decl.Type != xmlquery.DeclarationNode || decl.Data != "xml" {
		return
	}
	attrs := []xmlquery.Attr{
		{Name: xml.Name{Local: "version"}, Value: "1.0"},
		{Name: xml.Name{Local: "encoding"}, Value: "UTF-8"},
	}
	for _, a := range decl.Attr {
		switch a.Name.Local {
		case "version":
			attrs[0].Value = a.Value
		case "encoding":
		default:
			attrs = append(attrs, a)
		}
	}
	decl.Attr = attrs
}

// create walks p from start, adding missing elements and a final attribute.
// An absolute path must name the existing document element first.
func create(start *xmlquery.Node, p *xpath.Path) (*xmlquery.Node, error) {
	if !p.Creatable() {
		return nil, fmt.Errorf("%w: cannot create %q", tree.ErrNotSupported, p.Source)
	}

	cur := start
	steps := p.Steps
	if p.Absolute {
		doc := xmlquery.GetRoot(start)
		if doc.Type != xmlquery.DocumentNode {
			return nil, fmt.Errorf("%w: node is detached from its document", tree.ErrNotSupported)
		}
		root := documentElement(doc)
		if len(steps) == 0 {
			return root, nil
		}
		first := steps[0]
		if first.Axis != xpath.AxisChild || len(first.Preds) > 0 && first.Preds[0].Index > 1 {
			return nil, fmt.Errorf("%w: a document has a single element, cannot create %q", tree.ErrNotSupported, p.Source)
		}
		switch {
		case root == nil:
			root = newElement(first.Name)
			xmlquery.AddChild(doc, root)
		case elementName(root) != first.Name:
			return nil, fmt.Errorf("%w: document element is %q, cannot create %q", tree.ErrNotSupported, elementName(root), p.Source)
		}
		cur, steps = root, steps[1:]
	}

	for _, step := range steps {
		if step.Axis == xpath.AxisSelf {
			continue
		}
		if cur.Type != xmlquery.ElementNode {
			return nil, fmt.Errorf("%w: cannot add %q below a non-element in %q", tree.ErrNotSupported, step.Name, p.Source)
		}
		if step.Axis == xpath.AxisAttribute {
			if !hasAttr(cur, step.Name) {
				cur.SetAttr(step.Name, "")
			}
			return attributeNode(cur, step.Name), nil
		}

		index := 1
		if len(step.Preds) == 1 {
			index = step.Preds[0].Index
		}
		matches := childElements(cur, step.Name)
		for len(matches) < index {
			elem := newElement(step.Name)
			xmlquery.AddChild(cur, elem)
			matches = append(matches, elem)
		}
		cur = matches[index-1]
	}
	return cur, nil
}

func setText(n *xmlquery.Node, value convert.Raw) {
	text := value.Text()
	switch n.Type {
	case xmlquery.AttributeNode:
		n.Parent.SetAttr(qualifiedAttr(n), text)
		n.FirstChild = &xmlquery.Node{Type: xmlquery.TextNode, Data: text}
		n.LastChild = n.FirstChild
	case xmlquery.ElementNode:
		for child := n.FirstChild; child != nil; {
			next := child.NextSibling
			xmlquery.RemoveFromTree(child)
			child = next
		}
		if text != "" {
			xmlquery.AddChild(n, &xmlquery.Node{Type: xmlquery.TextNode, Data: text})
		}
	default:
		n.Data = text
	}
}

func newElement(name string) *xmlquery.Node {
	n := &xmlquery.Node{Type: xmlquery.ElementNode, Data: name}
	if prefix, local, ok := strings.Cut(name, ":"); ok {
		n.Prefix, n.Data = prefix, local
	}
	return n
}

func attributeNode(parent *xmlquery.Node, name string) *xmlquery.Node {
	text := &xmlquery.Node{Type: xmlquery.TextNode, Data: parent.SelectAttr(name)}
	return &xmlquery.Node{
		Type:       xmlquery.AttributeNode,
		Data:       name,
		Parent:     parent,
		FirstChild: text,
		LastChild:  text,
	}
}

func hasAttr(n *xmlquery.Node, name string) bool {
	for _, a := range n.Attr {
		if attrName(a) == name {
			return true
		}
	}
	return false
}

func attrName(a xmlquery.Attr) string {
	if a.Name.Space != "" {
		return a.Name.Space + ":" + a.Name.Local
	}
	return a.Name.Local
}

// qualifiedAttr recovers the prefixed name of an attribute node, which
// xmlquery reports by local name only.
func qualifiedAttr(n *xmlquery.Node) string {
	if n.Parent == nil || strings.Contains(n.Data, ":") {
		return n.Data
	}
	for _, a := range n.Parent.Attr {
		if a.Name.Local == n.Data {
			return attrName(a)
		}
	}
	return n.Data
}

func elementName(n *xmlquery.Node) string {
	if n.Prefix != "" {
		return n.Prefix + ":" + n.Data
	}
	return n.Data
}

func childElements(n *xmlquery.Node, name string) []*xmlquery.Node {
	var out []*xmlquery.Node
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode && elementName(child) == name {
			out = append(out, child)
		}
	}
	return out
}

func hasElementChildren(n *xmlquery.Node) bool {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return true
		}
	}
	return false
}

func documentElement(doc *xmlquery.Node) *xmlquery.Node {
	for child := doc.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return child
		}
	}
	return nil
}

// trimWhitespace drops indentation text between elements so output can be
// re-indented.
func trimWhitespace(root *xmlquery.Node) {
	pending := stack.New[*xmlquery.Node]()
	pending.Push(root)
	for !pending.IsEmpty() {
		n, _ := pending.Pop()
		structural := n.Type == xmlquery.DocumentNode || hasElementChildren(n)
		for child := n.FirstChild; child != nil; {
			next := child.NextSibling
			switch {
			case child.Type == xmlquery.TextNode && structural && strings.TrimSpace(child.Data) == "":
				xmlquery.RemoveFromTree(child)
			case child.Type == xmlquery.ElementNode:
				pending.Push(child)
			}
			child = next
		}
	}
}

func clone(n *xmlquery.Node) *xmlquery.Node {
	c := &xmlquery.Node{
		Type:         n.Type,
		Data:         n.Data,
		Prefix:       n.Prefix,
		NamespaceURI: n.NamespaceURI,
		Attr:         append([]xmlquery.Attr(nil), n.Attr...),
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		xmlquery.AddChild(c, clone(child))
	}
	return c
}
