// Package xmltree implements the XML document engine on top of xmlquery.
// Lookups run as XPath 1.0 against the xmlquery DOM; creation walks the
// compiled path and adds elements and attributes.
package xmltree

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/jacoelho/docpath/convert"
	"github.com/jacoelho/docpath/internal/tree"
	"github.com/jacoelho/docpath/internal/xpath"
)

// Cursor is a tree.Cursor over an element, attribute or text node.
type Cursor struct {
	node *xmlquery.Node
}

var _ tree.Cursor = (*Cursor)(nil)

// Parse reads an XML document and returns a cursor on its document element.
func Parse(r io.Reader) (*Cursor, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", tree.ErrMalformed, err)
	}
	trimWhitespace(doc)
	normalizeDeclaration(doc)
	root := documentElement(doc)
	if root == nil {
		return nil, fmt.Errorf("%w: no document element", tree.ErrMalformed)
	}
	return &Cursor{node: root}, nil
}

// New returns a document holding an empty element named root.
func New(root string) (*Cursor, error) {
	if _, err := xpath.Compile(root); err != nil || strings.ContainsAny(root, "/@[]*") {
		return nil, fmt.Errorf("%w: %q is not an element name", tree.ErrInvalidPath, root)
	}
	doc := &xmlquery.Node{Type: xmlquery.DocumentNode}
	decl := &xmlquery.Node{Type: xmlquery.DeclarationNode, Data: "xml"}
	decl.SetAttr("version", "1.0")
	decl.SetAttr("encoding", "UTF-8")
	xmlquery.AddChild(doc, decl)
	elem := newElement(root)
	xmlquery.AddChild(doc, elem)
	return &Cursor{node: elem}, nil
}

func (c *Cursor) Format() tree.Format { return tree.FormatXML }

// query compiles path for validation and evaluates it with xmlquery. Absolute
// paths start at the document node.
func (c *Cursor) query(path string) ([]*xmlquery.Node, *xpath.Path, error) {
	p, err := xpath.Compile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", tree.ErrInvalidPath, err)
	}
	top := c.node
	if p.Absolute {
		top = xmlquery.GetRoot(c.node)
	}
	nodes, err := xmlquery.QueryAll(top, p.Source)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", tree.ErrInvalidPath, err)
	}
	return nodes, p, nil
}

func (c *Cursor) Lookup(path string) (convert.Raw, error) {
	nodes, _, err := c.query(path)
	if err != nil {
		return convert.Raw{}, err
	}
	if len(nodes) == 0 {
		return convert.Raw{}, fmt.Errorf("%w: %s", tree.ErrNotFound, path)
	}
	return rawOf(nodes[0]), nil
}

func (c *Cursor) Values(path string) ([]convert.Raw, error) {
	nodes, _, err := c.query(path)
	if err != nil {
		return nil, err
	}
	out := make([]convert.Raw, len(nodes))
	for i, n := range nodes {
		out[i] = rawOf(n)
	}
	return out, nil
}

func (c *Cursor) Select(path string) ([]tree.Cursor, error) {
	nodes, _, err := c.query(path)
	if err != nil {
		return nil, err
	}
	return cursors(nodes), nil
}

func (c *Cursor) First(path string) (tree.Cursor, error) {
	nodes, _, err := c.query(path)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: %s", tree.ErrNotFound, path)
	}
	return &Cursor{node: nodes[0]}, nil
}

func (c *Cursor) Create(path string) (tree.Cursor, error) {
	p, err := xpath.Compile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", tree.ErrInvalidPath, err)
	}
	n, err := c.locate(p)
	if err != nil {
		return nil, err
	}
	return &Cursor{node: n}, nil
}

// locate returns the first node p already addresses and creates the missing
// steps only when nothing matches.
func (c *Cursor) locate(p *xpath.Path) (*xmlquery.Node, error) {
	if len(p.Steps) > 0 {
		top := c.node
		if p.Absolute {
			top = xmlquery.GetRoot(c.node)
		}
		nodes, err := xmlquery.QueryAll(top, p.Source)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", tree.ErrInvalidPath, err)
		}
		if len(nodes) > 0 {
			return nodes[0], nil
		}
	}
	return create(c.node, p)
}

// Set stores value as the text of an element or the value of an attribute.
// Null empties the element.
func (c *Cursor) Set(path string, value convert.Raw) error {
	target, err := c.Create(path)
	if err != nil {
		return err
	}
	setText(target.(*Cursor).node, value)
	return nil
}

func (c *Cursor) SetList(path string, values []convert.Raw) error {
	parent, name, err := c.prepareList(path)
	if err != nil {
		return err
	}
	for _, v := range values {
		elem := newElement(name)
		setText(elem, v)
		xmlquery.AddChild(parent, elem)
	}
	return nil
}

// SetNodes stores copies of nodes renamed to the final step of path.
func (c *Cursor) SetNodes(path string, nodes []tree.Cursor) error {
	copies := make([]*xmlquery.Node, 0, len(nodes))
	for _, other := range nodes {
		oc, ok := other.(*Cursor)
		if !ok {
			return fmt.Errorf("%w: cannot store %s nodes in an xml document", tree.ErrIncompatible, other.Format())
		}
		if oc.node.Type != xmlquery.ElementNode {
			return fmt.Errorf("%w: only elements can be copied", tree.ErrNotSupported)
		}
		copies = append(copies, clone(oc.node))
	}

	parent, name, err := c.prepareList(path)
	if err != nil {
		return err
	}
	for _, n := range copies {
		n.Data = name
		n.Prefix = ""
		xmlquery.AddChild(parent, n)
	}
	return nil
}

// prepareList creates the parent of path and removes the elements path
// currently names, returning the parent and the element name.
func (c *Cursor) prepareList(path string) (*xmlquery.Node, string, error) {
	p, err := xpath.Compile(path)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", tree.ErrInvalidPath, err)
	}
	if len(p.Steps) == 0 {
		return nil, "", fmt.Errorf("%w: %q names no element", tree.ErrNotSupported, path)
	}
	last := p.Steps[len(p.Steps)-1]
	if last.Axis != xpath.AxisChild || last.Wildcard || len(last.Preds) > 0 {
		return nil, "", fmt.Errorf("%w: lists need a plain element name, got %q", tree.ErrNotSupported, path)
	}

	parts, err := xpath.Split(path)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", tree.ErrInvalidPath, err)
	}
	parentPath := &xpath.Path{
		Absolute: p.Absolute,
		Steps:    p.Steps[:len(p.Steps)-1],
		Source:   strings.Join(parts[:len(parts)-1], "/"),
	}
	parent, err := c.locate(parentPath)
	if err != nil {
		return nil, "", err
	}
	if parent.Type != xmlquery.ElementNode {
		return nil, "", fmt.Errorf("%w: cannot add %q below a non-element", tree.ErrNotSupported, last.Name)
	}
	for _, existing := range childElements(parent, last.Name) {
		xmlquery.RemoveFromTree(existing)
	}
	return parent, last.Name, nil
}

func (c *Cursor) Remove(path string) (int, error) {
	nodes, _, err := c.query(path)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, n := range nodes {
		switch {
		case n.Type == xmlquery.AttributeNode:
			n.Parent.RemoveAttr(qualifiedAttr(n))
		case n.Parent == nil || n.Parent.Type == xmlquery.DocumentNode:
			return removed, fmt.Errorf("%w: cannot remove the document element", tree.ErrNotSupported)
		default:
			xmlquery.RemoveFromTree(n)
		}
		removed++
	}
	return removed, nil
}

func (c *Cursor) Children() ([]string, error) {
	var names []string
	for child := c.node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode && !slices.Contains(names, elementName(child)) {
			names = append(names, elementName(child))
		}
	}
	return names, nil
}

// Query evaluates a full XPath 1.0 expression.
func (c *Cursor) Query(expr string) ([]tree.Cursor, error) {
	nodes, err := xmlquery.QueryAll(c.node, expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", tree.ErrInvalidPath, err)
	}
	return cursors(nodes), nil
}

// Equal compares the compact serializations of both documents.
func (c *Cursor) Equal(other tree.Cursor) bool {
	oc, ok := other.(*Cursor)
	if !ok {
		return false
	}
	var a, b strings.Builder
	if err := c.Encode(&a, tree.Compact); err != nil {
		return false
	}
	if err := oc.Encode(&b, tree.Compact); err != nil {
		return false
	}
	return a.String() == b.String()
}

func cursors(nodes []*xmlquery.Node) []tree.Cursor {
	out := make([]tree.Cursor, len(nodes))
	for i, n := range nodes {
		out[i] = &Cursor{node: n}
	}
	return out
}

// rawOf reads attributes and leaf elements as text and elements with child
// elements as their compact markup.
func rawOf(n *xmlquery.Node) convert.Raw {
	switch n.Type {
	case xmlquery.AttributeNode:
		if n.Parent != nil {
			return convert.RawString(n.Parent.SelectAttr(qualifiedAttr(n)))
		}
		return convert.RawString(n.InnerText())
	case xmlquery.ElementNode:
		if hasElementChildren(n) {
			return convert.RawString(n.OutputXML(true))
		}
	}
	return convert.RawString(n.InnerText())
}
