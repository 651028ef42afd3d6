// Package jsontree implements the JSON and YAML document engine: an ordered
// mutable tree, path evaluation and creation, codecs and JSONPath queries.
package jsontree

import (
	"fmt"
	"io"
	"slices"

	"github.com/jacoelho/docpath/convert"
	"github.com/jacoelho/docpath/internal/tree"
	"github.com/jacoelho/docpath/internal/xpath"
)

// Cursor is a tree.Cursor over a JSON or YAML document.
type Cursor struct {
	node   *Node
	format tree.Format
}

var _ tree.Cursor = (*Cursor)(nil)

// Parse decodes r as JSON.
func Parse(r io.Reader) (*Cursor, error) {
	n, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return &Cursor{node: n, format: tree.FormatJSON}, nil
}

// ParseYAML decodes r as YAML.
func ParseYAML(r io.Reader) (*Cursor, error) {
	n, err := DecodeYAML(r)
	if err != nil {
		return nil, err
	}
	return &Cursor{node: n, format: tree.FormatYAML}, nil
}

// New returns an empty object document in the given format.
func New(format tree.Format) *Cursor {
	return &Cursor{node: newObject(), format: format}
}

func (c *Cursor) at(n *Node) *Cursor {
	return &Cursor{node: n, format: c.format}
}

func (c *Cursor) Format() tree.Format { return c.format }

func (c *Cursor) compile(path string) (*xpath.Path, error) {
	p, err := xpath.Compile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", tree.ErrInvalidPath, err)
	}
	return p, nil
}

func (c *Cursor) eval(path string, expand bool) ([]*Node, error) {
	p, err := c.compile(path)
	if err != nil {
		return nil, err
	}
	return evaluate(c.node, p, expand), nil
}

func (c *Cursor) Lookup(path string) (convert.Raw, error) {
	nodes, err := c.eval(path, false)
	if err != nil {
		return convert.Raw{}, err
	}
	if len(nodes) == 0 {
		return convert.Raw{}, fmt.Errorf("%w: %s", tree.ErrNotFound, path)
	}
	return rawOf(nodes[0])
}

func (c *Cursor) Values(path string) ([]convert.Raw, error) {
	nodes, err := c.eval(path, true)
	if err != nil {
		return nil, err
	}
	out := make([]convert.Raw, 0, len(nodes))
	for _, n := range nodes {
		raw, err := rawOf(n)
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return out, nil
}

func (c *Cursor) Select(path string) ([]tree.Cursor, error) {
	nodes, err := c.eval(path, true)
	if err != nil {
		return nil, err
	}
	return c.cursors(nodes), nil
}

func (c *Cursor) First(path string) (tree.Cursor, error) {
	nodes, err := c.eval(path, false)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: %s", tree.ErrNotFound, path)
	}
	return c.at(nodes[0]), nil
}

func (c *Cursor) Create(path string) (tree.Cursor, error) {
	n, err := c.locate(path)
	if err != nil {
		return nil, err
	}
	return c.at(n), nil
}

// locate returns the first node path already addresses and creates the
// missing steps only when nothing matches.
func (c *Cursor) locate(path string) (*Node, error) {
	p, err := c.compile(path)
	if err != nil {
		return nil, err
	}
	if nodes := evaluate(c.node, p, false); len(nodes) > 0 {
		return nodes[0], nil
	}
	return create(c.node, p)
}

func (c *Cursor) Set(path string, value convert.Raw) error {
	n, err := c.locate(path)
	if err != nil {
		return err
	}
	n.setScalar(value)
	return nil
}

func (c *Cursor) SetList(path string, values []convert.Raw) error {
	arr := newArray()
	for _, v := range values {
		arr.appendItem(newScalar(v))
	}
	return c.replace(path, arr)
}

// SetNodes stores a copy of a single node as is and several nodes as an array.
func (c *Cursor) SetNodes(path string, nodes []tree.Cursor) error {
	copies := make([]*Node, 0, len(nodes))
	for _, other := range nodes {
		oc, ok := other.(*Cursor)
		if !ok {
			return fmt.Errorf("%w: cannot store %s nodes in a %s document", tree.ErrIncompatible, other.Format(), c.format)
		}
		copies = append(copies, oc.node.clone())
	}
	if len(copies) == 1 {
		return c.replace(path, copies[0])
	}
	arr := newArray()
	for _, n := range copies {
		arr.appendItem(n)
	}
	return c.replace(path, arr)
}

func (c *Cursor) replace(path string, content *Node) error {
	n, err := c.locate(path)
	if err != nil {
		return err
	}
	n.replaceWith(content)
	return nil
}

func (c *Cursor) Remove(path string) (int, error) {
	nodes, err := c.eval(path, false)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, n := range nodes {
		if n.parent == nil {
			return removed, fmt.Errorf("%w: cannot remove the document root", tree.ErrNotSupported)
		}
		if n.detach() {
			removed++
		}
	}
	return removed, nil
}

func (c *Cursor) Children() ([]string, error) {
	var names []string
	collect := func(n *Node) {
		for _, k := range n.keys {
			if !slices.Contains(names, k) {
				names = append(names, k)
			}
		}
	}
	switch c.node.kind {
	case kindObject:
		collect(c.node)
	case kindArray:
		for _, item := range flattenAll(c.node.items) {
			if item.kind == kindObject {
				collect(item)
			}
		}
	}
	return names, nil
}

func (c *Cursor) Encode(w io.Writer, style tree.Style) error {
	root := c.node.root()
	if c.format == tree.FormatYAML {
		return EncodeYAML(w, root, style)
	}
	return Encode(w, root, style)
}

// Equal compares whole documents, ignoring object key order.
func (c *Cursor) Equal(other tree.Cursor) bool {
	oc, ok := other.(*Cursor)
	if !ok {
		return false
	}
	return c.node.root().equal(oc.node.root())
}

func (c *Cursor) cursors(nodes []*Node) []tree.Cursor {
	out := make([]tree.Cursor, len(nodes))
	for i, n := range nodes {
		out[i] = c.at(n)
	}
	return out
}

// rawOf reads a scalar as is and a container as its compact JSON text.
func rawOf(n *Node) (convert.Raw, error) {
	if n.kind == kindScalar {
		return n.value, nil
	}
	s, err := compactString(n)
	if err != nil {
		return convert.Raw{}, err
	}
	return convert.RawString(s), nil
}
