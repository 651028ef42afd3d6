package jsontree

import (
	"slices"

	"github.com/jacoelho/docpath/convert"
)

type kind uint8

const (
	kindScalar kind = iota
	kindObject
	kindArray
)

// Node is a mutable JSON value that remembers object key order.
type Node struct {
	kind   kind
	keys   []string
	fields map[string]*Node
	items  []*Node
	value  convert.Raw
	parent *Node
}

func newObject() *Node {
	return &Node{kind: kindObject, fields: make(map[string]*Node)}
}

func newArray() *Node {
	return &Node{kind: kindArray}
}

func newScalar(raw convert.Raw) *Node {
	return &Node{kind: kindScalar, value: raw}
}

func (n *Node) isNull() bool {
	return n.kind == kindScalar && n.value.IsNull()
}

func (n *Node) field(name string) (*Node, bool) {
	if n.kind != kindObject {
		return nil, false
	}
	child, ok := n.fields[name]
	return child, ok
}

// put sets name to child, keeping the position of an existing key.
func (n *Node) put(name string, child *Node) {
	if old, ok := n.fields[name]; ok {
		old.parent = nil
	} else {
		n.keys = append(n.keys, name)
	}
	child.parent = n
	n.fields[name] = child
}

func (n *Node) appendItem(child *Node) {
	child.parent = n
	n.items = append(n.items, child)
}

// detach removes n from its parent. It reports false for roots.
func (n *Node) detach() bool {
	p := n.parent
	if p == nil {
		return false
	}
	switch p.kind {
	case kindObject:
		for i, k := range p.keys {
			if p.fields[k] == n {
				p.keys = slices.Delete(p.keys, i, i+1)
				delete(p.fields, k)
				break
			}
		}
	case kindArray:
		if i := slices.Index(p.items, n); i >= 0 {
			p.items = slices.Delete(p.items, i, i+1)
		}
	}
	n.parent = nil
	return true
}

// replaceWith overwrites n's content with src's, keeping n's place in the tree.
func (n *Node) replaceWith(src *Node) {
	n.kind = src.kind
	n.value = src.value
	n.keys = src.keys
	n.fields = src.fields
	n.items = src.items
	for _, c := range n.fields {
		c.parent = n
	}
	for _, c := range n.items {
		c.parent = n
	}
}

func (n *Node) setScalar(raw convert.Raw) {
	n.replaceWith(newScalar(raw))
}

func (n *Node) clone() *Node {
	c := &Node{kind: n.kind, value: n.value}
	switch n.kind {
	case kindObject:
		c.fields = make(map[string]*Node, len(n.fields))
		for _, k := range n.keys {
			c.put(k, n.fields[k].clone())
		}
	case kindArray:
		for _, item := range n.items {
			c.appendItem(item.clone())
		}
	}
	return c
}

func (n *Node) root() *Node {
	for n.parent != nil {
		n = n.parent
	}
	return n
}

func (n *Node) equal(o *Node) bool {
	if n.kind != o.kind {
		return false
	}
	switch n.kind {
	case kindObject:
		if len(n.fields) != len(o.fields) {
			return false
		}
		for k, v := range n.fields {
			ov, ok := o.fields[k]
			if !ok || !v.equal(ov) {
				return false
			}
		}
		return true
	case kindArray:
		return slices.EqualFunc(n.items, o.items, (*Node).equal)
	default:
		return n.value == o.value
	}
}

// plain converts n to the generic form used by encoders and query engines:
// map[string]any, []any and Go scalars.
func (n *Node) plain() any {
	switch n.kind {
	case kindObject:
		m := make(map[string]any, len(n.fields))
		for k, v := range n.fields {
			m[k] = v.plain()
		}
		return m
	case kindArray:
		s := make([]any, len(n.items))
		for i, item := range n.items {
			s[i] = item.plain()
		}
		return s
	default:
		return rawToAny(n.value)
	}
}

func rawToAny(raw convert.Raw) any {
	switch raw.Kind() {
	case convert.KindString:
		s, _ := raw.Str()
		return s
	case convert.KindBool:
		b, _ := raw.Bool()
		return b
	case convert.KindInt:
		i, _ := raw.Int()
		return i
	case convert.KindFloat:
		f, _ := raw.Float()
		return f
	default:
		return nil
	}
}
