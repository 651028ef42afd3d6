package jsontree

import (
	"fmt"

	"github.com/theory/jsonpath"
	"github.com/theory/jsonpath/spec"

	"github.com/jacoelho/docpath/internal/tree"
)

// Query evaluates an RFC 9535 JSONPath expression relative to this node and
// returns cursors for the located nodes.
func (c *Cursor) Query(expr string) ([]tree.Cursor, error) {
	p, err := jsonpath.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", tree.ErrInvalidPath, err)
	}

	located := p.SelectLocated(c.node.plain())
	out := make([]tree.Cursor, 0, len(located))
	for _, ln := range located {
		n, ok := resolve(c.node, ln.Path)
		if !ok {
			return nil, fmt.Errorf("%w: query result %s is not in the document", tree.ErrNotFound, ln.Path)
		}
		out = append(out, c.at(n))
	}
	return out, nil
}

// resolve follows a normalized path from n.
func resolve(n *Node, path spec.NormalizedPath) (*Node, bool) {
	for _, sel := range path {
		switch s := sel.(type) {
		case spec.Name:
			if n.kind != kindObject {
				return nil, false
			}
			child, ok := n.fields[string(s)]
			if !ok {
				return nil, false
			}
			n = child
		case spec.Index:
			i := int(s)
			if n.kind != kindArray || i < 0 || i >= len(n.items) {
				return nil, false
			}
			n = n.items[i]
		default:
			return nil, false
		}
	}
	return n, true
}
