package docpath

import (
	"context"
	"errors"
	"log/slog"
	"reflect"
	"strings"

	"github.com/jacoelho/docpath/convert"
	"github.com/jacoelho/docpath/internal/tree"
	"github.com/jacoelho/docpath/internal/xpath"
)

// Node is a position in a parsed document. Nodes obtained from the same
// document share it, so a change made through one is visible through all.
// A Node is not safe for concurrent mutation.
type Node struct {
	cursor   tree.Cursor
	registry *convert.Registry
	logger   *slog.Logger
}

func newNode(c tree.Cursor, opts []Option) *Node {
	n := &Node{
		cursor:   c,
		registry: convert.Default(),
		logger:   defaultLogger(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *Node) at(c tree.Cursor) *Node {
	return &Node{cursor: c, registry: n.registry, logger: n.logger}
}

func (n *Node) nodes(cs []tree.Cursor) []*Node {
	out := make([]*Node, len(cs))
	for i, c := range cs {
		out[i] = n.at(c)
	}
	return out
}

// Format reports the syntax of the node's document.
func (n *Node) Format() Format {
	return n.cursor.Format()
}

// Registry returns the converters this node reads and writes with.
func (n *Node) Registry() *convert.Registry {
	return n.registry
}

// WithRegistry returns a node at the same position that converts with r.
// A nil registry restores convert.Default().
func (n *Node) WithRegistry(r *convert.Registry) *Node {
	if r == nil {
		r = convert.Default()
	}
	n.logger.LogAttrs(context.Background(), slog.LevelDebug, "registry rebound",
		slog.String("format", n.Format().String()),
		slog.Int("converters", len(r.Names())),
	)
	return &Node{cursor: n.cursor, registry: r, logger: n.logger}
}

// WithLogger returns a node at the same position that logs to logger.
func (n *Node) WithLogger(logger *slog.Logger) *Node {
	out := &Node{cursor: n.cursor, registry: n.registry}
	WithLogger(logger)(out)
	return out
}

// Get returns the first node path selects.
func (n *Node) Get(path string) (*Node, error) {
	c, err := n.cursor.First(path)
	if err != nil {
		return nil, n.fail("get", path, err)
	}
	return n.at(c), nil
}

// Exists reports whether path selects at least one node, null values
// included. Invalid paths report false.
func (n *Node) Exists(path string) bool {
	_, err := n.cursor.First(path)
	return err == nil
}

// Has reports whether path selects a value whose text is not blank.
func (n *Node) Has(path string) bool {
	raw, err := n.cursor.Lookup(path)
	return err == nil && strings.TrimSpace(raw.Text()) != ""
}

// List returns every node path selects, in document order. A path that
// selects nothing yields an empty list.
func (n *Node) List(path string) ([]*Node, error) {
	cs, err := n.cursor.Select(path)
	if err != nil {
		return nil, n.fail("list", path, err)
	}
	return n.nodes(cs), nil
}

// GetAs reads the value at path and converts it to t.
func (n *Node) GetAs(path string, t reflect.Type) (any, error) {
	raw, err := n.cursor.Lookup(path)
	if err != nil {
		return nil, n.fail("get", path, err)
	}
	v, err := n.read(raw, t)
	if err != nil {
		return nil, &PathError{Op: "get", Path: path, Err: err}
	}
	return v, nil
}

// Add returns the node at path, creating it and any missing parents.
func (n *Node) Add(path string) (*Node, error) {
	c, err := n.cursor.Create(path)
	if err != nil {
		return nil, n.fail("add", path, err)
	}
	return n.at(c), nil
}

// With converts value by its dynamic type and stores it at path, creating
// the path when needed. A nil value stores null. It returns the receiver.
func (n *Node) With(path string, value any) (*Node, error) {
	raw := convert.RawNull()
	if value != nil {
		var err error
		raw, err = n.write(value, reflect.TypeOf(value))
		if err != nil {
			return nil, &PathError{Op: "with", Path: path, Err: err}
		}
	}
	if err := n.cursor.Set(path, raw); err != nil {
		return nil, n.fail("with", path, err)
	}
	return n, nil
}

// WithNodes replaces whatever path selects with copies of the given nodes,
// which must come from documents of the same format.
func (n *Node) WithNodes(path string, nodes ...*Node) (*Node, error) {
	cs := make([]tree.Cursor, len(nodes))
	for i, other := range nodes {
		cs[i] = other.cursor
	}
	if err := n.cursor.SetNodes(path, cs); err != nil {
		return nil, n.fail("with", path, err)
	}
	return n, nil
}

// Remove deletes every node path selects. Selecting nothing is not an error.
func (n *Node) Remove(path string) error {
	removed, err := n.cursor.Remove(path)
	if err != nil {
		return n.fail("remove", path, err)
	}
	if removed == 0 {
		n.logger.LogAttrs(context.Background(), slog.LevelDebug, "remove matched nothing",
			slog.String("path", path),
		)
	}
	return nil
}

// Children lists the names of the node's child fields or elements in
// document order.
func (n *Node) Children() ([]string, error) {
	names, err := n.cursor.Children()
	if err != nil {
		return nil, &PathError{Op: "children", Path: ".", Err: err}
	}
	return names, nil
}

// Query evaluates a query in the document's native language: JSONPath
// (RFC 9535) for JSON and YAML, XPath 1.0 for XML.
func (n *Node) Query(expr string) ([]*Node, error) {
	cs, err := n.cursor.Query(expr)
	if err != nil {
		return nil, &PathError{Op: "query", Path: expr, Err: err}
	}
	return n.nodes(cs), nil
}

func (n *Node) fail(op, path string, err error) error {
	if errors.Is(err, ErrNoSuchPath) {
		return n.missing(op, path)
	}
	return &PathError{Op: op, Path: path, Err: err}
}

// missing walks path prefix by prefix to report how far it resolves.
func (n *Node) missing(op, path string) error {
	prefix := ""
	for _, p := range xpath.Prefixes(path) {
		if _, err := n.cursor.First(p); err != nil {
			break
		}
		prefix = p
	}
	n.logger.LogAttrs(context.Background(), slog.LevelDebug, "path not found",
		slog.String("operation", op),
		slog.String("path", path),
		slog.String("prefix", prefix),
	)
	return &PathError{Op: op, Path: path, Prefix: prefix, Err: ErrNoSuchPath}
}
