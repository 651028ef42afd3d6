// Package tree defines the capabilities a document engine provides to the
// typed facade. Engines own parsing, path evaluation and serialization; the
// facade owns value conversion.
package tree

import (
	"errors"
	"io"

	"github.com/jacoelho/docpath/convert"
)

// The sentinels are re-exported by the docpath package, so their messages use
// its name.
var (
	// ErrNotFound indicates a path that selects nothing.
	ErrNotFound = errors.New("docpath: no such path")

	// ErrNotSupported indicates an operation the engine cannot perform on the
	// selected node, such as creating a wildcard step.
	ErrNotSupported = errors.New("docpath: operation not supported")

	// ErrIncompatible indicates mixing cursors from different engines.
	ErrIncompatible = errors.New("docpath: incompatible document formats")

	// ErrMalformed indicates a document that cannot be parsed or written.
	ErrMalformed = errors.New("docpath: malformed document")

	// ErrInvalidPath wraps path compilation failures.
	ErrInvalidPath = errors.New("docpath: invalid path")
)

type Format uint8

const (
	FormatJSON Format = iota + 1
	FormatXML
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatXML:
		return "xml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

type Style uint8

const (
	Pretty Style = iota
	Compact
)

// Cursor is a position in a mutable document tree. All cursors derived from
// the same document share it; mutations through one are visible to all.
type Cursor interface {
	Format() Format

	// Lookup returns the raw value of the first node selected by path.
	// It fails with ErrNotFound when nothing matches. Containers read as
	// their compact serialization.
	Lookup(path string) (convert.Raw, error)

	// Values returns the raw value of every selected node in document order.
	Values(path string) ([]convert.Raw, error)

	// Select returns a cursor for every selected node in document order.
	Select(path string) ([]Cursor, error)

	// First returns a cursor for the first selected node or ErrNotFound.
	First(path string) (Cursor, error)

	// Create selects path, creating missing steps, and returns the node.
	Create(path string) (Cursor, error)

	// Set creates path if needed and stores value there.
	Set(path string, value convert.Raw) error

	// SetList replaces whatever path selects with one node per value.
	SetList(path string, values []convert.Raw) error

	// SetNodes replaces whatever path selects with copies of nodes.
	SetNodes(path string, nodes []Cursor) error

	// Remove detaches every selected node and reports how many were removed.
	Remove(path string) (int, error)

	// Children lists child names in document order without repetition.
	Children() ([]string, error)

	// Query evaluates the engine's native query language.
	Query(expr string) ([]Cursor, error)

	// Encode writes the whole document, not just this node.
	Encode(w io.Writer, style Style) error

	// Equal compares the documents of two cursors structurally.
	Equal(other Cursor) bool
}
