package docpath

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jacoelho/docpath/internal/jsontree"
	"github.com/jacoelho/docpath/internal/tree"
	"github.com/jacoelho/docpath/internal/xmltree"
)

type (
	// Format identifies the syntax of a document.
	Format = tree.Format

	// Style selects indented or single-line output.
	Style = tree.Style
)

const (
	JSON = tree.FormatJSON
	XML  = tree.FormatXML
	YAML = tree.FormatYAML

	Pretty  = tree.Pretty
	Compact = tree.Compact
)

// ParseFormat maps a format name (json, xml, yaml or yml) to its Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "json":
		return JSON, nil
	case "xml":
		return XML, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return 0, fmt.Errorf("%w: unknown format %q", ErrNotSupported, name)
}

// DetectFormat guesses the format of data, preferring the extension of name
// and falling back to the first significant byte.
func DetectFormat(name string, data []byte) Format {
	if f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(name), ".")); err == nil {
		return f
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n\uFEFF")
	switch {
	case bytes.HasPrefix(trimmed, []byte("<")):
		return XML
	case bytes.HasPrefix(trimmed, []byte("{")), bytes.HasPrefix(trimmed, []byte("[")),
		bytes.HasPrefix(trimmed, []byte("/*")):
		return JSON
	}
	return YAML
}

// Parse reads a document of the given format and returns its root node.
func Parse(r io.Reader, format Format, opts ...Option) (*Node, error) {
	var (
		c   tree.Cursor
		err error
	)
	switch format {
	case JSON:
		c, err = jsontree.Parse(r)
	case XML:
		c, err = xmltree.Parse(r)
	case YAML:
		c, err = jsontree.ParseYAML(r)
	default:
		return nil, fmt.Errorf("%w: unknown format %v", ErrNotSupported, format)
	}
	if err != nil {
		return nil, &PathError{Op: "parse", Path: "/", Err: err}
	}
	return newNode(c, opts), nil
}

// ParseJSON reads a JSON document. A leading /* */ comment is ignored.
func ParseJSON(r io.Reader, opts ...Option) (*Node, error) {
	return Parse(r, JSON, opts...)
}

// ParseXML reads an XML document; the returned node is its document element.
func ParseXML(r io.Reader, opts ...Option) (*Node, error) {
	return Parse(r, XML, opts...)
}

func ParseYAML(r io.Reader, opts ...Option) (*Node, error) {
	return Parse(r, YAML, opts...)
}

// ParseFile reads a document from disk, detecting its format with
// DetectFormat.
func ParseFile(name string, opts ...Option) (*Node, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	n, err := Parse(bytes.NewReader(data), DetectFormat(name, data), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return n, nil
}

// NewJSON returns the root of an empty JSON object.
func NewJSON(opts ...Option) *Node {
	return newNode(jsontree.New(JSON), opts)
}

// NewYAML returns the root of an empty YAML mapping.
func NewYAML(opts ...Option) *Node {
	return newNode(jsontree.New(YAML), opts)
}

// NewXML returns a document holding a single empty element named root.
func NewXML(root string, opts ...Option) (*Node, error) {
	c, err := xmltree.New(root)
	if err != nil {
		return nil, &PathError{Op: "new", Path: root, Err: err}
	}
	return newNode(c, opts), nil
}
