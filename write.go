package docpath

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// Write serializes the whole document the node belongs to, not just the
// node's subtree.
func (n *Node) Write(w io.Writer, style Style) error {
	if err := n.cursor.Encode(w, style); err != nil {
		return &PathError{Op: "write", Path: "/", Err: err}
	}
	return nil
}

func (n *Node) Bytes(style Style) ([]byte, error) {
	var buf bytes.Buffer
	if err := n.Write(&buf, style); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes the document to name, replacing its contents.
func (n *Node) WriteFile(name string, style Style) error {
	data, err := n.Bytes(style)
	if err != nil {
		return err
	}
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// String returns the pretty-printed document, or the error text when it
// cannot be written.
func (n *Node) String() string {
	data, err := n.Bytes(Pretty)
	if err != nil {
		return err.Error()
	}
	return string(data)
}

// Equal reports whether two nodes belong to structurally equal documents.
// JSON and YAML object key order is ignored.
func (n *Node) Equal(other *Node) bool {
	if other == nil {
		return false
	}
	return n.cursor.Equal(other.cursor)
}
