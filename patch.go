package docpath

import (
	"bytes"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/goccy/go-yaml"
)

// Patch applies an RFC 6902 JSON Patch to the whole document and returns the
// patched document. The receiver is left unchanged. Object keys of the result
// are sorted. XML documents are not supported.
func (n *Node) Patch(ops []byte) (*Node, error) {
	p, err := jsonpatch.DecodePatch(ops)
	if err != nil {
		return nil, &PathError{Op: "patch", Path: "/", Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
	}
	return n.patch("patch", p.Apply)
}

// MergePatch applies an RFC 7396 merge patch the same way Patch applies a
// JSON Patch.
func (n *Node) MergePatch(patch []byte) (*Node, error) {
	return n.patch("merge", func(doc []byte) ([]byte, error) {
		return jsonpatch.MergePatch(doc, patch)
	})
}

func (n *Node) patch(op string, apply func([]byte) ([]byte, error)) (*Node, error) {
	format := n.Format()
	if format == XML {
		return nil, &PathError{Op: op, Path: "/", Err: fmt.Errorf("%w: %s documents", ErrNotSupported, format)}
	}

	doc, err := n.Bytes(Compact)
	if err != nil {
		return nil, err
	}
	if format == YAML {
		if doc, err = yaml.YAMLToJSON(doc); err != nil {
			return nil, &PathError{Op: op, Path: "/", Err: err}
		}
	}

	out, err := apply(doc)
	if err != nil {
		return nil, &PathError{Op: op, Path: "/", Err: err}
	}

	// JSON is valid YAML, so the patched text parses in either format.
	return Parse(bytes.NewReader(out), format, WithRegistry(n.registry), WithLogger(n.logger))
}
