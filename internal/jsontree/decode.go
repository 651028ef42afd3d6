package jsontree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/jacoelho/docpath/convert"
	"github.com/jacoelho/docpath/internal/stack"
	"github.com/jacoelho/docpath/internal/tree"
)

type frame struct {
	node    *Node
	key     string
	needKey bool
}

// Decode reads one JSON document. A leading /* ... */ comment is skipped.
func Decode(r io.Reader) (*Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data, err = stripLeadingComment(data)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	frames := stack.New[frame]()
	var root *Node

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", tree.ErrMalformed, err)
		}
		if root != nil {
			return nil, fmt.Errorf("%w: unexpected data after the document", tree.ErrMalformed)
		}

		var node *Node
		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{':
				node = newObject()
			case '[':
				node = newArray()
			case '}', ']':
				done, _ := frames.Pop()
				if frames.IsEmpty() {
					root = done.node
				}
				continue
			}
		case string:
			if top := frames.Top(); top != nil && top.node.kind == kindObject && top.needKey {
				top.key = v
				top.needKey = false
				continue
			}
			node = newScalar(convert.RawString(v))
		case json.Number:
			node = newScalar(numberRaw(v))
		case bool:
			node = newScalar(convert.RawBool(v))
		case nil:
			node = newScalar(convert.RawNull())
		}

		if top := frames.Top(); top != nil {
			if top.node.kind == kindObject {
				top.node.put(top.key, node)
				top.needKey = true
			} else {
				top.node.appendItem(node)
			}
		} else if node.kind == kindScalar {
			root = node
		}

		if node.kind != kindScalar {
			frames.Push(frame{node: node, needKey: node.kind == kindObject})
		}
	}

	if root == nil {
		return nil, fmt.Errorf("%w: empty document", tree.ErrMalformed)
	}
	return root, nil
}

// numberRaw keeps integers exact when they fit int64 and falls back to the
// literal text when neither integer nor float parsing succeeds.
func numberRaw(n json.Number) convert.Raw {
	if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		return convert.RawInt(i)
	}
	if f, err := n.Float64(); err == nil {
		return convert.RawFloat(f)
	}
	return convert.RawString(n.String())
}

func stripLeadingComment(data []byte) ([]byte, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n\uFEFF")
	if !bytes.HasPrefix(trimmed, []byte("/*")) {
		return data, nil
	}
	end := bytes.Index(trimmed[2:], []byte("*/"))
	if end < 0 {
		return nil, fmt.Errorf("%w: unterminated leading comment", tree.ErrMalformed)
	}
	return trimmed[end+4:], nil
}
