package jsontree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/jacoelho/docpath/convert"
	"github.com/jacoelho/docpath/internal/tree"
)

// Encode writes n as JSON. Floats are written in plain decimal notation.
func Encode(w io.Writer, n *Node, style tree.Style) error {
	var buf bytes.Buffer
	if err := writeCompact(&buf, n); err != nil {
		return err
	}
	if style == tree.Compact {
		_, err := w.Write(buf.Bytes())
		return err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return err
	}
	out.WriteByte('\n')
	_, err := w.Write(out.Bytes())
	return err
}

func compactString(n *Node) (string, error) {
	var buf bytes.Buffer
	if err := writeCompact(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func writeCompact(buf *bytes.Buffer, n *Node) error {
	switch n.kind {
	case kindObject:
		buf.WriteByte('{')
		for i, k := range n.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeString(buf, k)
			buf.WriteByte(':')
			if err := writeCompact(buf, n.fields[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case kindArray:
		buf.WriteByte('[')
		for i, item := range n.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCompact(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		return writeScalar(buf, n.value)
	}
	return nil
}

func writeScalar(buf *bytes.Buffer, raw convert.Raw) error {
	switch raw.Kind() {
	case convert.KindString:
		s, _ := raw.Str()
		writeString(buf, s)
	case convert.KindBool:
		b, _ := raw.Bool()
		buf.WriteString(strconv.FormatBool(b))
	case convert.KindInt:
		i, _ := raw.Int()
		buf.WriteString(strconv.FormatInt(i, 10))
	case convert.KindFloat:
		f, _ := raw.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: %v cannot be written as JSON", tree.ErrMalformed, f)
		}
		buf.WriteString(convert.FormatPlainFloat(f))
	default:
		buf.WriteString("null")
	}
	return nil
}

func writeString(buf *bytes.Buffer, s string) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	buf.Truncate(buf.Len() - 1) // trailing newline
}
