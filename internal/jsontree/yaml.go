package jsontree

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/jacoelho/docpath/convert"
	"github.com/jacoelho/docpath/internal/tree"
)

// DecodeYAML reads the first YAML document of r, keeping mapping order.
func DecodeYAML(r io.Reader) (*Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var v any
	if err := yaml.UnmarshalWithOptions(data, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %v", tree.ErrMalformed, err)
	}
	return fromYAML(v)
}

func fromYAML(v any) (*Node, error) {
	switch val := v.(type) {
	case yaml.MapSlice:
		obj := newObject()
		for _, item := range val {
			child, err := fromYAML(item.Value)
			if err != nil {
				return nil, err
			}
			obj.put(fmt.Sprint(item.Key), child)
		}
		return obj, nil
	case map[string]any:
		// Only produced when ordering is unavailable; keys follow map order.
		obj := newObject()
		for k, item := range val {
			child, err := fromYAML(item)
			if err != nil {
				return nil, err
			}
			obj.put(k, child)
		}
		return obj, nil
	case []any:
		arr := newArray()
		for _, item := range val {
			child, err := fromYAML(item)
			if err != nil {
				return nil, err
			}
			arr.appendItem(child)
		}
		return arr, nil
	case nil:
		return newScalar(convert.RawNull()), nil
	case string:
		return newScalar(convert.RawString(val)), nil
	case bool:
		return newScalar(convert.RawBool(val)), nil
	case int:
		return newScalar(convert.RawInt(int64(val))), nil
	case int64:
		return newScalar(convert.RawInt(val)), nil
	case uint64:
		if val > math.MaxInt64 {
			return newScalar(convert.RawString(fmt.Sprint(val))), nil
		}
		return newScalar(convert.RawInt(int64(val))), nil
	case float64:
		return newScalar(convert.RawFloat(val)), nil
	case time.Time:
		return newScalar(convert.RawString(val.Format(time.RFC3339Nano))), nil
	default:
		return newScalar(convert.RawString(fmt.Sprint(val))), nil
	}
}

// plainFloat keeps floats out of exponent form in YAML output.
type plainFloat float64

func (f plainFloat) MarshalYAML() ([]byte, error) {
	s := convert.FormatPlainFloat(float64(f))
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return []byte(s), nil
}

func toYAML(n *Node) any {
	switch n.kind {
	case kindObject:
		m := make(yaml.MapSlice, 0, len(n.keys))
		for _, k := range n.keys {
			m = append(m, yaml.MapItem{Key: k, Value: toYAML(n.fields[k])})
		}
		return m
	case kindArray:
		s := make([]any, len(n.items))
		for i, item := range n.items {
			s[i] = toYAML(item)
		}
		return s
	default:
		if f, ok := n.value.Float(); ok && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return plainFloat(f)
		}
		return rawToAny(n.value)
	}
}

// EncodeYAML writes n as YAML; compact output uses flow style.
func EncodeYAML(w io.Writer, n *Node, style tree.Style) error {
	opts := []yaml.EncodeOption{yaml.Indent(2), yaml.IndentSequence(true)}
	if style == tree.Compact {
		opts = []yaml.EncodeOption{yaml.Flow(true)}
	}
	out, err := yaml.MarshalWithOptions(toYAML(n), opts...)
	if err != nil {
		return fmt.Errorf("%w: %v", tree.ErrMalformed, err)
	}
	_, err = w.Write(out)
	return err
}
