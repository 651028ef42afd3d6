package docpath

import (
	"reflect"

	"github.com/jacoelho/docpath/convert"
)

// Get reads the value at path as a T.
func Get[T any](n *Node, path string) (T, error) {
	var zero T
	v, err := n.GetAs(path, reflect.TypeFor[T]())
	if err != nil {
		return zero, err
	}
	typed, _ := v.(T)
	return typed, nil
}

// GetList reads every value path selects as a T, in document order and
// keeping duplicates.
func GetList[T any](n *Node, path string) ([]T, error) {
	t := reflect.TypeFor[T]()
	raws, err := n.cursor.Values(path)
	if err != nil {
		return nil, n.fail("get", path, err)
	}
	out := make([]T, 0, len(raws))
	for _, raw := range raws {
		v, err := n.read(raw, t)
		if err != nil {
			return nil, &PathError{Op: "get", Path: path, Err: err}
		}
		typed, _ := v.(T)
		out = append(out, typed)
	}
	return out, nil
}

// GetSet is GetList without repeated values. Two values are the same when
// they write back to the same raw form, so 1.0 and 1 read as one decimal.
// The first occurrence keeps its position.
func GetSet[T any](n *Node, path string) ([]T, error) {
	values, err := GetList[T](n, path)
	if err != nil {
		return nil, err
	}
	t := reflect.TypeFor[T]()
	seen := make(map[convert.Raw]struct{}, len(values))
	out := values[:0]
	for _, v := range values {
		key, err := n.write(v, t)
		if err != nil {
			return nil, &PathError{Op: "get", Path: path, Err: err}
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out, nil
}

// WithList replaces whatever path selects with one node per value.
func WithList[T any](n *Node, path string, values []T) (*Node, error) {
	t := reflect.TypeFor[T]()
	raws := make([]convert.Raw, len(values))
	for i, v := range values {
		raw, err := n.write(v, t)
		if err != nil {
			return nil, &PathError{Op: "with", Path: path, Err: err}
		}
		raws[i] = raw
	}
	if err := n.cursor.SetList(path, raws); err != nil {
		return nil, n.fail("with", path, err)
	}
	return n, nil
}
