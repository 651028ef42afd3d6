package docpath

import (
	"fmt"
	"reflect"

	"github.com/jacoelho/docpath/convert"
)

// read converts raw to t. Enums win over registered converters, which win
// over microtypes; a microtype is read as its wrapped type and then wrapped.
func (n *Node) read(raw convert.Raw, t reflect.Type) (any, error) {
	r := n.registry
	switch {
	case r.IsEnum(t):
		return r.ReadEnum(raw, t)
	case r.Has(t):
		return r.Read(raw, t)
	case r.IsMicrotype(t):
		inner, _ := r.WrappedType(t)
		if inner == t {
			break
		}
		v, err := n.read(raw, inner)
		if err != nil {
			return nil, err
		}
		return r.Wrap(t, v)
	}
	return nil, fmt.Errorf("%w for %v", convert.ErrUnsupportedType, t)
}

// write is the inverse of read.
func (n *Node) write(value any, t reflect.Type) (convert.Raw, error) {
	r := n.registry
	switch {
	case r.IsEnum(t):
		return r.WriteEnum(value)
	case r.Has(t):
		return r.Write(value, t)
	case r.IsMicrotype(t):
		inner, it, err := r.Unwrap(value)
		if err != nil {
			return convert.Raw{}, err
		}
		// an accessor declared as an interface converts by what it returned
		if it.Kind() == reflect.Interface {
			if inner == nil {
				return convert.RawNull(), nil
			}
			it = reflect.TypeOf(inner)
		}
		if it == t {
			break
		}
		return n.write(inner, it)
	}
	return convert.Raw{}, fmt.Errorf("%w for %v", convert.ErrUnsupportedType, t)
}
