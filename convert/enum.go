package convert

import (
	"fmt"
	"reflect"
)

type enumTable struct {
	bySymbol map[string]any
}

// RegisterEnum declares E as an enumeration whose constants are values.
// A constant's symbol is fmt.Sprint(value), its String method when it has one.
func RegisterEnum[E comparable](r *Registry, values ...E) *Registry {
	r.mustBeMutable()
	t := reflect.TypeFor[E]()
	table := &enumTable{bySymbol: make(map[string]any, len(values))}
	for _, v := range values {
		table.bySymbol[fmt.Sprint(v)] = v
	}
	r.enums[t] = table
	r.names[t.String()] = t
	return r
}

func (r *Registry) IsEnum(t reflect.Type) bool {
	_, ok := r.enums[t]
	return ok
}

// ReadEnum matches raw's text against the symbols of t, case-sensitively.
func (r *Registry) ReadEnum(raw Raw, t reflect.Type) (any, error) {
	table, ok := r.enums[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s is not an enum", ErrUnsupportedType, typeName(t))
	}
	if raw.IsNull() {
		return reflect.Zero(t).Interface(), nil
	}
	symbol := raw.Text()
	v, ok := table.bySymbol[symbol]
	if !ok {
		return nil, fmt.Errorf("%w: no constant of %s named %q", ErrConversion, typeName(t), symbol)
	}
	return v, nil
}

func (r *Registry) WriteEnum(value any) (Raw, error) {
	if isNil(value) {
		return RawNull(), nil
	}
	return RawString(fmt.Sprint(value)), nil
}
