package convert

import (
	"fmt"
	"reflect"
)

// Microtype is a wrapper around a single value of type V, exposed through
// Value.
type Microtype[V any] interface {
	Value() V
}

type microtype struct {
	wrapped reflect.Type
	wrap    func(inner reflect.Value) (reflect.Value, error)
}

// RegisterMicrotype declares M as a microtype over V built by wrap.
// Registered microtypes take precedence over reflective detection.
func RegisterMicrotype[M Microtype[V], V any](r *Registry, wrap func(V) M) *Registry {
	r.mustBeMutable()
	t := reflect.TypeFor[M]()
	r.microtypes[t] = &microtype{
		wrapped: reflect.TypeFor[V](),
		wrap: func(inner reflect.Value) (reflect.Value, error) {
			v, ok := inner.Interface().(V)
			if !ok {
				return reflect.Value{}, fmt.Errorf("%w: %s does not accept %s", ErrMicrotypeConstructor, typeName(t), inner.Type())
			}
			return reflect.ValueOf(wrap(v)), nil
		},
	}
	r.names[t.String()] = t
	return r
}

func (r *Registry) IsMicrotype(t reflect.Type) bool {
	return r.microtype(t) != nil
}

// WrappedType reports the type a microtype wraps.
func (r *Registry) WrappedType(t reflect.Type) (reflect.Type, bool) {
	m := r.microtype(t)
	if m == nil {
		return nil, false
	}
	return m.wrapped, true
}

// Unwrap calls value's accessor and returns the wrapped value with its type.
func (r *Registry) Unwrap(value any) (inner any, t reflect.Type, err error) {
	if value == nil {
		return nil, nil, fmt.Errorf("%w: cannot unwrap nil", ErrMicrotypeInvocation)
	}
	vt := reflect.TypeOf(value)
	m := r.microtype(vt)
	if m == nil {
		return nil, nil, fmt.Errorf("%w: %s is not a microtype", ErrUnsupportedType, typeName(vt))
	}

	defer func() {
		if p := recover(); p != nil {
			inner, t = nil, nil
			err = fmt.Errorf("%w: %s.Value: %v", ErrMicrotypeInvocation, typeName(vt), p)
		}
	}()
	out := reflect.ValueOf(value).MethodByName("Value").Call(nil)
	return out[0].Interface(), m.wrapped, nil
}

// Wrap builds a value of microtype t around inner.
func (r *Registry) Wrap(t reflect.Type, inner any) (out any, err error) {
	m := r.microtype(t)
	if m == nil {
		return nil, fmt.Errorf("%w: %s is not a microtype", ErrUnsupportedType, typeName(t))
	}

	iv := reflect.ValueOf(inner)
	if !iv.IsValid() {
		iv = reflect.Zero(m.wrapped)
	}
	if iv.Type() != m.wrapped {
		if !iv.Type().ConvertibleTo(m.wrapped) {
			return nil, fmt.Errorf("%w: %s wraps %s, not %s", ErrMicrotypeConstructor, typeName(t), typeName(m.wrapped), iv.Type())
		}
		iv = iv.Convert(m.wrapped)
	}

	defer func() {
		if p := recover(); p != nil {
			out = nil
			err = fmt.Errorf("%w: constructing %s: %v", ErrMicrotypeInvocation, typeName(t), p)
		}
	}()
	v, err := m.wrap(iv)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

func (r *Registry) microtype(t reflect.Type) *microtype {
	if t == nil {
		return nil
	}
	if m, ok := r.microtypes[t]; ok {
		return m
	}
	if cached, ok := r.detected.Load(t); ok {
		return cached.(*microtype)
	}
	m := detectMicrotype(t)
	r.detected.Store(t, m)
	return m
}

// detectMicrotype recognises types with a Value accessor returning exactly
// one result. It returns nil for anything else.
func detectMicrotype(t reflect.Type) *microtype {
	method, ok := t.MethodByName("Value")
	if !ok {
		return nil
	}
	// Method types obtained from a reflect.Type include the receiver.
	if method.Type.NumIn() != 1 || method.Type.NumOut() != 1 {
		return nil
	}
	wrapped := method.Type.Out(0)
	return &microtype{
		wrapped: wrapped,
		wrap: func(inner reflect.Value) (reflect.Value, error) {
			return reflectiveWrap(t, wrapped, inner)
		},
	}
}

// reflectiveWrap builds t from inner: either t is a defined type whose
// underlying type accepts the wrapped value, or t (or *t) is a struct with
// exactly one exported field of the wrapped type.
func reflectiveWrap(t, wrapped reflect.Type, inner reflect.Value) (reflect.Value, error) {
	structType := t
	pointer := t.Kind() == reflect.Pointer
	if pointer {
		structType = t.Elem()
	}

	if structType.Kind() == reflect.Struct {
		field, ok := soleField(structType, wrapped)
		if !ok {
			return reflect.Value{}, fmt.Errorf("%w: %s has no single exported field of type %s", ErrMicrotypeConstructor, typeName(t), typeName(wrapped))
		}
		v := reflect.New(structType)
		v.Elem().FieldByIndex(field.Index).Set(inner)
		if pointer {
			return v, nil
		}
		return v.Elem(), nil
	}

	if !pointer && wrapped.ConvertibleTo(t) {
		return inner.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("%w: cannot build %s from %s", ErrMicrotypeConstructor, typeName(t), typeName(wrapped))
}

func soleField(st, wrapped reflect.Type) (reflect.StructField, bool) {
	var (
		found reflect.StructField
		count int
	)
	for i := range st.NumField() {
		f := st.Field(i)
		if f.IsExported() && f.Type == wrapped {
			found = f
			count++
		}
	}
	return found, count == 1
}
