package convert

import "reflect"

// Converter maps between a raw document scalar and one application type.
// Implementations only ever see present values: null raws and nil values are
// intercepted by the guard installed by Register.
type Converter[T any] interface {
	Read(raw Raw) (T, error)
	Write(value T) (Raw, error)
}

type funcConverter[T any] struct {
	read  func(Raw) (T, error)
	write func(T) (Raw, error)
}

func (f funcConverter[T]) Read(raw Raw) (T, error)    { return f.read(raw) }
func (f funcConverter[T]) Write(value T) (Raw, error) { return f.write(value) }

// Func builds a Converter from a pair of functions.
func Func[T any](read func(Raw) (T, error), write func(T) (Raw, error)) Converter[T] {
	return funcConverter[T]{read: read, write: write}
}

// erased is the type-erased view the registry stores.
type erased interface {
	read(raw Raw) (any, error)
	write(value any) (Raw, error)
}

// nullGuard passes null through in both directions before delegating.
type nullGuard[T any] struct {
	inner Converter[T]
}

func (g nullGuard[T]) read(raw Raw) (any, error) {
	if raw.IsNull() {
		var zero T
		return zero, nil
	}
	return g.inner.Read(raw)
}

func (g nullGuard[T]) write(value any) (Raw, error) {
	if isNil(value) {
		return RawNull(), nil
	}
	typed, ok := value.(T)
	if !ok {
		return Raw{}, cannotWrite(value, reflect.TypeFor[T]())
	}
	return g.inner.Write(typed)
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}
