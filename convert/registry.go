package convert

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"sync"
)

// Registry maps target types to converters, enum tables and microtype
// constructors. A Registry is not safe for concurrent mutation; configure it
// before sharing it. The microtype detection cache is safe for concurrent use.
type Registry struct {
	converters map[reflect.Type]erased
	names      map[string]reflect.Type
	enums      map[reflect.Type]*enumTable
	microtypes map[reflect.Type]*microtype
	detected   *sync.Map // reflect.Type -> *microtype, nil when not a microtype
	frozen     bool
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	r := New()
	registerDefaults(r)
	r.frozen = true
	return r
})

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		converters: make(map[reflect.Type]erased),
		names:      make(map[string]reflect.Type),
		enums:      make(map[reflect.Type]*enumTable),
		microtypes: make(map[reflect.Type]*microtype),
		detected:   &sync.Map{},
	}
}

// Default returns the shared registry holding the built-in converters. It is
// immutable: registering on it panics. Use NewDefault to customise.
func Default() *Registry {
	return defaultRegistry()
}

// NewDefault returns a private, mutable copy of the default registry.
func NewDefault() *Registry {
	return Default().Clone()
}

// Clone returns a mutable copy of r.
func (r *Registry) Clone() *Registry {
	return &Registry{
		converters: maps.Clone(r.converters),
		names:      maps.Clone(r.names),
		enums:      maps.Clone(r.enums),
		microtypes: maps.Clone(r.microtypes),
		detected:   &sync.Map{},
	}
}

// Register binds c to T in r, replacing any previous converter for T.
// The converter is wrapped so it never observes null.
func Register[T any](r *Registry, c Converter[T]) *Registry {
	r.mustBeMutable()
	t := reflect.TypeFor[T]()
	r.converters[t] = nullGuard[T]{inner: c}
	r.names[t.String()] = t
	return r
}

// Alias makes t resolvable by name through TypeOf.
func (r *Registry) Alias(name string, t reflect.Type) *Registry {
	r.mustBeMutable()
	r.names[name] = t
	return r
}

// TypeOf resolves a registered type by alias or Go type name.
func (r *Registry) TypeOf(name string) (reflect.Type, bool) {
	t, ok := r.names[name]
	return t, ok
}

// Names lists every resolvable type name, sorted.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.names))
}

func (r *Registry) Has(t reflect.Type) bool {
	_, ok := r.converters[t]
	return ok
}

// Read converts raw into a value of type t.
func (r *Registry) Read(raw Raw, t reflect.Type) (any, error) {
	c, ok := r.converters[t]
	if !ok {
		return nil, fmt.Errorf("%w for %s", ErrUnregisteredConverter, typeName(t))
	}
	return c.read(raw)
}

// Write converts value, which must be of type t, into its raw form.
func (r *Registry) Write(value any, t reflect.Type) (Raw, error) {
	c, ok := r.converters[t]
	if !ok {
		return Raw{}, fmt.Errorf("%w for %s", ErrUnregisteredConverter, typeName(t))
	}
	return c.write(value)
}

// ReadAs is the typed form of Registry.Read.
func ReadAs[T any](r *Registry, raw Raw) (T, error) {
	var zero T
	v, err := r.Read(raw, reflect.TypeFor[T]())
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, nil
	}
	return typed, nil
}

// WriteAs is the typed form of Registry.Write.
func WriteAs[T any](r *Registry, value T) (Raw, error) {
	return r.Write(value, reflect.TypeFor[T]())
}

func (r *Registry) mustBeMutable() {
	if r.frozen {
		panic("convert: the default registry is immutable; use NewDefault or Clone")
	}
}
