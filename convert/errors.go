package convert

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrConversion indicates a raw value whose shape or content cannot become
	// the target type.
	ErrConversion = errors.New("convert: conversion failed")

	// ErrUnregisteredConverter indicates no converter is bound for a type.
	ErrUnregisteredConverter = errors.New("convert: no converter registered")

	// ErrUnsupportedType indicates a type that is neither an enum, a registered
	// type nor a microtype.
	ErrUnsupportedType = errors.New("convert: no conversion strategy")

	// ErrMicrotype is the parent of every microtype construction or access failure.
	ErrMicrotype = errors.New("convert: microtype")

	ErrMicrotypeConstructor = fmt.Errorf("%w: no accessible constructor taking the wrapped value", ErrMicrotype)
	ErrMicrotypeInvocation  = fmt.Errorf("%w: invocation failed", ErrMicrotype)
)

func cannotConvert(raw Raw, target string) error {
	return fmt.Errorf("%w: cannot convert %s value %s to %s", ErrConversion, raw.Kind(), raw, target)
}

func cannotParse(literal, target string, err error) error {
	return fmt.Errorf("%w: cannot parse %q into %s: %w", ErrConversion, literal, target, err)
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

func cannotWrite(value any, target reflect.Type) error {
	return fmt.Errorf("%w: cannot write %T value %v as %s", ErrConversion, value, value, typeName(target))
}
