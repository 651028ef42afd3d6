package docpath

import (
	"fmt"
	"strings"

	"github.com/jacoelho/docpath/convert"
	"github.com/jacoelho/docpath/internal/tree"
)

var (
	// ErrNoSuchPath indicates a path that selects nothing.
	ErrNoSuchPath = tree.ErrNotFound

	// ErrInvalidPath indicates a path or query expression that does not compile.
	ErrInvalidPath = tree.ErrInvalidPath

	// ErrNotSupported indicates a valid path the document cannot act on, such
	// as creating a wildcard step or removing the XML document element.
	ErrNotSupported = tree.ErrNotSupported

	// ErrIncompatible indicates mixing nodes of different document formats.
	ErrIncompatible = tree.ErrIncompatible

	// ErrMalformed indicates a document that cannot be parsed or written.
	ErrMalformed = tree.ErrMalformed

	ErrConversion            = convert.ErrConversion
	ErrUnregisteredConverter = convert.ErrUnregisteredConverter
	ErrUnsupportedType       = convert.ErrUnsupportedType
	ErrMicrotype             = convert.ErrMicrotype
	ErrMicrotypeConstructor  = convert.ErrMicrotypeConstructor
	ErrMicrotypeInvocation   = convert.ErrMicrotypeInvocation
)

// PathError records a failed node operation and the path it was given.
// For paths that select nothing, Prefix is the longest leading sub-path that
// still resolves, empty when not even the first step does.
type PathError struct {
	Op     string
	Path   string
	Prefix string
	Err    error
}

func (e *PathError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "docpath: %s failed at path '%s'", e.Op, e.Path)
	if e.Err == ErrNoSuchPath {
		if e.Prefix != "" {
			fmt.Fprintf(&b, ", valid up to '%s'", e.Prefix)
		} else {
			b.WriteString(", no step resolves")
		}
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *PathError) Unwrap() error {
	return e.Err
}
