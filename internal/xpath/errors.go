package xpath

import "errors"

var (
	// ErrSyntax indicates a malformed path expression.
	ErrSyntax = errors.New("xpath: syntax error")

	// ErrNotSupported indicates valid XPath that the path syntax does not cover.
	ErrNotSupported = errors.New("xpath: feature not supported")
)
