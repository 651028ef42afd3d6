package docpath

import (
	"log/slog"

	"github.com/jacoelho/docpath/convert"
)

// Option configures a Node created by a parse or constructor function.
type Option func(*Node)

// WithRegistry sets the converters used for typed reads and writes. The
// default is convert.Default().
func WithRegistry(r *convert.Registry) Option {
	return func(n *Node) {
		if r != nil {
			n.registry = r
		}
	}
}

// WithLogger sets the logger for debug diagnostics. A nil logger restores
// the default.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Node) {
		n.logger = logger
		if logger == nil {
			n.logger = defaultLogger()
		}
	}
}

func defaultLogger() *slog.Logger {
	return slog.Default().With("component", "docpath")
}
