package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jacoelho/docpath"
	"github.com/jacoelho/docpath/convert"
	"github.com/jacoelho/docpath/internal/exit"
)

var (
	ErrNoArguments    = errors.New("no arguments provided")
	ErrNoCommand      = errors.New("no command specified")
	ErrUnknownCommand = errors.New("unknown command")
	ErrWrongArguments = errors.New("wrong number of arguments")
	ErrUnknownType    = errors.New("unknown value type")
	ErrUnknownStyle   = errors.New("style must be pretty or compact")
)

// Command names a docpath operation.
type Command string

const (
	Get      Command = "get"
	List     Command = "list"
	Set      Command = "set"
	Remove   Command = "remove"
	Exists   Command = "exists"
	Children Command = "children"
	Query    Command = "query"
	Patch    Command = "patch"
	Diff     Command = "diff"
)

// arity is the number of positional arguments after the command, as a
// [min, max] range.
var arity = map[Command][2]int{
	Get:      {2, 2},
	List:     {2, 2},
	Set:      {3, 3},
	Remove:   {2, 2},
	Exists:   {2, 2},
	Children: {1, 2},
	Query:    {2, 2},
	Patch:    {2, 2},
	Diff:     {2, 2},
}

// Config represents the complete configuration for the docpath tool.
type Config struct {
	Command Command
	File    string
	Path    string
	Value   string

	// Input is the patch file for patch and the other document for diff.
	Input string

	// TypeName is a registry name such as "decimal" or "date".
	TypeName string

	// Format is zero when the format should be detected from the file.
	Format docpath.Format
	Style  docpath.Style

	// Output receives the document after a mutation; empty means stdout.
	Output string
	Debug  bool
}

// Mutates reports whether the command changes the document.
func (c *Config) Mutates() bool {
	return c.Command == Set || c.Command == Remove || c.Command == Patch
}

// takesInput reports whether the second argument names a file.
func (c *Config) takesInput() bool {
	return c.Command == Patch || c.Command == Diff
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	bounds, ok := arity[c.Command]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, c.Command)
	}
	if c.File == "" {
		return fmt.Errorf("%w for %s", ErrWrongArguments, c.Command)
	}
	if c.takesInput() {
		if c.Input == "" {
			return fmt.Errorf("%w for %s", ErrWrongArguments, c.Command)
		}
	} else if bounds[0] > 1 && c.Path == "" {
		return fmt.Errorf("%w for %s", ErrWrongArguments, c.Command)
	}
	if _, ok := convert.Default().TypeOf(c.TypeName); !ok {
		return fmt.Errorf("%w %q, want one of %s", ErrUnknownType, c.TypeName, strings.Join(convert.Default().Names(), ", "))
	}
	for _, name := range []string{c.File, c.Input} {
		if name == "" {
			continue
		}
		if _, err := os.Stat(name); err != nil {
			return fmt.Errorf("document %s not found: %w", name, err)
		}
	}
	return nil
}

func parseStyle(name string) (docpath.Style, error) {
	switch strings.ToLower(name) {
	case "pretty":
		return docpath.Pretty, nil
	case "compact":
		return docpath.Compact, nil
	}
	return 0, fmt.Errorf("%w, got: %s", ErrUnknownStyle, name)
}

// Parse parses command-line arguments and returns a validated Config.
// If parsing fails or help is requested, returns nil config and exit result.
func Parse(args []string) (*Config, *exit.Result) {
	if len(args) == 0 {
		return nil, exit.Usagef("Error: %v\n\n%s", ErrNoArguments, Usage())
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)

	// Suppress the default usage output since we handle it ourselves
	fs.Usage = func() {}
	// Suppress error output since we handle it ourselves
	fs.SetOutput(io.Discard)

	var (
		typeName = fs.String("type", "string", "Value type used to read and write values")
		format   = fs.String("format", "auto", "Document format: auto, json, xml or yaml")
		style    = fs.String("style", "pretty", "Output style: pretty or compact")
		output   = fs.String("o", "", "Write the modified document to this file instead of stdout")
		debug    = fs.Bool("debug", false, "Log diagnostics to stderr")
	)

	if err := fs.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil, exit.Success(Usage())
		}
		return nil, exit.Usagef("Error: failed to parse arguments: %v\n\n%s", err, Usage())
	}

	rest := fs.Args()
	if len(rest) == 0 {
		return nil, exit.Usagef("Error: %v\n\n%s", ErrNoCommand, Usage())
	}

	cfg := &Config{
		Command:  Command(rest[0]),
		TypeName: *typeName,
		Output:   *output,
		Debug:    *debug,
	}

	bounds, ok := arity[cfg.Command]
	if !ok {
		return nil, exit.Usagef("Error: %v %q\n\n%s", ErrUnknownCommand, rest[0], Usage())
	}
	positional := rest[1:]
	if len(positional) < bounds[0] || len(positional) > bounds[1] {
		return nil, exit.Usagef("Error: %v for %s: got %d, want %d\n\n%s", ErrWrongArguments, cfg.Command, len(positional), bounds[1], Usage())
	}
	targets := []*string{&cfg.File, &cfg.Path, &cfg.Value}
	if cfg.takesInput() {
		targets[1] = &cfg.Input
	}
	for i, dst := range targets {
		if i < len(positional) {
			*dst = positional[i]
		}
	}

	if *format != "auto" {
		f, err := docpath.ParseFormat(*format)
		if err != nil {
			return nil, exit.Usagef("Error: %v\n\n%s", err, Usage())
		}
		cfg.Format = f
	}

	s, err := parseStyle(*style)
	if err != nil {
		return nil, exit.Usagef("Error: %v\n\n%s", err, Usage())
	}
	cfg.Style = s

	if err := cfg.Validate(); err != nil {
		return nil, exit.Usagef("Error: %v\n\n%s", err, Usage())
	}

	return cfg, nil
}

// Usage returns a usage string for the CLI tool.
func Usage() string {
	return `docpath - read and edit JSON, XML and YAML documents by path

Usage: docpath [options] <command> <file> [path] [value]

Commands:
  get <file> <path>           Print the first value at path
  list <file> <path>          Print every value at path, one per line
  set <file> <path> <value>   Store value at path, creating it when needed
  remove <file> <path>        Remove every node at path
  exists <file> <path>        Exit 0 when path selects a node, 3 otherwise
  children <file> [path]      Print child names of the node at path
  query <file> <expr>         Run a JSONPath (JSON, YAML) or XPath (XML) query
  patch <file> <patch>        Apply a JSON Patch (array) or merge patch (object)
  diff <file> <other>         Print a line diff; exit 0 when the documents are equal

Options:
  -type NAME              Value type: string, bool, int, int32, int64, float32, float64,
                          decimal, bigint, date, timestamp, url, currency, uuid (default: string)
  -format NAME            Document format: auto, json, xml, yaml (default: auto)
  -style NAME             Output style for set, remove and patch: pretty, compact (default: pretty)
  -o FILE                 Write the modified document to FILE instead of stdout
  -debug                  Log diagnostics to stderr
  -h, --help              Show this help message

Exit codes:
  0 success, 1 failure or documents differ, 2 usage error, 3 path not found

Examples:
  docpath get person.json address/city
  docpath -type decimal get order.xml total
  docpath -type date set order.yaml shipped 2024-02-29
  docpath -o out.json remove person.json 'phoneNumbers[type="fax"]'
  docpath query person.json '$.phoneNumbers[*].number'
  docpath -o out.yaml patch config.yaml fix.json`
}
