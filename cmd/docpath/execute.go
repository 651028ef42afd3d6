package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"strings"

	"github.com/jacoelho/docpath"
	"github.com/jacoelho/docpath/convert"
	"github.com/jacoelho/docpath/internal/config"
	"github.com/jacoelho/docpath/internal/exit"
)

type command struct {
	cfg      *config.Config
	doc      *docpath.Node
	registry *convert.Registry
	typ      reflect.Type
	out      strings.Builder
}

// execute runs one configured command. Values and names are collected into
// the success message, one per line.
func execute(cfg *config.Config, stdout io.Writer, logger *slog.Logger) *exit.Result {
	doc, err := load(cfg.File, cfg.Format, logger)
	if err != nil {
		return exit.Errorf("Error: %v\n", err)
	}

	registry := doc.Registry()
	typ, _ := registry.TypeOf(cfg.TypeName)
	c := &command{cfg: cfg, doc: doc, registry: registry, typ: typ}

	switch cfg.Command {
	case config.Get:
		err = c.get()
	case config.List:
		err = c.list()
	case config.Set:
		err = c.set()
	case config.Remove:
		err = c.doc.Remove(cfg.Path)
	case config.Exists:
		if !doc.Exists(cfg.Path) {
			return &exit.Result{Output: os.Stdout, ExitCode: exit.CodeNotFound, Message: "false\n"}
		}
		c.println("true")
	case config.Children:
		err = c.children()
	case config.Query:
		err = c.query()
	case config.Patch:
		err = c.patch()
	case config.Diff:
		return c.diff(logger, isTerminal(stdout))
	default:
		return exit.Usagef("Error: %v %q\n", config.ErrUnknownCommand, cfg.Command)
	}
	if err != nil {
		return failure(err)
	}

	if cfg.Mutates() {
		if err := c.save(stdout); err != nil {
			return exit.Errorf("Error: %v\n", err)
		}
		return &exit.Result{Output: os.Stdout, ExitCode: exit.CodeSuccess}
	}

	return exit.Success(c.out.String())
}

// load parses name, detecting the format when format is zero.
func load(name string, format docpath.Format, logger *slog.Logger) (*docpath.Node, error) {
	opts := []docpath.Option{docpath.WithLogger(logger)}
	if format == 0 {
		return docpath.ParseFile(name, opts...)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return docpath.Parse(bytes.NewReader(data), format, opts...)
}

func failure(err error) *exit.Result {
	switch {
	case errors.Is(err, docpath.ErrNoSuchPath):
		return exit.NotFoundf("Error: %v\n", err)
	case errors.Is(err, docpath.ErrInvalidPath):
		return exit.Usagef("Error: %v\n", err)
	}
	return exit.Errorf("Error: %v\n", err)
}

func (c *command) println(s string) {
	c.out.WriteString(s)
	c.out.WriteByte('\n')
}

// text renders a typed value in its document form.
func (c *command) text(v any) (string, error) {
	raw, err := c.registry.Write(v, c.typ)
	if err != nil {
		return "", err
	}
	return raw.Text(), nil
}

func (c *command) get() error {
	v, err := c.doc.GetAs(c.cfg.Path, c.typ)
	if err != nil {
		return err
	}
	s, err := c.text(v)
	if err != nil {
		return err
	}
	c.println(s)
	return nil
}

func (c *command) list() error {
	nodes, err := c.doc.List(c.cfg.Path)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		v, err := n.GetAs(".", c.typ)
		if err != nil {
			return err
		}
		s, err := c.text(v)
		if err != nil {
			return err
		}
		c.println(s)
	}
	return nil
}

// set parses the command-line value as the configured type so the document
// stores its native form, such as a number for -type int.
func (c *command) set() error {
	v, err := c.registry.Read(convert.RawString(c.cfg.Value), c.typ)
	if err != nil {
		return fmt.Errorf("value %q: %w", c.cfg.Value, err)
	}
	_, err = c.doc.With(c.cfg.Path, v)
	return err
}

func (c *command) children() error {
	node := c.doc
	if c.cfg.Path != "" {
		var err error
		if node, err = c.doc.Get(c.cfg.Path); err != nil {
			return err
		}
	}
	names, err := node.Children()
	if err != nil {
		return err
	}
	for _, name := range names {
		c.println(name)
	}
	return nil
}

func (c *command) query() error {
	nodes, err := c.doc.Query(c.cfg.Path)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		s, err := n.GetString(".")
		if err != nil {
			return err
		}
		c.println(s)
	}
	return nil
}

// patch applies the input as a JSON Patch when it is an array and as a merge
// patch otherwise.
func (c *command) patch() error {
	data, err := os.ReadFile(c.cfg.Input)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.cfg.Input, err)
	}

	var patched *docpath.Node
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		patched, err = c.doc.Patch(data)
	} else {
		patched, err = c.doc.MergePatch(data)
	}
	if err != nil {
		return err
	}
	c.doc = patched
	return nil
}

func (c *command) diff(logger *slog.Logger, colored bool) *exit.Result {
	other, err := load(c.cfg.Input, c.cfg.Format, logger)
	if err != nil {
		return exit.Errorf("Error: %v\n", err)
	}
	if c.doc.Equal(other) {
		return exit.Success("")
	}

	from, err := c.doc.Bytes(docpath.Pretty)
	if err != nil {
		return exit.Errorf("Error: %v\n", err)
	}
	to, err := other.Bytes(docpath.Pretty)
	if err != nil {
		return exit.Errorf("Error: %v\n", err)
	}
	return &exit.Result{
		Output:   os.Stdout,
		ExitCode: exit.CodeFailure,
		Message:  lineDiff(string(from), string(to), colored),
	}
}

func (c *command) save(stdout io.Writer) error {
	if c.cfg.Output != "" {
		return c.doc.WriteFile(c.cfg.Output, c.cfg.Style)
	}
	data, err := c.doc.Bytes(c.cfg.Style)
	if err != nil {
		return err
	}
	if !bytes.HasSuffix(data, []byte("\n")) {
		data = append(data, '\n')
	}
	_, err = stdout.Write(data)
	return err
}
