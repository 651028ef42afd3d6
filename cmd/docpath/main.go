package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"

	"github.com/jacoelho/docpath/internal/config"
	"github.com/jacoelho/docpath/internal/exit"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, result := config.Parse(args)
	if result == nil {
		var logger *slog.Logger
		if cfg.Debug {
			logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})).
				With("component", "docpath")
		}
		result = execute(cfg, stdout, logger)
	}

	if result.Message != "" {
		result.Output = redirect(result.Output, stdout, stderr)
		if result.ExitCode != exit.CodeSuccess && result.Output == stderr {
			result.Message = paint(color.FgRed, isTerminal(stderr)).Sprint(result.Message)
		}
		result.Print()
	}
	return result.ExitCode
}

// redirect maps the process streams chosen by the exit package onto the
// writers run was given.
func redirect(w, stdout, stderr io.Writer) io.Writer {
	if w == os.Stdout {
		return stdout
	}
	return stderr
}
