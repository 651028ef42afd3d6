package main

import (
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/sergi/go-diff/diffmatchpatch"
)

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func paint(attr color.Attribute, colored bool) *color.Color {
	c := color.New(attr)
	if colored {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// lineDiff renders a line diff of two texts. Removed lines start with "-",
// added lines with "+" and unchanged lines with a space.
func lineDiff(from, to string, colored bool) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	removed := paint(color.FgRed, colored)
	added := paint(color.FgGreen, colored)

	var sb strings.Builder
	for _, d := range diffs {
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			line = strings.TrimSuffix(line, "\n")
			switch d.Type {
			case diffmatchpatch.DiffDelete:
				sb.WriteString(removed.Sprint("-" + line))
			case diffmatchpatch.DiffInsert:
				sb.WriteString(added.Sprint("+" + line))
			default:
				sb.WriteString(" " + line)
			}
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
