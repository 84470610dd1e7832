package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Reporter renders a Diagnostic as a caret-style source excerpt,
// adapted from the teacher's internal/errors.ErrorReporter and its
// kanso/cmd/kanso-cli/main.go reportParseError helper.
type Reporter struct {
	Filename string
	lines    []string
}

func NewReporter(filename, source string) *Reporter {
	return &Reporter{Filename: filename, lines: strings.Split(source, "\n")}
}

// Report writes a caret diagnostic to w in the teacher's colour palette.
func (r *Reporter) Report(w io.Writer, d *Diagnostic) {
	red := color.New(color.FgRed, color.Bold)
	hiRed := color.New(color.FgHiRed)

	red.Fprintf(w, "%s: %s\n", d.Level, d.Message)
	if d.Pos.Line < 1 || d.Pos.Line > len(r.lines) {
		fmt.Fprintf(w, "  --> %s\n", r.Filename)
		return
	}
	fmt.Fprintf(w, "  --> %s:%d:%d\n", r.Filename, d.Pos.Line, d.Pos.Column)
	line := r.lines[d.Pos.Line-1]
	fmt.Fprintln(w, line)
	col := d.Pos.Column
	if col < 1 {
		col = 1
	}
	caret := strings.Repeat(" ", col-1) + "^"
	hiRed.Fprintln(w, caret)
}

// Success prints the teacher's green success banner.
func Success(w io.Writer, path string) {
	color.New(color.FgGreen).Fprintf(w, "✅ Successfully processed %s\n", path)
}
