// Command ucanalysis runs uC source through the front end and the
// dataflow pipeline, printing the optimised uCIR (and, with --cfg, a
// Graphviz DOT dump of each function's control-flow graph). Grounded
// on the teacher's cmd/kanso-cli/main.go driver shape (read file,
// parse, caret-report the first error, green success banner) and on
// original_source/uc_analysis.py's __main__ block, which the same flag
// names (--opt, --speedup) are ported from.
package main

import (
	"flag"
	"fmt"
	"os"

	"ucc/internal/cfgviz"
	"ucc/internal/dataflow"
	"ucc/internal/diag"
	"ucc/internal/ir"
	"ucc/internal/parser"
	"ucc/internal/sema"
)

func main() {
	opt := flag.Bool("opt", true, "run the dataflow optimisation pipeline")
	speedup := flag.Bool("speedup", false, "print the before/after instruction-count speedup")
	cfg := flag.Bool("cfg", false, "emit a Graphviz DOT file per function")
	debug := flag.Bool("debug", false, "log one line per dataflow pass")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Println("Usage: ucanalysis [--opt] [--speedup] [--cfg] [--debug] <file.uc>")
		os.Exit(1)
	}
	path := flag.Arg(0)

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read file: %s\n", err)
		os.Exit(1)
	}

	reporter := diag.NewReporter(path, string(source))

	prog, err := parser.ParseSource(string(source))
	if err != nil {
		reportFatal(reporter, err)
		os.Exit(1)
	}

	if err := sema.Analyze(prog); err != nil {
		reportFatal(reporter, err)
		os.Exit(1)
	}

	irProg, err := ir.Build(prog)
	if err != nil {
		reportFatal(reporter, err)
		os.Exit(1)
	}

	before := countInstructions(irProg)

	if *opt {
		logger := diag.NewLogger(diag.NewRunID(), *debug)
		dataflow.NewPipeline(logger).Run(irProg)
	}

	after := countInstructions(irProg)

	ir.Print(os.Stdout, irProg)

	if *speedup {
		ratio := 1.0
		if after > 0 {
			ratio = float64(before) / float64(after)
		}
		fmt.Fprintf(os.Stderr, "instructions: %d -> %d (%.2fx)\n", before, after, ratio)
	}

	if *cfg {
		for _, fn := range irProg.Functions {
			f, err := os.Create(fn.Name + ".gv")
			if err != nil {
				fmt.Fprintf(os.Stderr, "failed to write %s.gv: %s\n", fn.Name, err)
				continue
			}
			_ = cfgviz.Render(f, fn)
			f.Close()
		}
	}

	diag.Success(os.Stdout, path)
}

func countInstructions(prog *ir.Program) int {
	n := 0
	for _, fn := range prog.Functions {
		for _, blk := range fn.Blocks {
			n += len(blk.Instructions())
		}
	}
	return n
}

// reportFatal renders a *diag.Diagnostic with the caret reporter, or
// falls back to a plain message for the parser's non-Diagnostic error
// type (ParseError carries no Diagnostic-shaped position).
func reportFatal(r *diag.Reporter, err error) {
	if d, ok := err.(*diag.Diagnostic); ok {
		r.Report(os.Stderr, d)
		return
	}
	fmt.Fprintln(os.Stderr, err)
}
