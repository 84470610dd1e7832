// Command uccode compiles and executes a uC program via internal/interp,
// optionally printing the generated uCIR (--ir) and/or each function's
// CFG (--cfg). Grounded on the teacher's cmd/kanso-cli/main.go driver
// shape and on original_source/uc_code.py's __main__ block, whose
// --ir-style inspection flags this CLI's flag names echo.
package main

import (
	"flag"
	"fmt"
	"os"

	"ucc/internal/cfgviz"
	"ucc/internal/diag"
	"ucc/internal/interp"
	"ucc/internal/ir"
	"ucc/internal/parser"
	"ucc/internal/sema"
)

func main() {
	showIR := flag.Bool("ir", false, "print the generated uCIR before running")
	showCFG := flag.Bool("cfg", false, "emit a Graphviz DOT file per function")
	debug := flag.Bool("debug", false, "trace every instruction the interpreter executes")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Println("Usage: uccode [--ir] [--cfg] [--debug] <file.uc>")
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

	if *showIR {
		ir.Print(os.Stdout, irProg)
	}

	if *showCFG {
		for _, fn := range irProg.Functions {
			f, ferr := os.Create(fn.Name + ".gv")
			if ferr != nil {
				fmt.Fprintf(os.Stderr, "failed to write %s.gv: %s\n", fn.Name, ferr)
				continue
			}
			_ = cfgviz.Render(f, fn)
			f.Close()
		}
	}

	runner := interp.New(irProg, os.Stdin, os.Stdout)
	if *debug {
		runner.SetLogger(diag.NewLogger(diag.NewRunID(), true))
	}
	if _, err := runner.Run("main"); err != nil {
		fmt.Fprintf(os.Stderr, "runtime error: %s\n", err)
		os.Exit(1)
	}
}

func reportFatal(r *diag.Reporter, err error) {
	if d, ok := err.(*diag.Diagnostic); ok {
		r.Report(os.Stderr, d)
		return
	}
	fmt.Fprintln(os.Stderr, err)
}
