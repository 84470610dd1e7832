package ir

import (
	"fmt"
	"io"
	"strings"

	"github.com/iancoleman/strcase"
)

// Print renders a Program as uCIR text: the globals section followed
// by each function's blocks in Function.Blocks order, one instruction
// per line, matching the textual form SPEC_FULL §6 and §4.2 describe.
// Grounded on the teacher's internal/ir.Printer line-oriented emission
// shape (kanso/internal/ir/printer.go).
func Print(w io.Writer, prog *Program) error {
	for _, g := range prog.Globals {
		if _, err := fmt.Fprintln(w, g.String()); err != nil {
			return err
		}
	}
	if len(prog.Globals) > 0 {
		fmt.Fprintln(w)
	}
	for i, fn := range prog.Functions {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := printFunction(w, fn); err != nil {
			return err
		}
	}
	return nil
}

func printFunction(w io.Writer, fn *Function) error {
	fmt.Fprintf(w, "; %s\n", describeFunction(fn))
	for _, blk := range fn.Blocks {
		label := &Label{Name: strings.TrimPrefix(blk.Label(), "%")}
		fmt.Fprintln(w, label.String())
		for _, instr := range blk.Instructions() {
			fmt.Fprintf(w, "    %s\n", instr.String())
		}
	}
	return nil
}

// describeFunction renders a human-readable header comment, lowering
// the uC identifier to snake_case so the comment reads consistently
// regardless of the source's own naming convention.
func describeFunction(fn *Function) string {
	return fmt.Sprintf("function %s returns %s", strcase.ToSnake(fn.Name), fn.ReturnType.String())
}
