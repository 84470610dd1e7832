// Command ucfmt canonicalizes .uc source layout, grounded on the
// teacher's main.go driver shape (read file, parse, report a
// caret-style error on failure) but printing the reformatted source
// in place of a parsed-program dump.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"ucc/internal/grammar"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: ucfmt <file.uc>")
		os.Exit(1)
	}

	path := os.Args[1]
	program, err := grammar.ParseFile(path)
	if err != nil {
		os.Exit(1)
	}

	fmt.Print(grammar.Print(program))
	color.Green("# formatted %s", path)
}
