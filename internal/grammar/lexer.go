// Package grammar is a secondary, participle-based surface grammar for
// .uc source, used only by cmd/ucfmt to canonicalize formatting. It is
// deliberately looser than internal/parser's hand-written
// scanner/Pratt parser (the production parser internal/sema and
// internal/ir consume): it captures enough shape to re-render source
// in a canonical layout, not to drive semantic analysis.
//
// Grounded on the teacher's grammar/ package (lexer.go/grammar.go/
// parser.go/printer.go), adapted from Kanso's module/struct/function
// surface syntax to uC's C-like declarations, statements and
// expressions (original_source/uc_lexer.py's keyword/operator set).
package grammar

import "github.com/alecthomas/participle/v2/lexer"

var UCLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Comment", `//[^\n]*`, nil},
		{"Float", `[0-9]+\.[0-9]+`, nil},
		{"Integer", `[0-9]+`, nil},
		{"Char", `'(\\.|[^'\\])'`, nil},
		{"String", `"(\\.|[^"\\])*"`, nil},
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},
		{"Operator", `(\+\+|--|&&|\|\||==|!=|<=|>=|[-+*/%<>=!&])`, nil},
		{"Punctuation", `[{}\[\]();,]`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
