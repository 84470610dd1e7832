// Package diag is the ambient diagnostics stack: a fatal-only
// Diagnostic value plus the CLI-facing caret renderer and debug logger,
// grounded on the teacher's internal/errors package (codes.go,
// reporter.go) but slimmed to the fatal-first-error contract of
// SPEC_FULL §7 — no suggestions, notes or help text, since nothing in
// this repository ever renders them.
package diag

import (
	"fmt"
	"strings"

	"ucc/internal/ast"
)

type Level int

const (
	LevelLexical Level = iota
	LevelSyntax
	LevelSemantic
	LevelInternal
)

func (l Level) String() string {
	switch l {
	case LevelLexical:
		return "LexerError"
	case LevelSyntax:
		return "ParserError"
	case LevelSemantic:
		return "SemanticError"
	default:
		return "InternalError"
	}
}

// Code is a numbered diagnostic code. Semantic codes 1-27 reproduce
// uc_sema.py's _assert_semantic message table verbatim (SPEC_FULL §4.1).
type Code int

const (
	ErrUndefinedName            Code = 1
	ErrArrayIndexNotInt          Code = 2
	ErrAssertNotBool              Code = 3
	ErrAssignTypeMismatch        Code = 4
	ErrAssignOpUnsupported       Code = 5
	ErrBinaryOpTypeMismatch      Code = 6
	ErrBinaryOpUnsupported       Code = 7
	ErrBreakOutsideLoop          Code = 8
	ErrArrayDimMismatch          Code = 9
	ErrArrayInitSizeMismatch     Code = 10
	ErrInitTypeMismatch          Code = 11
	ErrScalarInitWithList        Code = 12
	ErrInitListSizeMismatch      Code = 13
	ErrListVarSizeMismatch       Code = 14
	ErrWhileCondNotBool          Code = 15
	ErrNotAFunction              Code = 16
	ErrArgCountMismatch          Code = 17
	ErrArgTypeMismatch           Code = 18
	ErrIfCondNotBool             Code = 19
	ErrExpectedConstant          Code = 20
	ErrPrintArgNotBasicType      Code = 21
	ErrPrintArgNotBasicVariable  Code = 22
	ErrReadArgNotVariable        Code = 23
	ErrReturnTypeMismatch        Code = 24
	ErrDuplicateDeclaration      Code = 25
	ErrUnaryOpUnsupported        Code = 26
	ErrUndefined                 Code = 27
)

// Diagnostic is a single fatal compiler error.
type Diagnostic struct {
	Level   Level
	Code    Code
	Message string
	Pos     ast.Position
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s @ %s", d.Level, d.Message, d.Pos)
}

// messages reproduces uc_sema.py's error_msgs table. Each template
// references whichever of {name}, {ltype}, {rtype} the original
// f-string used — never necessarily all three, and not always in that
// order, so New substitutes by name rather than positionally.
var messages = map[Code]string{
	ErrUndefinedName:            "{name} is not defined",
	ErrArrayIndexNotInt:         "{ltype} must be of type(int)",
	ErrAssertNotBool:            "Expression must be of type(bool)",
	ErrAssignTypeMismatch:       "Cannot assign {rtype} to {ltype}",
	ErrAssignOpUnsupported:      "Assignment operator {name} is not supported by {ltype}",
	ErrBinaryOpTypeMismatch:     "Binary operator {name} does not have matching LHS/RHS types",
	ErrBinaryOpUnsupported:      "Binary operator {name} is not supported by {ltype}",
	ErrBreakOutsideLoop:         "Break statement must be inside a loop",
	ErrArrayDimMismatch:         "Array dimension mismatch",
	ErrArrayInitSizeMismatch:    "Size mismatch on {name} initialization",
	ErrInitTypeMismatch:         "{name} initialization type mismatch",
	ErrScalarInitWithList:       "{name} initialization must be a single element",
	ErrInitListSizeMismatch:     "Lists have different sizes",
	ErrListVarSizeMismatch:      "List & variable have different sizes",
	ErrWhileCondNotBool:         "conditional expression is {ltype}, not type(bool)",
	ErrNotAFunction:             "{name} is not a function",
	ErrArgCountMismatch:         "no. arguments to call {name} function mismatch",
	ErrArgTypeMismatch:          "Type mismatch with parameter {name}",
	ErrIfCondNotBool:            "The condition expression must be of type(bool)",
	ErrExpectedConstant:         "Expression must be a constant",
	ErrPrintArgNotBasicType:     "Expression is not of basic type",
	ErrPrintArgNotBasicVariable: "{name} does not reference a variable of basic type",
	ErrReadArgNotVariable:       "{name}\nIs not a variable",
	ErrReturnTypeMismatch:       "Return of {ltype} is incompatible with {rtype} function definition",
	ErrDuplicateDeclaration:     "Name {name} is already defined in this scope",
	ErrUnaryOpUnsupported:       "Unary operator {name} is not supported",
	ErrUndefined:                "Undefined error",
}

// New builds a semantic Diagnostic for code, substituting name, ltype
// and rtype into the message template's {name}/{ltype}/{rtype} slots.
// Pass "" for slots the chosen template doesn't reference.
func New(code Code, pos ast.Position, name, ltype, rtype string) *Diagnostic {
	tmpl, ok := messages[code]
	if !ok {
		tmpl = messages[ErrUndefined]
	}
	r := strings.NewReplacer("{name}", name, "{ltype}", ltype, "{rtype}", rtype)
	return &Diagnostic{Level: LevelSemantic, Code: code, Message: r.Replace(tmpl), Pos: pos}
}

func Lexical(msg string, line, col int) *Diagnostic {
	return &Diagnostic{Level: LevelLexical, Message: msg, Pos: ast.Position{Line: line, Column: col}}
}

func Syntax(msg string, pos ast.Position) *Diagnostic {
	return &Diagnostic{Level: LevelSyntax, Message: msg, Pos: pos}
}

func Internal(msg string, pos ast.Position) *Diagnostic {
	return &Diagnostic{Level: LevelInternal, Message: msg, Pos: pos}
}
