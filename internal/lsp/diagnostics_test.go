package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ucc/internal/ast"
	"ucc/internal/diag"
	"ucc/internal/parser"
)

func TestConvertDiagnosticConvertsToZeroBasedRange(t *testing.T) {
	d := &diag.Diagnostic{
		Level:   diag.LevelSemantic,
		Message: "undefined name 'y'",
		Pos:     ast.Position{Line: 3, Column: 5},
	}

	out := ConvertDiagnostic(d)
	assert.Equal(t, uint32(2), out.Range.Start.Line)
	assert.Equal(t, uint32(4), out.Range.Start.Character)
	assert.Equal(t, "undefined name 'y'", out.Message)
}

func TestConvertParseErrorConvertsToZeroBasedRange(t *testing.T) {
	pe := &parser.ParseError{Msg: "expected ';'", Line: 2, Col: 8}

	out := convertParseError(pe)
	assert.Equal(t, uint32(1), out.Range.Start.Line)
	assert.Equal(t, uint32(7), out.Range.Start.Character)
	assert.Equal(t, "expected ';'", out.Message)
}
