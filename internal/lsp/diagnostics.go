package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"ucc/internal/ast"
	"ucc/internal/diag"
	"ucc/internal/parser"
)

// ConvertDiagnostic turns a *diag.Diagnostic (the fatal-first-error shape
// the semantic analyser produces, SPEC_FULL §7) into a single LSP
// diagnostic, converting its 1-based Position to the 0-based Range the
// protocol expects. Ported from the teacher's ConvertParseErrors/
// ConvertScanErrors pair. The parser's *parser.ParseError (which also
// carries lexical errors) is handled separately by convertParseError.
func ConvertDiagnostic(d *diag.Diagnostic) protocol.Diagnostic {
	return protocol.Diagnostic{
		Range:    posToRange(d.Pos),
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString("ucc"),
		Message:  d.Message,
	}
}

// convertParseError handles the parser's non-Diagnostic error type
// (*parser.ParseError carries a bare line/column, not an ast.Position).
func convertParseError(e *parser.ParseError) protocol.Diagnostic {
	return protocol.Diagnostic{
		Range:    posToRange(ast.Position{Line: e.Line, Column: e.Col}),
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString("ucc-parser"),
		Message:  e.Msg,
	}
}

func posToRange(pos ast.Position) protocol.Range {
	line := uint32(0)
	if pos.Line > 0 {
		line = uint32(pos.Line - 1)
	}
	col := uint32(0)
	if pos.Column > 0 {
		col = uint32(pos.Column - 1)
	}
	return protocol.Range{
		Start: protocol.Position{Line: line, Character: col},
		End:   protocol.Position{Line: line, Character: col + 1},
	}
}

func ptrBool(b bool) *bool { return &b }

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity { return &s }

func ptrString(s string) *string { return &s }

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind { return &k }
