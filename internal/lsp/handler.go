// Package lsp is a minimal Language Server Protocol front end for uC,
// publishing the front end's diagnostics and a hover endpoint that shows
// the semantic analyser's resolved type and storage location for an
// identifier. Grounded on the teacher's internal/lsp/handler.go
// (KansoHandler's content/asts cache, updateAST, sendDiagnosticNotification)
// but wired to parser.ParseSource/sema.Analyze instead of Kanso's contract
// parser, and with completion/semantic-tokens dropped in favor of hover,
// which this compiler's ast.Annotation makes meaningful (UCType, storage
// location) in a way Kanso's untyped-at-parse-time AST did not.
package lsp

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"ucc/internal/ast"
	"ucc/internal/diag"
	"ucc/internal/parser"
	"ucc/internal/sema"
)

// Handler implements the LSP server callbacks for uC.
type Handler struct {
	mu       sync.RWMutex
	content  map[string]string
	programs map[string]*ast.Program
}

// NewHandler creates and returns a new Handler instance.
func NewHandler() *Handler {
	return &Handler{
		content:  make(map[string]string),
		programs: make(map[string]*ast.Program),
	}
}

func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Println("uc-lsp Initialize called")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			HoverProvider: ptrBool(true),
		},
	}, nil
}

func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Println("uc-lsp Initialized")
	return nil
}

func (h *Handler) Shutdown(ctx *glsp.Context) error {
	log.Println("uc-lsp Shutdown")
	return nil
}

func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Printf("opened file: %s\n", params.TextDocument.URI)

	diagnostics, err := h.updateProgram(params.TextDocument.URI)
	if err != nil {
		return fmt.Errorf("failed to update AST: %w", err)
	}
	sendDiagnosticNotification(ctx, params.TextDocument.URI, diagnostics)
	return nil
}

func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Printf("changed file: %s\n", params.TextDocument.URI)

	diagnostics, err := h.updateProgram(params.TextDocument.URI)
	if err != nil {
		return fmt.Errorf("failed to update AST: %w", err)
	}
	sendDiagnosticNotification(ctx, params.TextDocument.URI, diagnostics)
	return nil
}

func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Printf("closed file: %s\n", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.content, path)
	delete(h.programs, path)
	return nil
}

// TextDocumentHover reports the resolved type and storage location of the
// identifier under the cursor, reading the ast.Annotation the semantic
// analyser left on the node during its last successful Analyze pass.
func (h *Handler) TextDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	h.mu.RLock()
	prog, ok := h.programs[path]
	h.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	pos := ast.Position{Line: int(params.Position.Line) + 1, Column: int(params.Position.Character) + 1}
	id := findIdentAt(prog, pos)
	if id == nil {
		return nil, nil
	}

	contents := hoverText(id)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{Kind: protocol.MarkupKindMarkdown, Value: contents},
	}, nil
}

// updateProgram re-parses and re-analyses the file at uri, caching the
// resulting AST for hover lookups and returning the diagnostics to publish
// (empty, not nil, on success — so a stale error clears on the client).
func (h *Handler) updateProgram(uri protocol.DocumentUri) ([]protocol.Diagnostic, error) {
	path, err := uriToPath(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", uri, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	prog, err := parser.ParseSource(string(content))
	if err != nil {
		if pe, ok := err.(*parser.ParseError); ok {
			return []protocol.Diagnostic{convertParseError(pe)}, nil
		}
		if d, ok := err.(*diag.Diagnostic); ok {
			return []protocol.Diagnostic{ConvertDiagnostic(d)}, nil
		}
		return []protocol.Diagnostic{{Message: err.Error(), Severity: ptrSeverity(protocol.DiagnosticSeverityError)}}, nil
	}

	if err := sema.Analyze(prog); err != nil {
		if d, ok := err.(*diag.Diagnostic); ok {
			return []protocol.Diagnostic{ConvertDiagnostic(d)}, nil
		}
		return []protocol.Diagnostic{{Message: err.Error(), Severity: ptrSeverity(protocol.DiagnosticSeverityError)}}, nil
	}

	h.mu.Lock()
	h.content[path] = string(content)
	h.programs[path] = prog
	h.mu.Unlock()

	return []protocol.Diagnostic{}, nil
}

func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}
	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.URI, diagnostics []protocol.Diagnostic) {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}
