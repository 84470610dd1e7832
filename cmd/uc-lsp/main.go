// Command uc-lsp is a language server for uC, speaking LSP over stdio to
// publish parse/semantic diagnostics and identifier hovers. Grounded on the
// teacher's cmd/kanso-lsp/main.go wiring of a protocol.Handler into
// server.NewServer/RunStdio.
package main

import (
	"log"
	"os"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"ucc/internal/lsp"
)

const lsName = "uc-lsp"

func main() {
	commonlog.Configure(1, nil)

	h := lsp.NewHandler()

	handler := protocol.Handler{
		Initialize:            h.Initialize,
		Initialized:           h.Initialized,
		Shutdown:              h.Shutdown,
		TextDocumentDidOpen:   h.TextDocumentDidOpen,
		TextDocumentDidChange: h.TextDocumentDidChange,
		TextDocumentDidClose:  h.TextDocumentDidClose,
		TextDocumentHover:     h.TextDocumentHover,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Println("starting uc-lsp server...")
	if err := s.RunStdio(); err != nil {
		log.Println("error starting uc-lsp server:", err)
		os.Exit(1)
	}
}
