// Package lspserver implements a Language Server Protocol front end over
// the core parser and lint layer, for editors that want live diagnostics
// on .env-style files as they are typed.
package lspserver

import (
	"sync"

	"github.com/ph1losof/korni"
	"github.com/ph1losof/korni/lint"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const serverName = "korni-lsp"

// Server is a stdio Language Server Protocol front end. It holds no
// filesystem state beyond the most recently seen text of each open
// document, keyed by URI.
type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string

	mu   sync.RWMutex
	docs map[string]string
}

// New builds a Server reporting version to clients during initialize.
func New(version string) *Server {
	ls := &Server{
		version: version,
		docs:    make(map[string]string),
	}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentDidSave:   ls.textDocumentDidSave,
	}

	ls.server = server.NewServer(&ls.handler, serverName, false)

	return ls
}

// RunStdio serves the protocol over stdin/stdout until the client
// disconnects or sends shutdown+exit.
func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.updateAndPublish(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		ls.updateAndPublish(ctx, params.TextDocument.URI, whole.Text)
	}
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ls.mu.Lock()
	delete(ls.docs, params.TextDocument.URI)
	ls.mu.Unlock()

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		ls.updateAndPublish(ctx, params.TextDocument.URI, *params.Text)
		return nil
	}

	ls.mu.RLock()
	text, ok := ls.docs[params.TextDocument.URI]
	ls.mu.RUnlock()
	if ok {
		ls.publishDiagnostics(ctx, params.TextDocument.URI, text)
	}
	return nil
}

func (ls *Server) updateAndPublish(ctx *glsp.Context, uri, text string) {
	ls.mu.Lock()
	ls.docs[uri] = text
	ls.mu.Unlock()
	ls.publishDiagnostics(ctx, uri, text)
}

func (ls *Server) publishDiagnostics(ctx *glsp.Context, uri, text string) {
	entries := korni.ParseWithOptions(text, korni.FullOptions)
	diags := lint.Run(entries)

	protoDiags := make([]protocol.Diagnostic, 0, len(diags))
	for _, d := range diags {
		protoDiags = append(protoDiags, toProtocolDiagnostic(d))
	}

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: protoDiags,
	})
}

func toProtocolDiagnostic(d lint.Diagnostic) protocol.Diagnostic {
	severity := toProtocolSeverity(d.Severity)
	source := serverName
	message := d.Message

	startLine := uint32(d.Span.Start.Line)
	startCol := uint32(0)
	if d.Span.Start.Col > 0 {
		startCol = uint32(d.Span.Start.Col)
	}

	endLine := uint32(d.Span.End.Line)
	endCol := startCol + 1
	if uint32(d.Span.End.Col) > startCol {
		endCol = uint32(d.Span.End.Col)
	}

	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: startLine, Character: startCol},
			End:   protocol.Position{Line: endLine, Character: endCol},
		},
		Severity: &severity,
		Source:   &source,
		Message:  message,
	}
}

func toProtocolSeverity(s lint.Severity) protocol.DiagnosticSeverity {
	switch s {
	case lint.SeverityError:
		return protocol.DiagnosticSeverityError
	case lint.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	case lint.SeverityInfo:
		return protocol.DiagnosticSeverityInformation
	case lint.SeverityHint:
		return protocol.DiagnosticSeverityHint
	default:
		return protocol.DiagnosticSeverityInformation
	}
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
