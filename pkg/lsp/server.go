package lsp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"

	"github.com/source-academy/scm-slang/pkg/diag"
	"github.com/source-academy/scm-slang/pkg/eval"
	"github.com/source-academy/scm-slang/pkg/eval/vals"
	"github.com/source-academy/scm-slang/pkg/parse"
)

var (
	errMethodNotFound = &jsonrpc2.Error{
		Code: jsonrpc2.CodeMethodNotFound, Message: "method not found"}
	errInvalidParams = &jsonrpc2.Error{
		Code: jsonrpc2.CodeInvalidParams, Message: "invalid params"}
)

type server struct {
	evaler  *eval.Evaler
	content map[lsp.DocumentURI]string
}

func newServer() *server {
	return &server{eval.NewEvaler(), make(map[lsp.DocumentURI]string)}
}

func handler(s *server) jsonrpc2.Handler {
	return routingHandler(map[string]method{
		"initialize":              s.initialize,
		"textDocument/didOpen":    s.didOpen,
		"textDocument/didChange":  s.didChange,
		"textDocument/didClose":   s.didClose,
		"textDocument/hover":      s.hover,
		"textDocument/completion": s.completion,

		"initialized": noop,
		"shutdown":    noop,
		"exit":        exit,
		// Sent by some clients even though the server does not ask for it.
		"workspace/didChangeWatchedFiles": noop,
	})
}

type method func(context.Context, jsonrpc2.JSONRPC2, json.RawMessage) (any, error)

func noop(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return nil, nil
}

func exit(_ context.Context, conn jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return nil, conn.Close()
}

func routingHandler(methods map[string]method) jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		fn, ok := methods[req.Method]
		if !ok {
			logger.Println("unknown method", req.Method)
			return nil, errMethodNotFound
		}
		var params json.RawMessage
		if req.Params != nil {
			params = *req.Params
		}
		return fn(ctx, conn, params)
	})
}

// Handler implementations. These are all called synchronously.

func (s *server) initialize(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return &lsp.InitializeResult{
		Capabilities: lsp.ServerCapabilities{
			TextDocumentSync: &lsp.TextDocumentSyncOptionsOrKind{
				Options: &lsp.TextDocumentSyncOptions{
					OpenClose: true,
					Change:    lsp.TDSKFull,
				},
			},
			CompletionProvider: &lsp.CompletionOptions{},
			HoverProvider:      true,
		},
	}, nil
}

func (s *server) didOpen(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidOpenTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	uri, content := params.TextDocument.URI, params.TextDocument.Text
	s.content[uri] = content
	go publishDiagnostics(ctx, conn, uri, content)
	return nil, nil
}

func (s *server) didChange(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidChangeTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil || len(params.ContentChanges) == 0 {
		return nil, errInvalidParams
	}

	// Only full-text changes are advertised in initialize, so the last change
	// is the whole document.
	uri := params.TextDocument.URI
	content := params.ContentChanges[len(params.ContentChanges)-1].Text
	s.content[uri] = content
	go publishDiagnostics(ctx, conn, uri, content)
	return nil, nil
}

func (s *server) didClose(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidCloseTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	delete(s.content, params.TextDocument.URI)
	return nil, nil
}

func (s *server) hover(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.TextDocumentPositionParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	content := s.content[params.TextDocument.URI]
	from, to := wordAt(content, lspPositionToIdx(content, params.Position))
	text := s.describe(content, content[from:to])
	if text == "" {
		return lsp.Hover{Contents: []lsp.MarkedString{}}, nil
	}
	rng := lspRangeFromRange(content, diag.Ranging{From: from, To: to})
	return &lsp.Hover{Contents: []lsp.MarkedString{lsp.RawMarkedString(text)}, Range: &rng}, nil
}

// Describes a name for hovering. Definitions in the document take precedence
// over the global environment.
func (s *server) describe(content, name string) string {
	if name == "" {
		return ""
	}
	for _, def := range definitions(content) {
		if def.name != name {
			continue
		}
		if def.signature == name {
			return fmt.Sprintf("%s\n\ndefined at line %d", name, def.line)
		}
		return fmt.Sprintf("%s\n\nprocedure defined at line %d", def.signature, def.line)
	}
	for _, kw := range parse.Keywords {
		if kw == name {
			return name + "\n\nspecial form"
		}
	}
	if v, err := s.evaler.Global().Get(name); err == nil {
		return fmt.Sprintf("%s\n\n%s", name, vals.Repr(v))
	}
	return ""
}

func (s *server) completion(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.CompletionParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	content := s.content[params.TextDocument.URI]
	dot := lspPositionToIdx(content, params.Position)
	from := dot
	for from > 0 && !isDelimiter(content[from-1]) {
		from--
	}
	prefix := content[from:dot]
	lspRange := lspRangeFromRange(content, diag.Ranging{From: from, To: dot})

	kinds := make(map[string]lsp.CompletionItemKind)
	for _, name := range s.evaler.Global().Names() {
		kinds[name] = lsp.CIKVariable
		if v, _ := s.evaler.Global().Get(name); v != nil && v.Kind() == "procedure" {
			kinds[name] = lsp.CIKFunction
		}
	}
	for _, def := range definitions(content) {
		kinds[def.name] = lsp.CIKVariable
		if def.signature != def.name {
			kinds[def.name] = lsp.CIKFunction
		}
	}
	for _, kw := range parse.Keywords {
		kinds[kw] = lsp.CIKKeyword
	}

	var names []string
	for name := range kinds {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	items := make([]lsp.CompletionItem, len(names))
	for i, name := range names {
		items[i] = lsp.CompletionItem{
			Label: name,
			Kind:  kinds[name],
			TextEdit: &lsp.TextEdit{
				Range:   lspRange,
				NewText: name,
			},
		}
	}
	return items, nil
}

// A top-level definition in a document.
type definition struct {
	name string
	// "(name params...)" for procedures, the name otherwise.
	signature string
	line      int
}

func definitions(content string) []definition {
	nodes, _ := parse.Parse(parse.Source{Name: "[document]", Code: content})
	var defs []definition
	for _, n := range nodes {
		if ex, ok := n.(*parse.Export); ok {
			n = ex.Definition
		}
		d, ok := n.(*parse.Definition)
		if !ok {
			continue
		}
		def := definition{d.Name.Name, d.Name.Name, d.Name.Start.Line}
		if lambda, ok := d.Value.(*parse.Lambda); ok {
			def.signature = signature(d.Name.Name, lambda)
		}
		defs = append(defs, def)
	}
	return defs
}

func signature(name string, l *parse.Lambda) string {
	var sb strings.Builder
	sb.WriteString("(" + name)
	for _, p := range l.Params {
		sb.WriteString(" " + p.Name)
	}
	if l.Rest != nil {
		sb.WriteString(" . " + l.Rest.Name)
	}
	sb.WriteString(")")
	return sb.String()
}

func publishDiagnostics(ctx context.Context, conn jsonrpc2.JSONRPC2, uri lsp.DocumentURI, content string) {
	conn.Notify(ctx, "textDocument/publishDiagnostics",
		lsp.PublishDiagnosticsParams{URI: uri, Diagnostics: diagnostics(uri, content)})
}

func diagnostics(uri lsp.DocumentURI, content string) []lsp.Diagnostic {
	_, err := parse.Parse(parse.Source{Name: string(uri), Code: content})
	if err == nil {
		return []lsp.Diagnostic{}
	}

	entries := diag.UnpackErrors(err)
	diags := make([]lsp.Diagnostic, len(entries))
	for i, err := range entries {
		diags[i] = lsp.Diagnostic{
			Range:    lspRangeFromRange(content, err),
			Severity: lsp.Error,
			Source:   "parse",
			Message:  err.Message,
		}
	}
	return diags
}

func isDelimiter(b byte) bool {
	return strings.IndexByte(" \t\r\n()[]'`,\";", b) >= 0
}

// Returns the range of the word containing or ending at idx.
func wordAt(s string, idx int) (from, to int) {
	from, to = idx, idx
	for from > 0 && !isDelimiter(s[from-1]) {
		from--
	}
	for to < len(s) && !isDelimiter(s[to]) {
		to++
	}
	return from, to
}

func lspRangeFromRange(s string, r diag.Ranger) lsp.Range {
	rg := r.Range()
	return lsp.Range{
		Start: lspPositionFromIdx(s, rg.From),
		End:   lspPositionFromIdx(s, rg.To),
	}
}

func lspPositionToIdx(s string, pos lsp.Position) int {
	var idx int
	walkString(s, func(i int, p lsp.Position) bool {
		idx = i
		return p.Line < pos.Line || (p.Line == pos.Line && p.Character < pos.Character)
	})
	return idx
}

func lspPositionFromIdx(s string, idx int) lsp.Position {
	var pos lsp.Position
	walkString(s, func(i int, p lsp.Position) bool {
		pos = p
		return i < idx
	})
	return pos
}

// Generates (index, position) pairs in s, stopping when f returns false.
// Characters are counted in UTF-16 code units.
func walkString(s string, f func(i int, p lsp.Position) bool) {
	var p lsp.Position
	lastCR := false

	for i, r := range s {
		if !f(i, p) {
			return
		}
		switch {
		case r == '\r':
			p.Line++
			p.Character = 0
		case r == '\n':
			if !lastCR {
				p.Line++
				p.Character = 0
			}
		case r <= 0xFFFF:
			p.Character++
		default:
			p.Character += 2
		}
		lastCR = r == '\r'
	}
	f(len(s), p)
}
