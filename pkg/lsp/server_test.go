package lsp

import (
	"context"
	"encoding/json"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"

	. "github.com/source-academy/scm-slang/pkg/prog/progtest"
)

const testURI = lsp.DocumentURI("file:///test.scm")

type testClient struct {
	conn  *jsonrpc2.Conn
	diags chan lsp.PublishDiagnosticsParams
}

func setup(t *testing.T) *testClient {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	serverSide, clientSide := net.Pipe()

	serverConn := jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(serverSide, jsonrpc2.VSCodeObjectCodec{}),
		handler(newServer()))

	c := &testClient{diags: make(chan lsp.PublishDiagnosticsParams, 10)}
	c.conn = jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(clientSide, jsonrpc2.VSCodeObjectCodec{}),
		jsonrpc2.HandlerWithError(func(_ context.Context, _ *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
			if req.Method == "textDocument/publishDiagnostics" && req.Params != nil {
				var params lsp.PublishDiagnosticsParams
				if err := json.Unmarshal(*req.Params, &params); err == nil {
					c.diags <- params
				}
			}
			return nil, nil
		}))

	t.Cleanup(func() {
		c.conn.Close()
		serverConn.Close()
		cancel()
	})
	return c
}

func (c *testClient) call(t *testing.T, method string, params, result any) {
	t.Helper()
	if err := c.conn.Call(context.Background(), method, params, result); err != nil {
		t.Fatalf("%s: %v", method, err)
	}
}

func (c *testClient) open(t *testing.T, text string) {
	t.Helper()
	err := c.conn.Notify(context.Background(), "textDocument/didOpen",
		lsp.DidOpenTextDocumentParams{
			TextDocument: lsp.TextDocumentItem{URI: testURI, LanguageID: "scheme", Text: text}})
	if err != nil {
		t.Fatal(err)
	}
}

func (c *testClient) nextDiagnostics(t *testing.T) lsp.PublishDiagnosticsParams {
	t.Helper()
	select {
	case d := <-c.diags:
		return d
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for diagnostics")
		return lsp.PublishDiagnosticsParams{}
	}
}

func TestInitialize(t *testing.T) {
	c := setup(t)
	var result lsp.InitializeResult
	c.call(t, "initialize", lsp.InitializeParams{}, &result)
	if !result.Capabilities.HoverProvider || result.Capabilities.CompletionProvider == nil {
		t.Errorf("got capabilities %+v", result.Capabilities)
	}
}

func TestUnknownMethod(t *testing.T) {
	c := setup(t)
	err := c.conn.Call(context.Background(), "foo/bar", nil, nil)
	if err == nil || !strings.Contains(err.Error(), "method not found") {
		t.Errorf("got error %v, want method not found", err)
	}
}

func TestDiagnostics(t *testing.T) {
	c := setup(t)
	c.open(t, "(define x 1)\n(if x)")

	got := c.nextDiagnostics(t)
	want := lsp.PublishDiagnosticsParams{
		URI: testURI,
		Diagnostics: []lsp.Diagnostic{{
			Range: lsp.Range{
				Start: lsp.Position{Line: 1, Character: 0},
				End:   lsp.Position{Line: 1, Character: 6}},
			Severity: lsp.Error,
			Source:   "parse",
			Message:  "if requires exactly 3 arguments",
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("diagnostics (-want +got):\n%s", diff)
	}

	err := c.conn.Notify(context.Background(), "textDocument/didChange",
		lsp.DidChangeTextDocumentParams{
			TextDocument:   lsp.VersionedTextDocumentIdentifier{TextDocumentIdentifier: lsp.TextDocumentIdentifier{URI: testURI}},
			ContentChanges: []lsp.TextDocumentContentChangeEvent{{Text: "(if x 1 2)"}},
		})
	if err != nil {
		t.Fatal(err)
	}
	if got := c.nextDiagnostics(t); len(got.Diagnostics) != 0 {
		t.Errorf("got diagnostics %v after fixing the error, want none", got.Diagnostics)
	}
}

func TestCompletion(t *testing.T) {
	c := setup(t)
	c.open(t, "(define (cube x) (* x x x))\n(define cutoff 3)\n(cu")
	c.nextDiagnostics(t)

	var items []lsp.CompletionItem
	c.call(t, "textDocument/completion", lsp.CompletionParams{
		TextDocumentPositionParams: lsp.TextDocumentPositionParams{
			TextDocument: lsp.TextDocumentIdentifier{URI: testURI},
			Position:     lsp.Position{Line: 2, Character: 3},
		}}, &items)

	labels := make(map[string]lsp.CompletionItemKind)
	for _, item := range items {
		if !strings.HasPrefix(item.Label, "cu") {
			t.Errorf("got item %q not starting with cu", item.Label)
		}
		labels[item.Label] = item.Kind
	}
	if labels["cube"] != lsp.CIKFunction {
		t.Errorf("cube has kind %v, want function", labels["cube"])
	}
	if labels["cutoff"] != lsp.CIKVariable {
		t.Errorf("cutoff has kind %v, want variable", labels["cutoff"])
	}
	if len(items) > 0 {
		wantRange := lsp.Range{
			Start: lsp.Position{Line: 2, Character: 1},
			End:   lsp.Position{Line: 2, Character: 3}}
		if r := items[0].TextEdit.Range; r != wantRange {
			t.Errorf("got replaced range %v, want %v", r, wantRange)
		}
	}
}

func TestCompletion_KeywordsAndPrimitives(t *testing.T) {
	c := setup(t)
	c.open(t, "(")
	c.nextDiagnostics(t)

	var items []lsp.CompletionItem
	c.call(t, "textDocument/completion", lsp.CompletionParams{
		TextDocumentPositionParams: lsp.TextDocumentPositionParams{
			TextDocument: lsp.TextDocumentIdentifier{URI: testURI},
			Position:     lsp.Position{Line: 0, Character: 1},
		}}, &items)

	kinds := make(map[string]lsp.CompletionItemKind)
	for _, item := range items {
		kinds[item.Label] = item.Kind
	}
	if kinds["lambda"] != lsp.CIKKeyword {
		t.Errorf("lambda has kind %v, want keyword", kinds["lambda"])
	}
	if kinds["car"] != lsp.CIKFunction {
		t.Errorf("car has kind %v, want function", kinds["car"])
	}
}

var hoverTests = []struct {
	name string
	pos  lsp.Position
	want string
}{
	{"procedure in document", lsp.Position{Line: 1, Character: 2}, "(sq x)\n\nprocedure defined at line 1"},
	{"variable in document", lsp.Position{Line: 1, Character: 4}, "n\n\ndefined at line 3"},
	{"keyword", lsp.Position{Line: 2, Character: 3}, "define\n\nspecial form"},
	{"primitive", lsp.Position{Line: 3, Character: 2}, "car\n\n#<primitive:car>"},
}

func TestHover(t *testing.T) {
	c := setup(t)
	c.open(t, "(define (sq x) (* x x))\n(sq n)\n(define n 2)\n(car n)")
	c.nextDiagnostics(t)

	for _, test := range hoverTests {
		t.Run(test.name, func(t *testing.T) {
			var result struct {
				Contents []string `json:"contents"`
			}
			c.call(t, "textDocument/hover", lsp.TextDocumentPositionParams{
				TextDocument: lsp.TextDocumentIdentifier{URI: testURI},
				Position:     test.pos,
			}, &result)
			if len(result.Contents) != 1 || result.Contents[0] != test.want {
				t.Errorf("got %q, want %q", result.Contents, test.want)
			}
		})
	}
}

func TestHover_Nothing(t *testing.T) {
	c := setup(t)
	c.open(t, "(undefined-thing)")
	c.nextDiagnostics(t)

	var result lsp.Hover
	c.call(t, "textDocument/hover", lsp.TextDocumentPositionParams{
		TextDocument: lsp.TextDocumentIdentifier{URI: testURI},
		Position:     lsp.Position{Line: 0, Character: 3},
	}, &result)
	if len(result.Contents) != 0 {
		t.Errorf("got hover contents %v, want none", result.Contents)
	}
}

func TestPositionConversion(t *testing.T) {
	s := "a\r\nb\U0001F600c"
	for idx, pos := range map[int]lsp.Position{
		0: {Line: 0, Character: 0},
		3: {Line: 1, Character: 0},
		4: {Line: 1, Character: 1},
		8: {Line: 1, Character: 3},
	} {
		if got := lspPositionFromIdx(s, idx); got != pos {
			t.Errorf("lspPositionFromIdx(%d) = %v, want %v", idx, got, pos)
		}
	}
	// Positions in the middle of a \r\n sequence map to the \n.
	for pos, idx := range map[lsp.Position]int{
		{Line: 0, Character: 1}: 1,
		{Line: 1, Character: 0}: 2,
		{Line: 1, Character: 3}: 8,
	} {
		if got := lspPositionToIdx(s, pos); got != idx {
			t.Errorf("lspPositionToIdx(%v) = %d, want %d", pos, got, idx)
		}
	}
}

func TestProgram(t *testing.T) {
	Test(t, Program{},
		ThatScm("-lsp").DoesNothing(),
		ThatScm().ExitsWith(2).WritesStderrContaining("no suitable subprogram"),
	)
}
