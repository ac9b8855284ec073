// Package parse implements the lexer and parser of the language.
//
// Parsing happens in two stages. The reader turns tokens into datums, which are
// either atoms, parenthesized lists, vectors or quotations. The analyzer then
// turns each datum into an AST node, recognizing special forms by the keyword
// in the head position.
package parse

import (
	"errors"
	"reflect"

	"github.com/source-academy/scm-slang/pkg/diag"
)

// ErrorType is the Type of all errors returned by the parser.
const ErrorType = "parse error"

// Parse tokenizes and parses the source, returning one node per top-level
// form. If the error is not nil, it is a *diag.Error or a combination of them
// built with errors.Join; the returned nodes are the forms that parsed
// successfully.
func Parse(src Source) ([]Node, error) {
	return ParseTokens(src, Tokenize(src.Code))
}

// ParseTokens is like Parse, but takes tokens that have already been produced
// from src.Code.
func ParseTokens(src Source, tokens []Token) ([]Node, error) {
	ps := &parser{src: src, tokens: tokens}
	var nodes []Node
	for ps.peek().Type != EOF {
		if tok := ps.peek(); tok.Type == RPAREN {
			ps.errors = append(ps.errors, ps.newError(tokenLocation(tok), "unexpected ')'", false))
			ps.next()
			continue
		}
		var d datum
		if !ps.try(func() { d = ps.read() }) {
			// The reader can't recover from errors in nesting.
			break
		}
		var n Node
		if ps.try(func() { n = ps.analyze(d) }) {
			nodes = append(nodes, n)
		}
	}
	return nodes, ps.assembleError()
}

// Equal reports whether two nodes are structurally equal, including their
// locations.
func Equal(a, b Node) bool {
	return reflect.DeepEqual(a, b)
}

// parser keeps the mutable state of parsing.
type parser struct {
	src    Source
	tokens []Token
	pos    int
	errors []*diag.Error
}

// failure is the panic value used to abandon the current top-level form.
type failure struct{ err *diag.Error }

func (ps *parser) peek() Token {
	if ps.pos < len(ps.tokens) {
		return ps.tokens[ps.pos]
	}
	// Token streams not produced by Tokenize may lack the trailing EOF.
	end := len(ps.src.Code)
	if n := len(ps.tokens); n > 0 {
		end = ps.tokens[n-1].End.Offset
	}
	pos := Position{Offset: end}
	return Token{Type: EOF, Offset: end, End: pos}
}

func (ps *parser) next() Token {
	tok := ps.peek()
	if ps.pos < len(ps.tokens) {
		ps.pos++
	}
	return tok
}

func (ps *parser) newError(r diag.Ranger, msg string, partial bool) *diag.Error {
	return &diag.Error{
		Type:    ErrorType,
		Message: msg,
		Context: *diag.NewContext(ps.src.Name, ps.src.Code, r),
		Partial: partial,
	}
}

func (ps *parser) fail(r diag.Ranger, msg string) {
	panic(failure{ps.newError(r, msg, false)})
}

func (ps *parser) failPartial(r diag.Ranger, msg string) {
	panic(failure{ps.newError(r, msg, true)})
}

// try runs f, recording the error if f fails. It reports whether f
// completed.
func (ps *parser) try(f func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			fl, isFailure := r.(failure)
			if !isFailure {
				panic(r)
			}
			ps.errors = append(ps.errors, fl.err)
			ok = false
		}
	}()
	f()
	return true
}

func (ps *parser) assembleError() error {
	switch len(ps.errors) {
	case 0:
		return nil
	case 1:
		return ps.errors[0]
	}
	errs := make([]error, len(ps.errors))
	for i, e := range ps.errors {
		errs[i] = e
	}
	return errors.Join(errs...)
}

// Reader.

type datumKind int

const (
	atomDatum datumKind = iota
	listDatum
	vectorDatum
	quoteDatum
)

// datum is the output of the reader. An atom holds its token; a quotation holds
// the QUOTE token and the quoted datum as its only element.
type datum struct {
	Location
	kind  datumKind
	tok   Token
	elems []datum
}

func tokenLocation(tok Token) Location {
	return Location{Start: tok.Position(), End: tok.End}
}

func (d datum) isIdentifier() bool {
	return d.kind == atomDatum && d.tok.Type == IDENTIFIER && d.tok.Value != "."
}

func (d datum) isDot() bool {
	return d.kind == atomDatum && d.tok.Type == IDENTIFIER && d.tok.Value == "."
}

func (ps *parser) read() datum {
	tok := ps.next()
	switch tok.Type {
	case LPAREN:
		return ps.readList(tok.Position(), listDatum)
	case RPAREN:
		ps.fail(tokenLocation(tok), "unexpected ')'")
	case EOF:
		ps.failPartial(tokenLocation(tok), "unexpected end of input")
	case QUOTE:
		switch ps.peek().Type {
		case EOF:
			ps.failPartial(tokenLocation(ps.peek()), "unexpected end of input, should be a datum")
		case RPAREN:
			ps.fail(tokenLocation(tok), "nothing to quote")
		}
		quoted := ps.read()
		return datum{
			Location: Location{Start: tok.Position(), End: quoted.End},
			kind:     quoteDatum, tok: tok, elems: []datum{quoted}}
	case IDENTIFIER:
		if tok.Value == "#" {
			if open := ps.peek(); open.Type == LPAREN && open.Offset == tok.End.Offset {
				ps.next()
				return ps.readList(tok.Position(), vectorDatum)
			}
		}
	}
	return datum{Location: tokenLocation(tok), kind: atomDatum, tok: tok}
}

// readList reads the elements of a list whose opening parenthesis has been
// consumed, up to and including the closing parenthesis.
func (ps *parser) readList(start Position, kind datumKind) datum {
	var elems []datum
	for {
		switch tok := ps.peek(); tok.Type {
		case RPAREN:
			ps.next()
			return datum{Location: Location{Start: start, End: tok.End}, kind: kind, elems: elems}
		case EOF:
			ps.failPartial(tokenLocation(tok), "unexpected end of input, should be ')'")
		}
		elems = append(elems, ps.read())
	}
}

// Analyzer.

func (ps *parser) analyze(d datum) Node {
	switch d.kind {
	case atomDatum:
		return ps.atom(d)
	case quoteDatum:
		return ps.quote(d.elems[0])
	case vectorDatum:
		return &Vector{d.Location, ps.analyzeAll(d.elems)}
	case listDatum:
		return ps.analyzeList(d)
	}
	panic("unreachable")
}

func (ps *parser) analyzeAll(ds []datum) []Node {
	nodes := make([]Node, len(ds))
	for i, d := range ds {
		nodes[i] = ps.analyze(d)
	}
	return nodes
}

func (ps *parser) atom(d datum) Node {
	tok := d.tok
	switch tok.Type {
	case NUMBER:
		return &NumericLiteral{d.Location, tok.Value}
	case COMPLEX:
		return &ComplexLiteral{d.Location, tok.Value}
	case STRING:
		return &StringLiteral{d.Location, tok.Value}
	case BOOLEAN:
		return &BooleanLiteral{d.Location, tok.Value == "true"}
	case IDENTIFIER:
		return &Identifier{d.Location, tok.Value}
	}
	ps.fail(d, "unexpected "+tok.Type.String())
	panic("unreachable")
}

func (ps *parser) identifier(d datum) *Identifier {
	return &Identifier{d.Location, d.tok.Value}
}

func (ps *parser) analyzeList(d datum) Node {
	if len(d.elems) == 0 {
		return &Nil{d.Location}
	}
	if head := d.elems[0]; head.isIdentifier() {
		if form, ok := specialForms[head.tok.Value]; ok {
			return form(ps, d)
		}
	}
	return &Application{d.Location, ps.analyze(d.elems[0]), ps.analyzeAll(d.elems[1:])}
}

// body analyzes d.elems[from:], wrapping several forms in a Sequence.
func (ps *parser) body(d datum, from int) Node {
	forms := d.elems[from:]
	if len(forms) == 1 {
		return ps.analyze(forms[0])
	}
	loc := Location{Start: forms[0].Start, End: forms[len(forms)-1].End}
	return &Sequence{loc, ps.analyzeAll(forms)}
}
