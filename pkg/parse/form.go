package parse

// Keywords are the names of special forms, in the order they are documented.
var Keywords = []string{
	"define", "lambda", "if", "let", "begin", "cond", "set!", "quote",
	"and", "or", "delay", "define-syntax", "syntax-rules", "import", "export",
}

type specialForm func(ps *parser, d datum) Node

// Initialized in init to break the dependency cycle with analyze.
var specialForms map[string]specialForm

func init() {
	specialForms = map[string]specialForm{
		"define":        (*parser).define,
		"lambda":        (*parser).lambda,
		"if":            (*parser).conditional,
		"let":           (*parser).let,
		"begin":         (*parser).begin,
		"cond":          (*parser).cond,
		"set!":          (*parser).reassignment,
		"quote":         (*parser).quoteForm,
		"and":           (*parser).and,
		"or":            (*parser).or,
		"delay":         (*parser).delay,
		"define-syntax": (*parser).defineSyntax,
		"syntax-rules":  (*parser).syntaxRules,
		"import":        (*parser).importForm,
		"export":        (*parser).export,
	}
}

// (define name value) or (define (name params...) body...)
func (ps *parser) define(d datum) Node {
	if len(d.elems) < 3 {
		ps.fail(d, "define requires at least 2 arguments")
	}
	target := d.elems[1]
	switch {
	case target.isIdentifier():
		if len(d.elems) > 3 {
			ps.fail(d, "define requires exactly 2 arguments when defining a variable")
		}
		return &Definition{d.Location, ps.identifier(target), ps.analyze(d.elems[2])}
	case target.kind == listDatum && len(target.elems) > 0:
		if !target.elems[0].isIdentifier() {
			ps.fail(target.elems[0], "function name must be an identifier")
		}
		params, rest := ps.params(target.elems[1:])
		fn := &Lambda{d.Location, params, rest, ps.body(d, 2)}
		return &Definition{d.Location, ps.identifier(target.elems[0]), fn}
	}
	ps.fail(target, "define name must be an identifier")
	return nil
}

// params analyzes a parameter list. A "." before the last parameter makes it
// the rest parameter.
func (ps *parser) params(ds []datum) ([]*Identifier, *Identifier) {
	var params []*Identifier
	for i, d := range ds {
		if d.isDot() {
			if i != len(ds)-2 || !ds[i+1].isIdentifier() {
				ps.fail(d, "lambda parameters must be identifiers")
			}
			return params, ps.identifier(ds[i+1])
		}
		if !d.isIdentifier() {
			ps.fail(d, "lambda parameters must be identifiers")
		}
		params = append(params, ps.identifier(d))
	}
	return params, nil
}

// (lambda (params...) body...) or (lambda args body...)
func (ps *parser) lambda(d datum) Node {
	if len(d.elems) < 3 {
		ps.fail(d, "lambda requires at least 2 arguments")
	}
	var params []*Identifier
	var rest *Identifier
	switch spec := d.elems[1]; {
	case spec.isIdentifier():
		rest = ps.identifier(spec)
	case spec.kind == listDatum:
		params, rest = ps.params(spec.elems)
	default:
		ps.fail(spec, "lambda parameters must be identifiers")
	}
	return &Lambda{d.Location, params, rest, ps.body(d, 2)}
}

// (if test consequent alternate)
func (ps *parser) conditional(d datum) Node {
	if len(d.elems) != 4 {
		ps.fail(d, "if requires exactly 3 arguments")
	}
	return &Conditional{d.Location,
		ps.analyze(d.elems[1]), ps.analyze(d.elems[2]), ps.analyze(d.elems[3])}
}

// (let ((name value)...) body...)
func (ps *parser) let(d datum) Node {
	if len(d.elems) < 3 {
		ps.fail(d, "let requires at least 2 arguments")
	}
	bindings := d.elems[1]
	if bindings.kind != listDatum {
		ps.fail(bindings, "let bindings must be (name value) pairs")
	}
	n := &Let{Location: d.Location}
	for _, b := range bindings.elems {
		if b.kind != listDatum || len(b.elems) != 2 || !b.elems[0].isIdentifier() {
			ps.fail(b, "let bindings must be (name value) pairs")
		}
		n.Identifiers = append(n.Identifiers, ps.identifier(b.elems[0]))
		n.Values = append(n.Values, ps.analyze(b.elems[1]))
	}
	n.Body = ps.body(d, 2)
	return n
}

// (begin expr...)
func (ps *parser) begin(d datum) Node {
	return &Begin{d.Location, ps.analyzeAll(d.elems[1:])}
}

// (cond (test expr...)... (else expr...))
func (ps *parser) cond(d datum) Node {
	n := &Cond{Location: d.Location}
	clauses := d.elems[1:]
	for i, clause := range clauses {
		if clause.kind != listDatum || len(clause.elems) == 0 {
			ps.fail(clause, "cond clauses must be non-empty lists")
		}
		if head := clause.elems[0]; head.isIdentifier() && head.tok.Value == "else" {
			if i != len(clauses)-1 {
				ps.fail(clause, "else clause must be the last clause")
			}
			if len(clause.elems) == 1 {
				ps.fail(clause, "else clause requires at least one expression")
			}
			n.Catchall = ps.body(clause, 1)
			break
		}
		n.Predicates = append(n.Predicates, ps.analyze(clause.elems[0]))
		if len(clause.elems) == 1 {
			n.Consequents = append(n.Consequents, nil)
		} else {
			n.Consequents = append(n.Consequents, ps.body(clause, 1))
		}
	}
	return n
}

// (set! name value)
func (ps *parser) reassignment(d datum) Node {
	if len(d.elems) != 3 {
		ps.fail(d, "set! requires exactly 2 arguments")
	}
	if !d.elems[1].isIdentifier() {
		ps.fail(d.elems[1], "set! target must be an identifier")
	}
	return &Reassignment{d.Location, ps.identifier(d.elems[1]), ps.analyze(d.elems[2])}
}

// (quote datum)
func (ps *parser) quoteForm(d datum) Node {
	if len(d.elems) != 2 {
		ps.fail(d, "quote requires exactly 1 argument")
	}
	return ps.quote(d.elems[1])
}

// (and expr...) becomes nested conditionals.
func (ps *parser) and(d datum) Node {
	operands := ps.analyzeAll(d.elems[1:])
	if len(operands) == 0 {
		return &BooleanLiteral{d.Location, true}
	}
	var build func(ns []Node) Node
	build = func(ns []Node) Node {
		if len(ns) == 1 {
			return ns[0]
		}
		return &Conditional{d.Location, ns[0], build(ns[1:]), &BooleanLiteral{d.Location, false}}
	}
	return build(operands)
}

// (or expr...) becomes a cond whose clauses yield their tests.
func (ps *parser) or(d datum) Node {
	operands := ps.analyzeAll(d.elems[1:])
	switch len(operands) {
	case 0:
		return &BooleanLiteral{d.Location, false}
	case 1:
		return operands[0]
	}
	return &Cond{d.Location, operands, make([]Node, len(operands)), &BooleanLiteral{d.Location, false}}
}

// (delay expr)
func (ps *parser) delay(d datum) Node {
	if len(d.elems) != 2 {
		ps.fail(d, "delay requires exactly 1 argument")
	}
	return &Delay{d.Location, ps.analyze(d.elems[1])}
}

// (define-syntax name transformer)
func (ps *parser) defineSyntax(d datum) Node {
	if len(d.elems) != 3 {
		ps.fail(d, "define-syntax requires exactly 2 arguments")
	}
	if !d.elems[1].isIdentifier() {
		ps.fail(d.elems[1], "define-syntax name must be an identifier")
	}
	return &DefineSyntax{d.Location, ps.identifier(d.elems[1]), ps.analyze(d.elems[2])}
}

// (syntax-rules (literal...) (pattern template)...)
func (ps *parser) syntaxRules(d datum) Node {
	if len(d.elems) < 2 || d.elems[1].kind != listDatum {
		ps.fail(d, "syntax-rules requires a list of literals")
	}
	n := &SyntaxRules{Location: d.Location}
	for _, lit := range d.elems[1].elems {
		if !lit.isIdentifier() {
			ps.fail(lit, "syntax-rules literals must be identifiers")
		}
		n.Literals = append(n.Literals, &Symbol{lit.Location, lit.tok.Value})
	}
	for _, rule := range d.elems[2:] {
		if rule.kind != listDatum || len(rule.elems) != 2 {
			ps.fail(rule, "syntax-rules clauses must be (pattern template) pairs")
		}
		n.Rules = append(n.Rules, SyntaxRule{ps.quote(rule.elems[0]), ps.quote(rule.elems[1])})
	}
	return n
}

// (import "source" (name...))
func (ps *parser) importForm(d datum) Node {
	const msg = "import requires a source string and a list of identifiers"
	if len(d.elems) != 3 {
		ps.fail(d, msg)
	}
	source, names := d.elems[1], d.elems[2]
	if source.kind != atomDatum || source.tok.Type != STRING || names.kind != listDatum {
		ps.fail(d, msg)
	}
	n := &Import{Location: d.Location, Source: &StringLiteral{source.Location, source.tok.Value}}
	for _, name := range names.elems {
		if !name.isIdentifier() {
			ps.fail(name, msg)
		}
		n.Identifiers = append(n.Identifiers, ps.identifier(name))
	}
	return n
}

// (export (define ...))
func (ps *parser) export(d datum) Node {
	if len(d.elems) != 2 {
		ps.fail(d, "export requires exactly 1 argument")
	}
	def, ok := ps.analyze(d.elems[1]).(*Definition)
	if !ok {
		ps.fail(d.elems[1], "export requires a definition")
	}
	return &Export{d.Location, def}
}
