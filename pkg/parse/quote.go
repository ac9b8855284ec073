package parse

// quote converts a datum to the node of the literal data it denotes.
func (ps *parser) quote(d datum) Node {
	switch d.kind {
	case atomDatum:
		if d.tok.Type == IDENTIFIER {
			return &Symbol{d.Location, d.tok.Value}
		}
		return ps.atom(d)
	case quoteDatum:
		// 'x inside quoted data is the list (quote x).
		return &List{d.Location, []Node{
			&Symbol{tokenLocation(d.tok), "quote"}, ps.quote(d.elems[0])}, nil}
	case vectorDatum:
		return &Vector{d.Location, ps.quoteAll(d.elems)}
	}
	if len(d.elems) == 0 {
		return &Nil{d.Location}
	}
	elems := d.elems
	var tail Node
	if n := len(elems); n >= 3 && elems[n-2].isDot() {
		tail = ps.quote(elems[n-1])
		elems = elems[:n-2]
	}
	for _, e := range elems {
		if e.isDot() {
			ps.fail(e, "bad dotted list")
		}
	}
	if tail != nil && len(elems) == 1 {
		return &Pair{d.Location, ps.quote(elems[0]), tail}
	}
	return &List{d.Location, ps.quoteAll(elems), tail}
}

func (ps *parser) quoteAll(ds []datum) []Node {
	nodes := make([]Node, len(ds))
	for i, d := range ds {
		nodes[i] = ps.quote(d)
	}
	return nodes
}
