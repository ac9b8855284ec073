package parse

import "fmt"

// TokenType is the type of a Token.
type TokenType int

// Possible values for TokenType.
const (
	LPAREN TokenType = iota
	RPAREN
	QUOTE
	STRING
	NUMBER
	COMPLEX
	BOOLEAN
	IDENTIFIER
	EOF
)

var tokenTypeNames = [...]string{
	LPAREN:     "LPAREN",
	RPAREN:     "RPAREN",
	QUOTE:      "QUOTE",
	STRING:     "STRING",
	NUMBER:     "NUMBER",
	COMPLEX:    "COMPLEX",
	BOOLEAN:    "BOOLEAN",
	IDENTIFIER: "IDENTIFIER",
	EOF:        "EOF",
}

func (t TokenType) String() string {
	if int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is a lexical unit of the source. Line and Column are 1-based; Column
// counts runes. Offset is the byte offset of the first character of the token,
// and End the position just past its last character.
type Token struct {
	Type   TokenType
	Value  string
	Line   int
	Column int
	Offset int
	End    Position
}

func (t Token) String() string {
	return fmt.Sprintf("%v(%q)@%d:%d", t.Type, t.Value, t.Line, t.Column)
}

// Position returns the position of the start of the token.
func (t Token) Position() Position {
	return Position{Line: t.Line, Column: t.Column, Offset: t.Offset}
}
