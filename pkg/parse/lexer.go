package parse

import (
	"strconv"
	"unicode/utf8"
)

// lexer keeps the mutable state of tokenizing.
type lexer struct {
	src    string
	pos    int
	line   int
	column int
	tokens []Token
}

// Tokenize converts source text into a flat token sequence that always ends
// with an EOF token. It never fails: characters it does not recognize are
// skipped, and malformed input surfaces later as a parse or evaluation error.
func Tokenize(src string) []Token {
	lx := &lexer{src: src, line: 1, column: 1}
	lx.run()
	return lx.tokens
}

const eof rune = -1

func (lx *lexer) peekAt(i int) rune {
	if i >= len(lx.src) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(lx.src[i:])
	return r
}

func (lx *lexer) peek() rune { return lx.peekAt(lx.pos) }

// peekSecond returns the rune after the current one.
func (lx *lexer) peekSecond() rune {
	if lx.pos >= len(lx.src) {
		return eof
	}
	_, size := utf8.DecodeRuneInString(lx.src[lx.pos:])
	return lx.peekAt(lx.pos + size)
}

func (lx *lexer) next() rune {
	if lx.pos >= len(lx.src) {
		return eof
	}
	r, size := utf8.DecodeRuneInString(lx.src[lx.pos:])
	lx.pos += size
	if r == '\n' {
		lx.line++
		lx.column = 1
	} else {
		lx.column++
	}
	return r
}

func (lx *lexer) position() Position {
	return Position{Line: lx.line, Column: lx.column, Offset: lx.pos}
}

// mark returns a Token holding the current position, to be completed by emit.
func (lx *lexer) mark() Token {
	return Token{Line: lx.line, Column: lx.column, Offset: lx.pos}
}

func (lx *lexer) emit(typ TokenType, value string, start Token) {
	start.Type = typ
	start.Value = value
	start.End = lx.position()
	lx.tokens = append(lx.tokens, start)
}

func (lx *lexer) run() {
	for {
		r := lx.peek()
		switch {
		case r == eof:
			lx.emit(EOF, "", lx.mark())
			return
		case isWhitespace(r):
			lx.next()
		case r == ';':
			for r := lx.peek(); r != eof && r != '\n'; r = lx.peek() {
				lx.next()
			}
		case r == '(' || r == '[':
			lx.single(LPAREN, "(")
		case r == ')' || r == ']':
			lx.single(RPAREN, ")")
		case r == '\'':
			lx.single(QUOTE, "'")
		case r == '"':
			lx.lexString()
		case r == '#':
			lx.lexHash()
		case r == '.' && isDelimiter(lx.peekSecond()):
			// A lone dot separates the tail of a dotted list.
			lx.single(IDENTIFIER, ".")
		case lx.startsNumber():
			lx.lexNumeric()
		case isIdentifierStart(r):
			start := lx.mark()
			lx.emit(IDENTIFIER, lx.consumeWhile(isIdentifierPart), start)
		default:
			// Unrecognized characters are skipped.
			lx.next()
		}
	}
}

func (lx *lexer) single(typ TokenType, value string) {
	start := lx.mark()
	lx.next()
	lx.emit(typ, value, start)
}

func (lx *lexer) consumeWhile(pred func(rune) bool) string {
	begin := lx.pos
	for r := lx.peek(); r != eof && pred(r); r = lx.peek() {
		lx.next()
	}
	return lx.src[begin:lx.pos]
}

func (lx *lexer) lexString() {
	start := lx.mark()
	lx.next() // opening quote
	var buf []byte
	for {
		r := lx.next()
		switch r {
		case eof, '"':
			lx.emit(STRING, string(buf), start)
			return
		case '\\':
			switch escaped := lx.next(); escaped {
			case eof:
			case 'n':
				buf = append(buf, '\n')
			case 't':
				buf = append(buf, '\t')
			case 'r':
				buf = append(buf, '\r')
			default:
				// Any other escaped character stands for itself.
				buf = utf8.AppendRune(buf, escaped)
			}
		default:
			buf = utf8.AppendRune(buf, r)
		}
	}
}

func (lx *lexer) lexHash() {
	start := lx.mark()
	lx.next()
	text := "#" + lx.consumeWhile(isIdentifierPart)
	switch text {
	case "#t", "#true":
		lx.emit(BOOLEAN, "true", start)
	case "#f", "#false":
		lx.emit(BOOLEAN, "false", start)
	default:
		lx.emit(IDENTIFIER, text, start)
	}
}

// startsNumber reports whether the current position starts a numeric run: a
// digit, a sign or dot followed by a digit, or a sign followed by a lone i
// (the imaginary unit).
func (lx *lexer) startsNumber() bool {
	r := lx.peek()
	if isDigit(r) {
		return true
	}
	second := lx.peekSecond()
	switch r {
	case '+', '-':
		if isDigit(second) || (second == '.' && isDigit(lx.peekAt(lx.pos+2))) {
			return true
		}
		if second == 'i' || second == 'I' {
			return isDelimiter(lx.peekAt(lx.pos + 2))
		}
	case '.':
		return isDigit(second)
	}
	return false
}

func (lx *lexer) lexNumeric() {
	start := lx.mark()
	text := lx.consumeWhile(isNumericPart)
	last := text[len(text)-1]
	switch {
	case (last == 'i' || last == 'I') && IsComplexLiteral(text):
		lx.emit(COMPLEX, text, start)
	case isDecimal(text):
		lx.emit(NUMBER, text, start)
	default:
		lx.emit(IDENTIFIER, text, start)
	}
}

// isDecimal reports whether s is a decimal number literal. Hexadecimal
// notation, underscores and the special names accepted by strconv are
// rejected.
func isDecimal(s string) bool {
	for _, r := range s {
		if !(isDigit(r) || r == '.' || r == '+' || r == '-' || r == 'e' || r == 'E') {
			return false
		}
	}
	_, err := strconv.ParseFloat(s, 64)
	if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
		return true
	}
	return err == nil
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' || r == '\v'
}

func isDigit(r rune) bool { return '0' <= r && r <= '9' }

func isLetter(r rune) bool { return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') }

func isIdentifierStart(r rune) bool {
	if isLetter(r) {
		return true
	}
	switch r {
	case '_', '+', '-', '*', '/', '=', '<', '>', '!', '?':
		return true
	}
	return false
}

func isIdentifierPart(r rune) bool {
	return isIdentifierStart(r) || isDigit(r)
}

func isNumericPart(r rune) bool {
	return isDigit(r) || isLetter(r) || r == '.' || r == '+' || r == '-'
}

func isDelimiter(r rune) bool {
	return r == eof || isWhitespace(r) || r == '(' || r == ')' ||
		r == '[' || r == ']' || r == '"' || r == ';' || r == '\''
}
