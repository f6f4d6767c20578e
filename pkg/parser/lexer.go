package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/fpgaminer/gcad/pkg/types"
	"github.com/fpgaminer/gcad/pkg/units"
)

const eof = -1

// Lexer converts a gcad script into a sequence of tokens.
// The implementation is based on Rob Pike's "Lexical Scanning in Go" technique.
type Lexer struct {
	input   string // Input string being scanned
	length  int    // Length of input string
	start   int    // Start position of current token
	current int    // Current position in input
	width   int    // Width of last rune read
	err     error  // First error encountered

	// Line/column cache for position; token starts are monotonic so the
	// cache only ever advances.
	posOff  int
	posLine int
	posCol  int
}

// NewLexer creates a new lexer from the provided input string.
// The input is tokenized by successive calls to the Next method.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:   input,
		length:  len(input),
		posLine: 1,
		posCol:  1,
	}
}

// Next returns the next token from the input.
// When the end of the input is reached, Next returns TokenEOF for all
// subsequent calls. Whitespace and //-to-end-of-line comments are
// skipped between tokens.
func (l *Lexer) Next() Token {
	l.skipWhitespace()

	ch := l.nextRune()
	if ch == eof {
		return l.eofToken()
	}

	// Single-character symbols
	if tt := lookupSymbol(ch); tt > 0 {
		return l.newToken(tt)
	}

	// String literals
	if ch == '\'' {
		l.ignore()
		return l.scanString(ch)
	}

	// Number literals, with an optional unit suffix
	if ch >= '0' && ch <= '9' {
		l.backup()
		return l.scanNumber()
	}

	// Identifiers and keywords
	if isIdentStart(ch) {
		l.backup()
		return l.scanIdent()
	}

	return l.errorToken("unexpected character %q", string(ch))
}

// Error returns the first error encountered during lexing, if any.
func (l *Lexer) Error() error {
	return l.err
}

// scanString reads a string literal from the current position.
// The opening quote has already been consumed. A doubled quote ('')
// is the escape for a literal quote; the token value keeps the raw
// doubled form for the parser to unescape.
func (l *Lexer) scanString(quote rune) Token {
	for {
		switch l.nextRune() {
		case quote:
			if l.acceptRune(quote) {
				// Doubled quote, stays part of the literal.
				continue
			}
			// The closing quote is the last byte consumed; keep it out
			// of the token value.
			line, col := l.position(l.start)
			t := Token{
				Type:   TokenString,
				Value:  l.input[l.start : l.current-1],
				Line:   line,
				Column: col,
			}
			l.width = 0
			l.start = l.current
			return t
		case eof, '\n':
			return l.errorToken("unterminated string literal")
		}
	}
}

// scanNumber reads a number literal from the current position.
// Format: [0-9]+(\.[0-9]+)? with an optional unit suffix attached
// directly to the digits (10mm, 2.5in).
func (l *Lexer) scanNumber() Token {
	l.acceptAll(isDigit)

	isInt := true
	if l.acceptRune('.') {
		if !l.acceptAll(isDigit) {
			return l.errorToken("malformed number: expected digits after decimal point")
		}
		isInt = false
	}

	numEnd := l.current

	// Optional unit suffix, no separating space allowed.
	l.acceptAll(isIdentPart)
	suffix := l.input[numEnd:l.current]

	unit := units.None
	if suffix != "" {
		u, ok := units.Parse(suffix)
		if !ok {
			return l.errorToken("unknown unit suffix %q", suffix)
		}
		unit = u
	}

	t := l.newToken(TokenNumber)
	t.Value = strings.TrimSuffix(t.Value, suffix)
	t.Unit = unit
	t.IsInt = isInt
	return t
}

// scanIdent reads an identifier or keyword from the current position.
// Identifiers are letters, digits and underscores, starting with a
// letter or underscore.
func (l *Lexer) scanIdent() Token {
	l.accept(isIdentStart)
	l.acceptAll(isIdentPart)

	t := l.newToken(TokenIdent)
	if tt := lookupKeyword(t.Value); tt > 0 {
		t.Type = tt
	}
	return t
}

// Helper methods

func (l *Lexer) eofToken() Token {
	line, col := l.position(l.current)
	return Token{
		Type:   TokenEOF,
		Line:   line,
		Column: col,
	}
}

func (l *Lexer) errorToken(format string, args ...interface{}) Token {
	t := l.newToken(TokenError)
	l.err = types.NewError(types.SyntaxError, format, args...).At(t.Line, t.Column).WithToken(t.Value)
	return t
}

func (l *Lexer) newToken(tt TokenType) Token {
	line, col := l.position(l.start)
	t := Token{
		Type:   tt,
		Value:  l.input[l.start:l.current],
		Line:   line,
		Column: col,
	}
	l.width = 0
	l.start = l.current
	return t
}

// position resolves a byte offset to a 1-based line and column,
// advancing the cached position to the offset.
func (l *Lexer) position(offset int) (int, int) {
	for l.posOff < offset && l.posOff < l.length {
		if l.input[l.posOff] == '\n' {
			l.posLine++
			l.posCol = 1
		} else {
			l.posCol++
		}
		l.posOff++
	}
	return l.posLine, l.posCol
}

func (l *Lexer) nextRune() rune {
	if l.err != nil || l.current >= l.length {
		l.width = 0
		return eof
	}

	r, w := utf8.DecodeRuneInString(l.input[l.current:])
	l.width = w
	l.current += w
	return r
}

func (l *Lexer) backup() {
	l.current -= l.width
}

func (l *Lexer) ignore() {
	l.start = l.current
}

func (l *Lexer) acceptRune(r rune) bool {
	return l.accept(func(c rune) bool {
		return c == r
	})
}

func (l *Lexer) accept(isValid func(rune) bool) bool {
	if isValid(l.nextRune()) {
		return true
	}
	l.backup()
	return false
}

func (l *Lexer) acceptAll(isValid func(rune) bool) bool {
	var matched bool
	for l.accept(isValid) {
		matched = true
	}
	return matched
}

func (l *Lexer) skipWhitespace() {
	for {
		l.acceptAll(isWhitespace)
		l.ignore()

		// Check for a // line comment. A lone '/' is the division operator.
		if strings.HasPrefix(l.input[l.current:], "//") {
			for {
				ch := l.nextRune()
				if ch == eof || ch == '\n' {
					break
				}
			}
			l.ignore()
			continue
		}
		break
	}
}

// Character classification functions

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}
