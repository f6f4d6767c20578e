package parser

import "github.com/fpgaminer/gcad/pkg/units"

// TokenType represents the type of a lexical token.
type TokenType uint8

const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenError

	// Literals
	TokenString // 'text' with '' as the quote escape
	TokenNumber // 123, 3.14, 10mm (unit suffix carried on the token)
	TokenIdent  // identifier

	// Keywords
	TokenFor // for
	TokenIn  // in

	// Grouping symbols
	TokenParenOpen  // (
	TokenParenClose // )
	TokenBraceOpen  // {
	TokenBraceClose // }

	// Separators
	TokenComma     // ,
	TokenSemicolon // ;

	// Operators
	TokenAssign // =
	TokenPlus   // +
	TokenMinus  // -
	TokenMult   // *
	TokenDiv    // /
	TokenPow    // ^
	TokenBang   // !
)

// String returns a string representation of the token type.
func (tt TokenType) String() string {
	switch tt {
	case TokenEOF:
		return "(eof)"
	case TokenError:
		return "(error)"
	case TokenString:
		return "(string)"
	case TokenNumber:
		return "(number)"
	case TokenIdent:
		return "(identifier)"
	case TokenFor:
		return "for"
	case TokenIn:
		return "in"
	case TokenParenOpen:
		return "("
	case TokenParenClose:
		return ")"
	case TokenBraceOpen:
		return "{"
	case TokenBraceClose:
		return "}"
	case TokenComma:
		return ","
	case TokenSemicolon:
		return ";"
	case TokenAssign:
		return "="
	case TokenPlus:
		return "+"
	case TokenMinus:
		return "-"
	case TokenMult:
		return "*"
	case TokenDiv:
		return "/"
	case TokenPow:
		return "^"
	case TokenBang:
		return "!"
	default:
		return "(unknown)"
	}
}

// Token represents a lexical token in a gcad script.
type Token struct {
	Type   TokenType  // Type of the token
	Value  string     // Literal value of the token
	Unit   units.Unit // Unit suffix for TokenNumber; units.None otherwise
	IsInt  bool       // TokenNumber written without a decimal point
	Line   int        // 1-based source line
	Column int        // 1-based source column
}

// symbols maps single-character symbols to token types.
var symbols = [...]TokenType{
	'(': TokenParenOpen,
	')': TokenParenClose,
	'{': TokenBraceOpen,
	'}': TokenBraceClose,
	',': TokenComma,
	';': TokenSemicolon,
	'=': TokenAssign,
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenMult,
	'/': TokenDiv,
	'^': TokenPow,
	'!': TokenBang,
}

const symbolCount = rune(len(symbols))

// lookupSymbol returns the token type for a single-character symbol.
// Returns 0 if the rune is not a valid symbol.
func lookupSymbol(r rune) TokenType {
	if r < 0 || r >= symbolCount {
		return 0
	}
	return symbols[r]
}

// lookupKeyword returns the token type for a keyword.
// Returns 0 if the string is not a recognized keyword.
func lookupKeyword(s string) TokenType {
	switch s {
	case "for":
		return TokenFor
	case "in":
		return TokenIn
	default:
		return 0
	}
}
