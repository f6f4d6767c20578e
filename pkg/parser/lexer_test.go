package parser_test

import (
	"testing"

	"github.com/fpgaminer/gcad/pkg/parser"
	"github.com/fpgaminer/gcad/pkg/types"
	"github.com/fpgaminer/gcad/pkg/units"
)

type lexerTestCase struct {
	name      string
	input     string
	expected  []parser.Token
	expectErr bool
}

func runLexerTests(t *testing.T, tests []lexerTestCase) {
	t.Helper()
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			lexer := parser.NewLexer(test.input)
			tokens := []parser.Token{}

			for {
				tok := lexer.Next()
				if tok.Type == parser.TokenEOF {
					break
				}
				if tok.Type == parser.TokenError {
					if !test.expectErr {
						t.Errorf("unexpected error: %v", lexer.Error())
					}
					return
				}
				tokens = append(tokens, tok)
			}

			if test.expectErr {
				t.Error("expected error but got none")
				return
			}

			if len(tokens) != len(test.expected) {
				t.Errorf("got %d tokens, want %d\nGot: %v\nWant: %v",
					len(tokens), len(test.expected), tokens, test.expected)
				return
			}

			for i, tok := range tokens {
				exp := test.expected[i]
				if tok.Type != exp.Type {
					t.Errorf("token %d: type = %v, want %v", i, tok.Type, exp.Type)
				}
				if tok.Value != exp.Value {
					t.Errorf("token %d: value = %q, want %q", i, tok.Value, exp.Value)
				}
				if tok.Unit != exp.Unit {
					t.Errorf("token %d: unit = %v, want %v", i, tok.Unit, exp.Unit)
				}
				if tok.IsInt != exp.IsInt {
					t.Errorf("token %d: isInt = %v, want %v", i, tok.IsInt, exp.IsInt)
				}
				if exp.Line > 0 && (tok.Line != exp.Line || tok.Column != exp.Column) {
					t.Errorf("token %d: position = %d:%d, want %d:%d", i, tok.Line, tok.Column, exp.Line, exp.Column)
				}
			}
		})
	}
}

func TestLexerNumbers(t *testing.T) {
	tests := []lexerTestCase{
		{
			name:  "integer",
			input: "123",
			expected: []parser.Token{
				{Type: parser.TokenNumber, Value: "123", IsInt: true, Line: 1, Column: 1},
			},
		},
		{
			name:  "decimal",
			input: "3.14",
			expected: []parser.Token{
				{Type: parser.TokenNumber, Value: "3.14", Line: 1, Column: 1},
			},
		},
		{
			name:  "integer with unit",
			input: "10mm",
			expected: []parser.Token{
				{Type: parser.TokenNumber, Value: "10", Unit: units.MM, IsInt: true, Line: 1, Column: 1},
			},
		},
		{
			name:  "decimal with unit",
			input: "2.5in",
			expected: []parser.Token{
				{Type: parser.TokenNumber, Value: "2.5", Unit: units.IN, Line: 1, Column: 1},
			},
		},
		{
			name:  "all unit suffixes",
			input: "1mm 2cm 3m 4in 5ft 6yd",
			expected: []parser.Token{
				{Type: parser.TokenNumber, Value: "1", Unit: units.MM, IsInt: true},
				{Type: parser.TokenNumber, Value: "2", Unit: units.CM, IsInt: true},
				{Type: parser.TokenNumber, Value: "3", Unit: units.M, IsInt: true},
				{Type: parser.TokenNumber, Value: "4", Unit: units.IN, IsInt: true},
				{Type: parser.TokenNumber, Value: "5", Unit: units.FT, IsInt: true},
				{Type: parser.TokenNumber, Value: "6", Unit: units.YD, IsInt: true},
			},
		},
		{
			name:      "unknown unit suffix",
			input:     "10km",
			expectErr: true,
		},
		{
			name:      "trailing decimal point",
			input:     "10.",
			expectErr: true,
		},
	}

	runLexerTests(t, tests)
}

func TestLexerStrings(t *testing.T) {
	tests := []lexerTestCase{
		{
			name:  "simple string",
			input: "'hardwood'",
			expected: []parser.Token{
				{Type: parser.TokenString, Value: "hardwood"},
			},
		},
		{
			name:  "empty string",
			input: "''",
			expected: []parser.Token{
				{Type: parser.TokenString, Value: ""},
			},
		},
		{
			name:  "doubled quote escape kept raw",
			input: "'it''s'",
			expected: []parser.Token{
				{Type: parser.TokenString, Value: "it''s"},
			},
		},
		{
			name:      "unterminated string",
			input:     "'oops",
			expectErr: true,
		},
		{
			name:      "newline in string",
			input:     "'a\nb'",
			expectErr: true,
		},
	}

	runLexerTests(t, tests)
}

func TestLexerSymbolsAndKeywords(t *testing.T) {
	tests := []lexerTestCase{
		{
			name:  "operators",
			input: "+ - * / ^ ! =",
			expected: []parser.Token{
				{Type: parser.TokenPlus, Value: "+"},
				{Type: parser.TokenMinus, Value: "-"},
				{Type: parser.TokenMult, Value: "*"},
				{Type: parser.TokenDiv, Value: "/"},
				{Type: parser.TokenPow, Value: "^"},
				{Type: parser.TokenBang, Value: "!"},
				{Type: parser.TokenAssign, Value: "="},
			},
		},
		{
			name:  "grouping and separators",
			input: "(){},;",
			expected: []parser.Token{
				{Type: parser.TokenParenOpen, Value: "("},
				{Type: parser.TokenParenClose, Value: ")"},
				{Type: parser.TokenBraceOpen, Value: "{"},
				{Type: parser.TokenBraceClose, Value: "}"},
				{Type: parser.TokenComma, Value: ","},
				{Type: parser.TokenSemicolon, Value: ";"},
			},
		},
		{
			name:  "keywords",
			input: "for in forx infer",
			expected: []parser.Token{
				{Type: parser.TokenFor, Value: "for"},
				{Type: parser.TokenIn, Value: "in"},
				{Type: parser.TokenIdent, Value: "forx"},
				{Type: parser.TokenIdent, Value: "infer"},
			},
		},
		{
			name:      "unexpected character",
			input:     "a @ b",
			expectErr: true,
		},
	}

	runLexerTests(t, tests)
}

func TestLexerComments(t *testing.T) {
	tests := []lexerTestCase{
		{
			name:  "line comment skipped",
			input: "a // comment\nb",
			expected: []parser.Token{
				{Type: parser.TokenIdent, Value: "a", Line: 1, Column: 1},
				{Type: parser.TokenIdent, Value: "b", Line: 2, Column: 1},
			},
		},
		{
			name:     "comment at end of input",
			input:    "// only a comment",
			expected: []parser.Token{},
		},
		{
			name:  "division is not a comment",
			input: "a / b",
			expected: []parser.Token{
				{Type: parser.TokenIdent, Value: "a"},
				{Type: parser.TokenDiv, Value: "/"},
				{Type: parser.TokenIdent, Value: "b"},
			},
		},
	}

	runLexerTests(t, tests)
}

func TestLexerPositions(t *testing.T) {
	tests := []lexerTestCase{
		{
			name:  "columns on one line",
			input: "x = 10mm;",
			expected: []parser.Token{
				{Type: parser.TokenIdent, Value: "x", Line: 1, Column: 1},
				{Type: parser.TokenAssign, Value: "=", Line: 1, Column: 3},
				{Type: parser.TokenNumber, Value: "10", Unit: units.MM, IsInt: true, Line: 1, Column: 5},
				{Type: parser.TokenSemicolon, Value: ";", Line: 1, Column: 9},
			},
		},
		{
			name:  "lines advance",
			input: "a;\n\nb;",
			expected: []parser.Token{
				{Type: parser.TokenIdent, Value: "a", Line: 1, Column: 1},
				{Type: parser.TokenSemicolon, Value: ";", Line: 1, Column: 2},
				{Type: parser.TokenIdent, Value: "b", Line: 3, Column: 1},
				{Type: parser.TokenSemicolon, Value: ";", Line: 3, Column: 2},
			},
		},
	}

	runLexerTests(t, tests)
}

func TestLexerErrorPosition(t *testing.T) {
	lexer := parser.NewLexer("x = 10km;")
	for {
		tok := lexer.Next()
		if tok.Type == parser.TokenEOF || tok.Type == parser.TokenError {
			break
		}
	}

	err := lexer.Error()
	if err == nil {
		t.Fatal("expected a lex error")
	}
	e := types.AsError(err)
	if e.Kind != types.SyntaxError {
		t.Errorf("kind = %v, want SyntaxError", e.Kind)
	}
	if e.Line != 1 || e.Column != 5 {
		t.Errorf("position = %d:%d, want 1:5", e.Line, e.Column)
	}
}
