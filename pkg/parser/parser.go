// Package parser implements the gcad language parser.
//
// The parser uses a hand-written recursive descent approach with Pratt
// operator-precedence parsing for expressions. It produces a typed AST
// ([types.ASTNode]) and reports syntax errors with 1-based line and
// column positions.
//
// # Grammar
//
//	program   = statement* EOF
//	statement = forLoop | expr ";"
//	forLoop   = "for" ident "in" expr block
//	block     = "{" statement* "}"
//	expr      = assignment | mathExpr
//	mathExpr  = prefix "-" | binary "+ - * / ^" | postfix "!" | trivial
//	trivial   = literal | "(" expr ")" | funcCall | ident
//	funcCall  = ident "(" (param ("," param)*)? ")"
//	param     = ident "=" expr | expr
//	literal   = string | integer | decimal | number unit
//
// Whitespace and //-to-end-of-line comments are insignificant between
// any two tokens.
package parser

import (
	"github.com/fpgaminer/gcad/pkg/types"
)

// Parse parses a gcad script and returns the compiled Program.
//
// The function tokenizes the input and builds an AST. If parsing fails,
// it returns a *types.Error of kind SyntaxError with position
// information.
//
// Example:
//
//	prog, err := parser.Parse("drill(0mm, 0mm, 5mm);")
//	if err != nil {
//	    log.Fatal(err)
//	}
func Parse(source string) (*types.Program, error) {
	p := NewParser(source)
	return p.Parse()
}

// Compile is an alias for Parse, provided for API consistency.
func Compile(source string) (*types.Program, error) {
	return Parse(source)
}
