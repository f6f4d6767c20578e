// Package types defines the core type system for gcad.
//
// This package contains type definitions for:
//   - Program: parsed gcad scripts
//   - ASTNode: Abstract Syntax Tree nodes
//   - Value: runtime values (Number, String, Sequence, Null)
//   - Number: unit-aware numeric values
//   - Error types: structured errors with a kind and source location
package types

// Program represents a parsed gcad script.
//
// A Program can be executed multiple times by passing it to
// [evaluator.Evaluator.Run]; execution never mutates the AST.
type Program struct {
	ast    *ASTNode
	source string
}

// NewProgram creates a new Program from an AST.
func NewProgram(ast *ASTNode, source string) *Program {
	return &Program{
		ast:    ast,
		source: source,
	}
}

// AST returns the Abstract Syntax Tree of the program.
func (p *Program) AST() *ASTNode {
	return p.ast
}

// Source returns the original source code of the program.
func (p *Program) Source() string {
	return p.source
}
