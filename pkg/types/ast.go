package types

import "github.com/fpgaminer/gcad/pkg/units"

// NodeType identifies the type of an AST node.
type NodeType string

// AST node types. A gcad program is a flat list of statements; every
// statement is either a for-loop or an expression.
const (
	// Literals
	NodeNumber NodeType = "number" // 5, 2.5, 10mm
	NodeString NodeType = "string" // 'text'

	// Expressions
	NodeIdent    NodeType = "ident"    // variable reference
	NodeAssign   NodeType = "assign"   // ident = expr (an expression itself)
	NodeBinary   NodeType = "binary"   // + - * / ^
	NodeUnary    NodeType = "unary"    // prefix -
	NodePostfix  NodeType = "postfix"  // factorial !
	NodeCall     NodeType = "call"     // builtin function call
	NodeForLoop  NodeType = "for"      // for ident in expr { ... }
	NodeBlock    NodeType = "block"    // { statement* }
	NodeProgram  NodeType = "program"  // statement list
)

// CallArg is one parameter of a function call. Name is empty for a
// positional parameter.
type CallArg struct {
	Name  string
	Value *ASTNode
}

// ASTNode represents a node in the Abstract Syntax Tree.
// Nodes are immutable once the parser returns them.
type ASTNode struct {
	Type NodeType

	// Source location, 1-based.
	Line   int
	Column int

	// Value holds the operator for binary/unary/postfix nodes, the
	// identifier for ident/assign/for/call nodes, and the text for
	// string literals.
	Value string

	// Number literal payload. IsInt records whether the literal was
	// written without a decimal point; Unit is None for unitless numbers.
	Num   float64
	IsInt bool
	Unit  units.Unit

	// Relations
	LHS        *ASTNode   // binary lhs, unary/postfix operand, assign value, loop source
	RHS        *ASTNode   // binary rhs
	Body       *ASTNode   // for-loop body block
	Statements []*ASTNode // program and block statements
	Args       []CallArg  // call parameters, in written order
}

// NewASTNode creates a new AST node of the given type at a source position.
func NewASTNode(nodeType NodeType, line, column int) *ASTNode {
	return &ASTNode{
		Type:   nodeType,
		Line:   line,
		Column: column,
	}
}

// String returns a string representation of the node type.
func (n *ASTNode) String() string {
	return string(n.Type)
}
