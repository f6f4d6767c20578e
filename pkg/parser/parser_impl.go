package parser

import (
	"strconv"
	"strings"

	"github.com/fpgaminer/gcad/pkg/types"
)

// Parser implements a recursive descent parser for gcad scripts.
// Expressions are parsed with Pratt's "Top Down Operator Precedence"
// algorithm.
type Parser struct {
	lexer   *Lexer
	current Token
	peeked  *Token
}

// NewParser creates a new parser for the given source text.
func NewParser(source string) *Parser {
	p := &Parser{
		lexer: NewLexer(source),
	}

	// Read the first token
	p.advance()

	return p
}

// Parse parses the whole script and returns the Program.
func (p *Parser) Parse() (*types.Program, error) {
	root := types.NewASTNode(types.NodeProgram, 1, 1)

	for p.current.Type != TokenEOF {
		if p.current.Type == TokenError {
			return nil, p.lexer.Error()
		}

		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		root.Statements = append(root.Statements, stmt)
	}

	return types.NewProgram(root, p.lexer.input), nil
}

// Operator precedence table (binding power).
// Higher values bind more tightly.
var precedence = map[TokenType]int{
	TokenAssign: 10, // = (right-associative)
	TokenPlus:   50, // +
	TokenMinus:  50, // -
	TokenMult:   60, // *
	TokenDiv:    60, // /
	TokenPow:    65, // ^ (right-associative)
	TokenBang:   80, // ! postfix, binds tighter than any binary operator
}

// unaryPrecedence is the binding power of prefix minus: tighter than
// any binary operator, looser than postfix factorial.
const unaryPrecedence = 70

// getPrecedence returns the precedence of a token type.
func (p *Parser) getPrecedence(tt TokenType) int {
	if prec, ok := precedence[tt]; ok {
		return prec
	}
	return 0
}

// advance moves to the next token.
func (p *Parser) advance() {
	if p.peeked != nil {
		p.current = *p.peeked
		p.peeked = nil
		return
	}
	p.current = p.lexer.Next()
}

// peek returns the token after the current one without consuming it.
func (p *Parser) peek() Token {
	if p.peeked == nil {
		t := p.lexer.Next()
		p.peeked = &t
	}
	return *p.peeked
}

// expect checks that the current token matches the expected type and advances.
func (p *Parser) expect(tt TokenType) error {
	if p.current.Type == TokenError {
		return p.lexer.Error()
	}
	if p.current.Type != tt {
		return p.errorf("expected %s but got %s", tt.String(), p.current.Type.String())
	}
	p.advance()
	return nil
}

// errorf creates a SyntaxError at the current token.
func (p *Parser) errorf(format string, args ...interface{}) error {
	return types.NewError(types.SyntaxError, format, args...).
		At(p.current.Line, p.current.Column).
		WithToken(p.current.Value)
}

// parseStatement parses a for-loop or an expression statement
// terminated by ';'.
func (p *Parser) parseStatement() (*types.ASTNode, error) {
	if p.current.Type == TokenFor {
		return p.parseForLoop()
	}

	expr, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}

	if err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}

	return expr, nil
}

// parseForLoop parses "for" ident "in" expr block.
// The loop-source expression must evaluate to a sequence; that is
// checked by the evaluator, not here.
func (p *Parser) parseForLoop() (*types.ASTNode, error) {
	node := types.NewASTNode(types.NodeForLoop, p.current.Line, p.current.Column)
	p.advance() // Skip 'for'

	if p.current.Type != TokenIdent {
		return nil, p.errorf("expected loop variable name, got %s", p.current.Type.String())
	}
	node.Value = p.current.Value
	p.advance()

	if err := p.expect(TokenIn); err != nil {
		return nil, err
	}

	source, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	node.LHS = source

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	node.Body = body

	return node, nil
}

// parseBlock parses "{" statement* "}".
func (p *Parser) parseBlock() (*types.ASTNode, error) {
	node := types.NewASTNode(types.NodeBlock, p.current.Line, p.current.Column)

	if err := p.expect(TokenBraceOpen); err != nil {
		return nil, err
	}

	for p.current.Type != TokenBraceClose {
		if p.current.Type == TokenEOF || p.current.Type == TokenError {
			if err := p.lexer.Error(); err != nil {
				return nil, err
			}
			return nil, p.errorf("unterminated block, expected }")
		}

		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		node.Statements = append(node.Statements, stmt)
	}
	p.advance() // Skip '}'

	return node, nil
}

// parseExpression parses an expression with operator precedence.
// rbp is the right binding power (minimum precedence).
func (p *Parser) parseExpression(rbp int) (*types.ASTNode, error) {
	// Parse prefix expression (nud - null denotation)
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}

	// Parse infix expressions while precedence allows (led - left denotation)
	for rbp < p.getPrecedence(p.current.Type) {
		left, err = p.parseInfix(left)
		if err != nil {
			return nil, err
		}
	}

	return left, nil
}

// parsePrefix parses a prefix expression (nud - null denotation).
func (p *Parser) parsePrefix() (*types.ASTNode, error) {
	token := p.current

	switch token.Type {
	case TokenNumber:
		return p.parseNumber()
	case TokenString:
		return p.parseString()
	case TokenIdent:
		// An identifier directly followed by '(' is a function call.
		if p.peek().Type == TokenParenOpen {
			return p.parseFunctionCall()
		}
		return p.parseIdent()
	case TokenMinus:
		return p.parseUnaryMinus()
	case TokenParenOpen:
		return p.parseGrouping()
	case TokenError:
		return nil, p.lexer.Error()
	default:
		return nil, p.errorf("unexpected token: %s", token.Type.String())
	}
}

// parseInfix parses an infix or postfix expression (led - left denotation).
func (p *Parser) parseInfix(left *types.ASTNode) (*types.ASTNode, error) {
	switch p.current.Type {
	case TokenAssign:
		return p.parseAssignment(left)
	case TokenBang:
		return p.parseFactorial(left)
	case TokenPlus, TokenMinus, TokenMult, TokenDiv, TokenPow:
		return p.parseBinaryOp(left)
	default:
		return nil, p.errorf("unexpected infix token: %s", p.current.Type.String())
	}
}

// parseNumber parses an integer, decimal, or unit-suffixed number literal.
func (p *Parser) parseNumber() (*types.ASTNode, error) {
	node := types.NewASTNode(types.NodeNumber, p.current.Line, p.current.Column)

	val, err := strconv.ParseFloat(p.current.Value, 64)
	if err != nil {
		return nil, p.errorf("invalid number: %s", p.current.Value)
	}

	node.Num = val
	node.IsInt = p.current.IsInt
	node.Unit = p.current.Unit
	p.advance()
	return node, nil
}

// parseString parses a string literal, replacing the '' quote escape.
func (p *Parser) parseString() (*types.ASTNode, error) {
	node := types.NewASTNode(types.NodeString, p.current.Line, p.current.Column)
	node.Value = strings.ReplaceAll(p.current.Value, "''", "'")
	p.advance()
	return node, nil
}

// parseIdent parses a bare identifier reference.
func (p *Parser) parseIdent() (*types.ASTNode, error) {
	node := types.NewASTNode(types.NodeIdent, p.current.Line, p.current.Column)
	node.Value = p.current.Value
	p.advance()
	return node, nil
}

// parseUnaryMinus parses prefix negation.
func (p *Parser) parseUnaryMinus() (*types.ASTNode, error) {
	node := types.NewASTNode(types.NodeUnary, p.current.Line, p.current.Column)
	node.Value = "-"
	p.advance()

	operand, err := p.parseExpression(unaryPrecedence)
	if err != nil {
		return nil, err
	}
	node.LHS = operand

	return node, nil
}

// parseGrouping parses a parenthesized expression.
func (p *Parser) parseGrouping() (*types.ASTNode, error) {
	p.advance() // Skip '('

	expr, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}

	if err := p.expect(TokenParenClose); err != nil {
		return nil, err
	}

	return expr, nil
}

// parseAssignment parses ident "=" expr. Assignment is itself an
// expression; it is right-associative so a = b = 5 binds both names.
func (p *Parser) parseAssignment(left *types.ASTNode) (*types.ASTNode, error) {
	if left.Type != types.NodeIdent {
		return nil, p.errorf("left-hand side of assignment must be an identifier")
	}

	node := types.NewASTNode(types.NodeAssign, left.Line, left.Column)
	node.Value = left.Value

	prec := p.getPrecedence(TokenAssign)
	p.advance() // Skip '='

	value, err := p.parseExpression(prec - 1)
	if err != nil {
		return nil, err
	}
	node.LHS = value

	return node, nil
}

// parseFactorial parses the postfix factorial operator.
func (p *Parser) parseFactorial(left *types.ASTNode) (*types.ASTNode, error) {
	node := types.NewASTNode(types.NodePostfix, p.current.Line, p.current.Column)
	node.Value = "!"
	node.LHS = left
	p.advance() // Skip '!'
	return node, nil
}

// parseBinaryOp parses a binary operator expression.
// '^' is right-associative; the other operators are left-associative.
func (p *Parser) parseBinaryOp(left *types.ASTNode) (*types.ASTNode, error) {
	op := p.current
	prec := p.getPrecedence(op.Type)
	if op.Type == TokenPow {
		prec--
	}
	p.advance()

	right, err := p.parseExpression(prec)
	if err != nil {
		return nil, err
	}

	node := types.NewASTNode(types.NodeBinary, op.Line, op.Column)
	node.Value = op.Type.String()
	node.LHS = left
	node.RHS = right

	return node, nil
}

// parseFunctionCall parses ident "(" params ")" where each parameter is
// positional (expr) or named (ident "=" expr); the two forms may be
// mixed in one call.
func (p *Parser) parseFunctionCall() (*types.ASTNode, error) {
	node := types.NewASTNode(types.NodeCall, p.current.Line, p.current.Column)
	node.Value = p.current.Value
	p.advance() // Skip function name
	p.advance() // Skip '('

	for p.current.Type != TokenParenClose {
		var arg types.CallArg

		// "ident =" starts a named parameter; a bare identifier is an
		// ordinary positional expression.
		if p.current.Type == TokenIdent && p.peek().Type == TokenAssign {
			arg.Name = p.current.Value
			p.advance() // Skip name
			p.advance() // Skip '='
		}

		expr, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		arg.Value = expr
		node.Args = append(node.Args, arg)

		if p.current.Type == TokenParenClose {
			break
		}

		if err := p.expect(TokenComma); err != nil {
			return nil, err
		}
	}

	if err := p.expect(TokenParenClose); err != nil {
		return nil, err
	}

	return node, nil
}
