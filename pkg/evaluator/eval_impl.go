package evaluator

import (
	"github.com/fpgaminer/gcad/pkg/types"
)

// evalNode evaluates a single AST node in the given scope.
func (e *Evaluator) evalNode(node *types.ASTNode, scope *Scope) (types.Value, error) {
	switch node.Type {
	case types.NodeProgram:
		return e.evalStatements(node.Statements, scope)

	case types.NodeBlock:
		// A block introduces a fresh scope frame; bindings made inside
		// it never leak outward.
		return e.evalStatements(node.Statements, NewScope(scope))

	case types.NodeNumber:
		return e.evalNumber(node), nil

	case types.NodeString:
		return types.String(node.Value), nil

	case types.NodeIdent:
		return e.evalIdent(node, scope)

	case types.NodeAssign:
		return e.evalAssign(node, scope)

	case types.NodeUnary:
		return e.evalUnary(node, scope)

	case types.NodePostfix:
		return e.evalPostfix(node, scope)

	case types.NodeBinary:
		return e.evalBinary(node, scope)

	case types.NodeForLoop:
		return e.evalForLoop(node, scope)

	case types.NodeCall:
		return e.evalCall(node, scope)

	default:
		return nil, types.NewError(types.RuntimeError, "unexpected AST node %q", node.Type).At(node.Line, node.Column)
	}
}

func (e *Evaluator) evalStatements(stmts []*types.ASTNode, scope *Scope) (types.Value, error) {
	for _, stmt := range stmts {
		if e.opts.Debug {
			e.logger.Debug("exec statement", "node", stmt.Type, "line", stmt.Line)
		}
		if _, err := e.evalNode(stmt, scope); err != nil {
			return nil, err
		}
	}
	return types.NullValue, nil
}

// evalNumber builds a Number value from a literal node, preserving the
// integer/float distinction the literal was written with.
func (e *Evaluator) evalNumber(node *types.ASTNode) types.Number {
	if node.IsInt {
		return types.IntUnit(int64(node.Num), node.Unit)
	}
	return types.FloatUnit(node.Num, node.Unit)
}

func (e *Evaluator) evalIdent(node *types.ASTNode, scope *Scope) (types.Value, error) {
	if v, ok := scope.Lookup(node.Value); ok {
		return v, nil
	}

	if hint := closestMatch(node.Value, scope.Names()); hint != "" {
		return nil, types.NewError(types.NameError, "undefined variable %q (did you mean %q?)", node.Value, hint).At(node.Line, node.Column)
	}
	return nil, types.NewError(types.NameError, "undefined variable %q", node.Value).At(node.Line, node.Column)
}

// evalAssign evaluates the right-hand side and binds the identifier in
// the innermost active scope. Assignment is an expression; it yields
// the assigned value.
func (e *Evaluator) evalAssign(node *types.ASTNode, scope *Scope) (types.Value, error) {
	value, err := e.evalNode(node.LHS, scope)
	if err != nil {
		return nil, err
	}
	scope.Bind(node.Value, value)
	return value, nil
}

func (e *Evaluator) evalUnary(node *types.ASTNode, scope *Scope) (types.Value, error) {
	operand, err := e.evalNode(node.LHS, scope)
	if err != nil {
		return nil, err
	}

	n, ok := operand.(types.Number)
	if !ok {
		return nil, types.NewError(types.TypeError, "operator %q requires a number, got %s", node.Value, operand.Kind()).At(node.Line, node.Column)
	}
	return n.Neg(), nil
}

func (e *Evaluator) evalPostfix(node *types.ASTNode, scope *Scope) (types.Value, error) {
	operand, err := e.evalNode(node.LHS, scope)
	if err != nil {
		return nil, err
	}

	n, ok := operand.(types.Number)
	if !ok {
		return nil, types.NewError(types.TypeError, "operator %q requires a number, got %s", node.Value, operand.Kind()).At(node.Line, node.Column)
	}

	result, err := n.Factorial()
	if err != nil {
		return nil, types.AsError(err).At(node.Line, node.Column)
	}
	return result, nil
}

func (e *Evaluator) evalBinary(node *types.ASTNode, scope *Scope) (types.Value, error) {
	lhs, err := e.evalNode(node.LHS, scope)
	if err != nil {
		return nil, err
	}
	rhs, err := e.evalNode(node.RHS, scope)
	if err != nil {
		return nil, err
	}

	a, aok := lhs.(types.Number)
	b, bok := rhs.(types.Number)
	if !aok || !bok {
		return nil, types.NewError(types.TypeError, "operator %q requires numbers, got %s and %s", node.Value, lhs.Kind(), rhs.Kind()).At(node.Line, node.Column)
	}

	var result types.Number
	var err2 error
	switch node.Value {
	case "+":
		result, err2 = a.Add(b)
	case "-":
		result, err2 = a.Sub(b)
	case "*":
		result, err2 = a.Mul(b)
	case "/":
		result, err2 = a.Div(b)
	case "^":
		result, err2 = a.Pow(b)
	default:
		return nil, types.NewError(types.RuntimeError, "unknown operator %q", node.Value).At(node.Line, node.Column)
	}
	if err2 != nil {
		return nil, types.AsError(err2).At(node.Line, node.Column)
	}
	return result, nil
}

// evalForLoop iterates the source sequence in order. Each iteration
// runs in a fresh scope frame with the loop variable rebound to that
// element; bindings from one iteration never reach the next, and the
// loop variable is invisible after the loop ends.
func (e *Evaluator) evalForLoop(node *types.ASTNode, scope *Scope) (types.Value, error) {
	source, err := e.evalNode(node.LHS, scope)
	if err != nil {
		return nil, err
	}

	seq, ok := source.(types.Sequence)
	if !ok {
		return nil, types.NewError(types.TypeError, "for-loop source must be a sequence, got %s", source.Kind()).At(node.Line, node.Column)
	}

	for _, elem := range seq {
		iter := NewScope(scope)
		iter.Bind(node.Value, elem)
		if _, err := e.evalNode(node.Body, iter); err != nil {
			return nil, err
		}
	}

	return types.NullValue, nil
}

// evalCall resolves a builtin by name, evaluates the arguments in
// written order, binds them against the declared schema, and invokes
// the implementation.
func (e *Evaluator) evalCall(node *types.ASTNode, scope *Scope) (types.Value, error) {
	def, ok := lookupBuiltin(node.Value)
	if !ok {
		if hint := closestMatch(node.Value, builtinNames()); hint != "" {
			return nil, types.NewError(types.NameError, "unknown function %q (did you mean %q?)", node.Value, hint).At(node.Line, node.Column)
		}
		return nil, types.NewError(types.NameError, "unknown function %q", node.Value).At(node.Line, node.Column)
	}

	evaluated := make([]evaluatedArg, 0, len(node.Args))
	for _, arg := range node.Args {
		v, err := e.evalNode(arg.Value, scope)
		if err != nil {
			return nil, err
		}
		evaluated = append(evaluated, evaluatedArg{name: arg.Name, value: v})
	}

	args, err := bindParams(def, evaluated)
	if err != nil {
		return nil, types.AsError(err).At(node.Line, node.Column)
	}

	if e.opts.Debug {
		e.logger.Debug("call builtin", "name", def.Name, "line", node.Line)
	}

	result, err := def.Impl(e, args)
	if err != nil {
		return nil, types.AsError(err).At(node.Line, node.Column)
	}
	return result, nil
}
