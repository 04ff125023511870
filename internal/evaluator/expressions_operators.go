package evaluator

import (
	"github.com/funvibe/canvasrt/internal/ast"
	"github.com/funvibe/canvasrt/internal/config"
)

func (e *Evaluator) evalInfixExpression(node *ast.InfixExpression, env *Environment) Object {
	left := e.Eval(node.Left, env)
	if halts(left) {
		return left
	}
	return e.evalInfixWithLeft(node, left, env)
}

// evalInfixWithLeft finishes an infix expression whose left operand is
// already known. Pipes use it to feed the piped value into an operator.
func (e *Evaluator) evalInfixWithLeft(node *ast.InfixExpression, left Object, env *Environment) Object {
	switch node.Operator {
	case "&&", "||":
		return e.finishLogical(node, left, env)
	}

	right := e.Eval(node.Right, env)
	if halts(right) {
		return right
	}

	switch node.Operator {
	case "=":
		return nativeBoolToBooleanObject(ObjectsEqual(left, right))
	case "<>":
		return nativeBoolToBooleanObject(!ObjectsEqual(left, right))
	}

	fnName, ok := config.InfixFunctions[node.Operator]
	if !ok {
		return newError(config.MsgUnknownOperator, node.Operator)
	}
	name, err := ast.ParseFQFnName(fnName)
	if err != nil {
		return newError(config.MsgUnknownOperator, node.Operator)
	}
	return e.CallFunction(name, []Object{left, right})
}

// finishLogical short-circuits: false && _ and true || _ never evaluate
// the right operand, and neither does a non-boolean left operand.
func (e *Evaluator) finishLogical(node *ast.InfixExpression, left Object, env *Environment) Object {
	isAnd := node.Operator == "&&"
	notBool := func() *Error {
		if isAnd {
			return newError(config.MsgAndNotBool)
		}
		return newError(config.MsgOrNotBool)
	}

	switch classify(left) {
	case condHalt:
		return left
	case condNotBool:
		return notBool()
	case condFalse:
		if isAnd {
			return FALSE
		}
	case condTrue:
		if !isAnd {
			return TRUE
		}
	}

	right := e.Eval(node.Right, env)
	switch classify(right) {
	case condHalt:
		return right
	case condNotBool:
		return notBool()
	}
	return right
}
