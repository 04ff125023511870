package evaluator

import (
	"github.com/funvibe/canvasrt/internal/ast"
	"github.com/funvibe/canvasrt/internal/config"
)

// evalIdentifier looks a name up in the lexical scope only. Functions are
// never values here: they are reached through call expressions.
func (e *Evaluator) evalIdentifier(node *ast.Identifier, env *Environment) Object {
	if val, ok := env.Get(node.Value); ok {
		return val
	}
	return newError(config.MsgUnknownVariable, node.Value)
}

// evalLetExpression binds the value for the body only. An ErrorValue or
// Incomplete value skips the body.
func (e *Evaluator) evalLetExpression(node *ast.LetExpression, env *Environment) Object {
	val := e.Eval(node.Value, env)
	if halts(val) {
		return val
	}
	return e.Eval(node.Body, env.Bind(node.Name, val))
}
