package evaluator

import (
	"github.com/funvibe/canvasrt/internal/ast"
	"github.com/funvibe/canvasrt/internal/config"
)

// condition is how a value behaves in a boolean position.
type condition int

const (
	condFalse condition = iota
	condTrue
	condHalt    // ErrorValue or Incomplete; passed through unchanged
	condNotBool // any other value
)

// classify is shared by if, &&, || and feature flags.
func classify(obj Object) condition {
	if halts(obj) {
		return condHalt
	}
	if b, ok := obj.(*Boolean); ok {
		if b.Value {
			return condTrue
		}
		return condFalse
	}
	return condNotBool
}

func (e *Evaluator) evalIfExpression(ie *ast.IfExpression, env *Environment) Object {
	cond := e.Eval(ie.Condition, env)
	switch classify(cond) {
	case condHalt:
		return cond
	case condTrue:
		return e.Eval(ie.Consequence, env)
	case condFalse:
		return e.Eval(ie.Alternative, env)
	}
	return newError(config.MsgIfNotBool)
}

// evalMatchExpression tries arms in order. A scrutinee that is itself an
// ErrorValue or Incomplete makes the whole match Incomplete.
func (e *Evaluator) evalMatchExpression(node *ast.MatchExpression, env *Environment) Object {
	val := e.Eval(node.Expression, env)
	if halts(val) {
		return &Incomplete{}
	}

	bindings, body, ok := Match(val, node.Arms)
	if !ok {
		return &Incomplete{}
	}
	return e.Eval(body, env.BindAll(bindings))
}
