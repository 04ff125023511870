package evaluator

import (
	"github.com/funvibe/canvasrt/internal/ast"
	"github.com/funvibe/canvasrt/internal/config"
)

func (e *Evaluator) evalCallExpression(node *ast.CallExpression, env *Environment) Object {
	args, stop := e.evalExpressions(node.Arguments, env)
	if stop != nil {
		return stop
	}
	return e.CallFunction(node.Function, args)
}

func (e *Evaluator) evalApplyExpression(node *ast.ApplyExpression, env *Environment) Object {
	fn := e.Eval(node.Function, env)
	if halts(fn) {
		return fn
	}
	args, stop := e.evalExpressions(node.Arguments, env)
	if stop != nil {
		return stop
	}
	return e.applyValue(fn, args)
}

func (e *Evaluator) applyValue(fn Object, args []Object) Object {
	lambda, ok := fn.(*Lambda)
	if !ok {
		return newError(config.MsgNotAFunction, TypeName(fn))
	}
	return e.ApplyLambda(lambda, args)
}

// evalPipeExpression threads the source through each step. The piped
// value is the first argument of a step, evaluated before the step's own
// arguments.
func (e *Evaluator) evalPipeExpression(node *ast.PipeExpression, env *Environment) Object {
	val := e.Eval(node.Source, env)
	for _, step := range node.Steps {
		if halts(val) {
			return val
		}
		val = e.evalPipeStep(step, val, env)
	}
	return val
}

func (e *Evaluator) evalPipeStep(step ast.Expression, piped Object, env *Environment) Object {
	switch s := step.(type) {
	case *ast.CallExpression:
		args, stop := e.evalExpressions(s.Arguments, env)
		if stop != nil {
			return stop
		}
		return e.CallFunction(s.Function, append([]Object{piped}, args...))

	case *ast.ApplyExpression:
		fn := e.Eval(s.Function, env)
		if halts(fn) {
			return fn
		}
		args, stop := e.evalExpressions(s.Arguments, env)
		if stop != nil {
			return stop
		}
		return e.applyValue(fn, append([]Object{piped}, args...))

	case *ast.InfixExpression:
		if _, ok := s.Left.(*ast.PipeTarget); !ok && s.Left != nil {
			return newError(config.MsgPipeStep)
		}
		return e.evalInfixWithLeft(s, piped, env)

	case *ast.FunctionLiteral, *ast.Identifier:
		fn := e.Eval(s, env)
		if halts(fn) {
			return fn
		}
		return e.applyValue(fn, []Object{piped})
	}
	return newError(config.MsgPipeStep)
}
