package evaluator

import (
	"github.com/funvibe/canvasrt/internal/ast"
	"github.com/funvibe/canvasrt/internal/config"
)

func (e *Evaluator) evalListLiteral(node *ast.ListLiteral, env *Environment) Object {
	elements, stop := e.evalExpressions(node.Elements, env)
	if stop != nil {
		return stop
	}
	return newList(elements)
}

func (e *Evaluator) evalTupleLiteral(node *ast.TupleLiteral, env *Environment) Object {
	elements, stop := e.evalExpressions(node.Elements, env)
	if stop != nil {
		return stop
	}
	if len(elements) < 2 {
		return newError("Tuples must have at least two elements, got %d", len(elements))
	}
	return &Tuple{Elements: elements}
}

// evalRecordLiteral evaluates fields in declaration order. A later field
// with the same key overwrites an earlier one.
func (e *Evaluator) evalRecordLiteral(node *ast.RecordLiteral, env *Environment) Object {
	record := NewRecord()
	for _, field := range node.Fields {
		val := e.Eval(field.Value, env)
		if halts(val) {
			return val
		}
		if field.Key == "" {
			return newError("Record field name is empty")
		}
		record = record.Put(field.Key, val)
	}
	return record
}

func (e *Evaluator) evalConstructorExpression(node *ast.ConstructorExpression, env *Environment) Object {
	args, stop := e.evalExpressions(node.Arguments, env)
	if stop != nil {
		return stop
	}

	expected := 1
	if node.Name == config.NothingCtorName {
		expected = 0
	}
	switch node.Name {
	case config.JustCtorName, config.NothingCtorName, config.OkCtorName, config.ErrorCtorName:
	default:
		return newError(config.MsgUnknownConstructor, node.Name)
	}
	if len(args) != expected {
		return newError(config.MsgConstructorArity, node.Name, expected, len(args))
	}

	switch node.Name {
	case config.JustCtorName:
		return Just(args[0])
	case config.OkCtorName:
		return Ok(args[0])
	case config.ErrorCtorName:
		return Fail(args[0])
	}
	return NOTHING
}
