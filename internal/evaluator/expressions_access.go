package evaluator

import (
	"github.com/funvibe/canvasrt/internal/ast"
	"github.com/funvibe/canvasrt/internal/config"
)

func (e *Evaluator) evalMemberExpression(node *ast.MemberExpression, env *Environment) Object {
	left := e.Eval(node.Left, env)
	if halts(left) {
		return left
	}
	if node.Member == "" {
		return newError(config.MsgFieldEmpty)
	}
	record, ok := left.(*Record)
	if !ok {
		return newError(config.MsgFieldNotRecord, TypeName(left))
	}
	val, ok := record.Get(node.Member)
	if !ok {
		return newError(config.MsgFieldMissing, node.Member)
	}
	return val
}
