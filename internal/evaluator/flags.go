package evaluator

import "github.com/funvibe/canvasrt/internal/ast"

// evalFeatureFlag picks New only when the condition is exactly true. Any
// other outcome, a native fault included, falls back to Old. A fault is
// recovered here so it never reaches the caller.
func (e *Evaluator) evalFeatureFlag(node *ast.FeatureFlagExpression, env *Environment) Object {
	if e.flagEnabled(node, env) {
		return e.Eval(node.New, env)
	}
	return e.Eval(node.Old, env)
}

func (e *Evaluator) flagEnabled(node *ast.FeatureFlagExpression, env *Environment) (enabled bool) {
	defer func() {
		if r := recover(); r != nil {
			e.recordFault("flag "+node.Name, r)
			enabled = false
		}
	}()
	return classify(e.Eval(node.Condition, env)) == condTrue
}
