package evaluator

import (
	"math/big"

	"github.com/funvibe/canvasrt/internal/ast"
	"github.com/funvibe/canvasrt/internal/config"
)

// Match finds the first arm whose pattern matches val and returns the
// bindings it produced together with the arm's body. ok is false when no
// arm matches.
func Match(val Object, arms []*ast.MatchArm) (bindings map[string]Object, body ast.Expression, ok bool) {
	for _, arm := range arms {
		if matched, b := matchPattern(arm.Pattern, val); matched {
			return b, arm.Expression, true
		}
	}
	return nil, nil, false
}

// matchPattern walks the pattern left to right. A variable that appears
// more than once is not a constraint: each occurrence binds, and the
// last one wins.
func matchPattern(pat ast.Pattern, val Object) (bool, map[string]Object) {
	bindings := make(map[string]Object)

	switch p := pat.(type) {
	case *ast.WildcardPattern:
		return true, bindings

	case *ast.IdentifierPattern:
		bindings[p.Value] = val
		return true, bindings

	case *ast.LiteralPattern:
		return matchLiteral(p.Value, val), bindings

	case *ast.ConstructorPattern:
		var payload Object
		switch p.Name {
		case config.JustCtorName, config.NothingCtorName:
			opt, ok := val.(*Option)
			if !ok || opt.IsJust() != (p.Name == config.JustCtorName) {
				return false, bindings
			}
			payload = opt.Value
		case config.OkCtorName, config.ErrorCtorName:
			res, ok := val.(*Result)
			if !ok || res.IsOk != (p.Name == config.OkCtorName) {
				return false, bindings
			}
			payload = res.Value
		default:
			return false, bindings
		}

		if payload == nil {
			return len(p.Elements) == 0, bindings
		}
		if len(p.Elements) != 1 {
			return false, bindings
		}
		return matchPattern(p.Elements[0], payload)

	case *ast.TuplePattern:
		tuple, ok := val.(*Tuple)
		if !ok || len(tuple.Elements) != len(p.Elements) {
			return false, bindings
		}
		for i, el := range p.Elements {
			matched, subBindings := matchPattern(el, tuple.Elements[i])
			if !matched {
				return false, bindings
			}
			for k, v := range subBindings {
				bindings[k] = v
			}
		}
		return true, bindings
	}

	return false, bindings
}

// matchLiteral requires the same variant; an Int never matches a Float
// literal and vice versa.
func matchLiteral(lit interface{}, val Object) bool {
	switch l := lit.(type) {
	case *big.Int:
		v, ok := val.(*Integer)
		return ok && v.Value.Cmp(l) == 0
	case float64:
		v, ok := val.(*Float)
		return ok && ObjectsEqual(v, &Float{Value: l})
	case bool:
		v, ok := val.(*Boolean)
		return ok && v.Value == l
	case string:
		v, ok := val.(*String)
		return ok && v.Value == l
	case nil:
		_, ok := val.(*Null)
		return ok
	}
	return false
}
