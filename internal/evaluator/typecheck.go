package evaluator

import (
	"github.com/funvibe/canvasrt/internal/ast"
	"github.com/funvibe/canvasrt/internal/config"
	"github.com/funvibe/canvasrt/internal/typesystem"
)

// checkParameters returns an ErrorValue describing the first argument
// that does not fit its declared parameter type, or nil.
func checkParameters(params []ast.Parameter, args []Object) *Error {
	for i, p := range params {
		if p.Type == nil {
			continue
		}
		if !valueMatchesType(args[i], p.Type) {
			return newError(config.MsgParamType, p.Type.String(), TypeName(args[i]))
		}
	}
	return nil
}

// valueMatchesType is the run-time shape check. Type variables accept
// anything; containers are checked element by element.
func valueMatchesType(val Object, t typesystem.Type) bool {
	switch t := t.(type) {
	case typesystem.TVar:
		return true

	case typesystem.TCon:
		return conMatches(val, t.Name)

	case typesystem.TApp:
		return appMatches(val, t)

	case typesystem.TFunc:
		l, ok := val.(*Lambda)
		return ok && len(l.Parameters) == len(t.Params)
	}
	return false
}

func conMatches(val Object, name string) bool {
	switch name {
	case config.DatastoreTypeName:
		_, ok := val.(*DbReference)
		return ok
	case config.TupleTypeName:
		_, ok := val.(*Tuple)
		return ok
	}
	return TypeName(val) == name
}

func appMatches(val Object, t typesystem.TApp) bool {
	arg := func(i int) typesystem.Type {
		if i < len(t.Args) {
			return t.Args[i]
		}
		return typesystem.TVar{Name: "a"}
	}

	switch t.Constructor.Name {
	case config.ListTypeName:
		l, ok := val.(*List)
		if !ok {
			return false
		}
		for _, el := range l.Elements {
			if !valueMatchesType(el, arg(0)) {
				return false
			}
		}
		return true

	case config.OptionTypeName:
		o, ok := val.(*Option)
		if !ok {
			return false
		}
		return !o.IsJust() || valueMatchesType(o.Value, arg(0))

	case config.ResultTypeName:
		r, ok := val.(*Result)
		if !ok {
			return false
		}
		if r.IsOk {
			return valueMatchesType(r.Value, arg(0))
		}
		return valueMatchesType(r.Value, arg(1))

	case config.TupleTypeName:
		tup, ok := val.(*Tuple)
		if !ok || len(tup.Elements) != len(t.Args) {
			return false
		}
		for i, el := range tup.Elements {
			if !valueMatchesType(el, t.Args[i]) {
				return false
			}
		}
		return true
	}
	return conMatches(val, t.Constructor.Name)
}
