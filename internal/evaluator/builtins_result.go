package evaluator

import (
	"github.com/funvibe/canvasrt/internal/ast"
	"github.com/funvibe/canvasrt/internal/typesystem"
)

func resultBuiltins() []*Builtin {
	resAB := typesystem.Result(tA, tB)
	tC := typesystem.TVar{Name: "c"}
	return []*Builtin{
		{
			Name:       ast.StdlibName("Result", "withDefault", 0),
			Fn:         builtinResultWithDefault,
			Parameters: params(param("result", resAB), param("default", tA)),
			ReturnType: tA,
		},
		{
			Name:        ast.StdlibName("Result", "map", 0),
			Fn:          builtinResultMap,
			Parameters:  params(param("result", resAB), param("fn", typesystem.Fn(tC, tA))),
			ReturnType:  typesystem.Result(tC, tB),
			Description: "Applies fn to an Ok payload; an Error passes through",
		},
		{
			Name:       ast.StdlibName("Result", "isOk", 0),
			Fn:         builtinResultIsOk,
			Parameters: params(param("result", resAB)),
			ReturnType: typesystem.Bool,
		},
		{
			Name:       ast.StdlibName("Result", "toOption", 0),
			Fn:         builtinResultToOption,
			Parameters: params(param("result", resAB)),
			ReturnType: typesystem.Option(tA),
		},
	}
}

func builtinResultWithDefault(e *Evaluator, args ...Object) Object {
	if r := args[0].(*Result); r.IsOk {
		return r.Value
	}
	return args[1]
}

func builtinResultMap(e *Evaluator, args ...Object) Object {
	r := args[0].(*Result)
	if !r.IsOk {
		return r
	}
	val := callLambda(e, args[1], r.Value)
	if halts(val) {
		return val
	}
	return Ok(val)
}

func builtinResultIsOk(e *Evaluator, args ...Object) Object {
	return nativeBoolToBooleanObject(args[0].(*Result).IsOk)
}

func builtinResultToOption(e *Evaluator, args ...Object) Object {
	if r := args[0].(*Result); r.IsOk {
		return Just(r.Value)
	}
	return NOTHING
}
