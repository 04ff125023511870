package evaluator

import (
	"github.com/funvibe/canvasrt/internal/ast"
	"github.com/funvibe/canvasrt/internal/typesystem"
)

func optionBuiltins() []*Builtin {
	optA := typesystem.Option(tA)
	return []*Builtin{
		{
			Name:       ast.StdlibName("Option", "withDefault", 0),
			Fn:         builtinOptionWithDefault,
			Parameters: params(param("option", optA), param("default", tA)),
			ReturnType: tA,
		},
		{
			Name:       ast.StdlibName("Option", "map", 0),
			Fn:         builtinOptionMap,
			Parameters: params(param("option", optA), param("fn", typesystem.Fn(tB, tA))),
			ReturnType: typesystem.Option(tB),
		},
		{
			Name:       ast.StdlibName("Option", "isJust", 0),
			Fn:         builtinOptionIsJust,
			Parameters: params(param("option", optA)),
			ReturnType: typesystem.Bool,
		},
	}
}

func builtinOptionWithDefault(e *Evaluator, args ...Object) Object {
	if opt := args[0].(*Option); opt.IsJust() {
		return opt.Value
	}
	return args[1]
}

func builtinOptionMap(e *Evaluator, args ...Object) Object {
	opt := args[0].(*Option)
	if !opt.IsJust() {
		return opt
	}
	val := callLambda(e, args[1], opt.Value)
	if halts(val) {
		return val
	}
	return Just(val)
}

func builtinOptionIsJust(e *Evaluator, args ...Object) Object {
	return nativeBoolToBooleanObject(args[0].(*Option).IsJust())
}
