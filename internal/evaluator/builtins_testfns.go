package evaluator

import (
	"github.com/funvibe/canvasrt/internal/ast"
	"github.com/funvibe/canvasrt/internal/typesystem"
)

// testBuiltins produce each failure channel on demand.
func testBuiltins() []*Builtin {
	return []*Builtin{
		{
			Name:        ast.StdlibName("Test", "typeError", 0),
			Fn:          builtinTestTypeError,
			Parameters:  params(param("message", typesystem.String)),
			ReturnType:  tA,
			Description: "Returns an ErrorValue with the given message",
		},
		{
			Name:        ast.StdlibName("Test", "raiseException", 0),
			Fn:          builtinTestRaiseException,
			Parameters:  params(param("message", typesystem.String)),
			ReturnType:  tA,
			Description: "Raises a native fault",
		},
		{
			Name:       ast.StdlibName("Test", "incomplete", 0),
			Fn:         builtinTestIncomplete,
			ReturnType: tA,
		},
	}
}

func builtinTestTypeError(e *Evaluator, args ...Object) Object {
	return newError("%s", args[0].(*String).Value)
}

func builtinTestRaiseException(e *Evaluator, args ...Object) Object {
	panic(args[0].(*String).Value)
}

func builtinTestIncomplete(e *Evaluator, args ...Object) Object {
	return &Incomplete{}
}
