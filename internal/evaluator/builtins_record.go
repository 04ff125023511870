package evaluator

import (
	"github.com/funvibe/canvasrt/internal/ast"
	"github.com/funvibe/canvasrt/internal/typesystem"
)

func recordBuiltins() []*Builtin {
	return []*Builtin{
		{
			Name:       ast.StdlibName("Record", "get", 0),
			Fn:         builtinRecordGet,
			Parameters: params(param("record", typesystem.Record), param("key", typesystem.String)),
			ReturnType: typesystem.Option(tA),
		},
		{
			Name:        ast.StdlibName("Record", "keys", 0),
			Fn:          builtinRecordKeys,
			Parameters:  params(param("record", typesystem.Record)),
			ReturnType:  typesystem.List(typesystem.String),
			Description: "Field names in sorted order",
		},
	}
}

func builtinRecordGet(e *Evaluator, args ...Object) Object {
	rec := args[0].(*Record)
	if val, ok := rec.Get(args[1].(*String).Value); ok {
		return Just(val)
	}
	return NOTHING
}

func builtinRecordKeys(e *Evaluator, args ...Object) Object {
	keys := args[0].(*Record).Fields.SortedKeys()
	elements := make([]Object, len(keys))
	for i, k := range keys {
		elements[i] = &String{Value: k}
	}
	return newList(elements)
}
