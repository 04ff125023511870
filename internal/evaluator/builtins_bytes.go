package evaluator

import (
	"encoding/hex"

	"github.com/funvibe/canvasrt/internal/ast"
	"github.com/funvibe/canvasrt/internal/typesystem"
)

func bytesBuiltins() []*Builtin {
	return []*Builtin{
		{
			Name:       ast.StdlibName("Bytes", "length", 0),
			Fn:         builtinBytesLength,
			Parameters: params(param("bytes", typesystem.Bytes)),
			ReturnType: typesystem.Int,
		},
		{
			Name:        ast.StdlibName("Bytes", "toHex", 0),
			Fn:          builtinBytesToHex,
			Parameters:  params(param("bytes", typesystem.Bytes)),
			ReturnType:  typesystem.String,
			Description: "Lowercase hexadecimal, two digits per byte",
		},
		{
			Name:       ast.StdlibName("Bytes", "concat", 0),
			Fn:         builtinBytesConcat,
			Parameters: params(param("a", typesystem.Bytes), param("b", typesystem.Bytes)),
			ReturnType: typesystem.Bytes,
		},
	}
}

func builtinBytesLength(e *Evaluator, args ...Object) Object {
	return NewInteger(int64(len(args[0].(*Bytes).Value)))
}

func builtinBytesToHex(e *Evaluator, args ...Object) Object {
	return &String{Value: hex.EncodeToString(args[0].(*Bytes).Value)}
}

// builtinBytesConcat copies both inputs; Bytes values are never shared.
func builtinBytesConcat(e *Evaluator, args ...Object) Object {
	a, b := args[0].(*Bytes).Value, args[1].(*Bytes).Value
	out := make([]byte, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return &Bytes{Value: out}
}
