package evaluator

import (
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/funvibe/canvasrt/internal/ast"
	"github.com/funvibe/canvasrt/internal/typesystem"
)

func stringBuiltins() []*Builtin {
	unary := func(name string, version int, fn BuiltinFunction, ret typesystem.Type) *Builtin {
		return &Builtin{
			Name:       ast.StdlibName("String", name, version),
			Fn:         fn,
			Parameters: params(param("s", typesystem.String)),
			ReturnType: ret,
		}
	}

	length := unary("length", 0, builtinStringLengthRunes, typesystem.Int)
	length.Deprecated = true
	length.Description = "Counts code points; use String::length_v1"

	graphemes := unary("length", 1, builtinStringLength, typesystem.Int)
	graphemes.Description = "Counts user-perceived characters (grapheme clusters)"

	return []*Builtin{
		{
			Name:        ast.StdlibName("String", "append", 0),
			Fn:          builtinStringAppend,
			Parameters:  params(param("s1", typesystem.String), param("s2", typesystem.String)),
			ReturnType:  typesystem.String,
			Description: "Concatenates two strings",
		},
		length,
		graphemes,
		unary("reverse", 0, builtinStringReverse, typesystem.String),
		unary("toList", 0, builtinStringToList, typesystem.List(typesystem.String)),
		unary("toUppercase", 0, builtinStringToUppercase, typesystem.String),
		unary("toBytes", 0, builtinStringToBytes, typesystem.Bytes),
		unary("isEmpty", 0, builtinStringIsEmpty, typesystem.Bool),
	}
}

func builtinStringAppend(e *Evaluator, args ...Object) Object {
	return &String{Value: args[0].(*String).Value + args[1].(*String).Value}
}

func builtinStringLengthRunes(e *Evaluator, args ...Object) Object {
	return NewInteger(int64(utf8.RuneCountInString(args[0].(*String).Value)))
}

func builtinStringLength(e *Evaluator, args ...Object) Object {
	return NewInteger(int64(uniseg.GraphemeClusterCount(args[0].(*String).Value)))
}

// graphemeClusters splits s so that emoji sequences and combining marks
// stay intact.
func graphemeClusters(s string) []string {
	var clusters []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		clusters = append(clusters, g.Str())
	}
	return clusters
}

func builtinStringReverse(e *Evaluator, args ...Object) Object {
	clusters := graphemeClusters(args[0].(*String).Value)
	var sb strings.Builder
	for i := len(clusters) - 1; i >= 0; i-- {
		sb.WriteString(clusters[i])
	}
	return &String{Value: sb.String()}
}

func builtinStringToList(e *Evaluator, args ...Object) Object {
	clusters := graphemeClusters(args[0].(*String).Value)
	elements := make([]Object, len(clusters))
	for i, c := range clusters {
		elements[i] = &String{Value: c}
	}
	return newList(elements)
}

func builtinStringToUppercase(e *Evaluator, args ...Object) Object {
	return &String{Value: strings.ToUpper(args[0].(*String).Value)}
}

func builtinStringToBytes(e *Evaluator, args ...Object) Object {
	return &Bytes{Value: []byte(args[0].(*String).Value)}
}

func builtinStringIsEmpty(e *Evaluator, args ...Object) Object {
	return nativeBoolToBooleanObject(args[0].(*String).Value == "")
}
