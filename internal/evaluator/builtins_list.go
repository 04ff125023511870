package evaluator

import (
	"math/big"

	"github.com/funvibe/canvasrt/internal/ast"
	"github.com/funvibe/canvasrt/internal/typesystem"
)

func listBuiltins() []*Builtin {
	listA := typesystem.List(tA)
	return []*Builtin{
		{
			Name:       ast.StdlibName("List", "length", 0),
			Fn:         builtinListLength,
			Parameters: params(param("list", listA)),
			ReturnType: typesystem.Int,
		},
		{
			Name:        ast.StdlibName("List", "head", 0),
			Fn:          builtinListHead,
			Parameters:  params(param("list", listA)),
			ReturnType:  typesystem.Option(tA),
			Description: "The first element, or Nothing for an empty list",
		},
		{
			Name:        ast.StdlibName("List", "push", 0),
			Fn:          builtinListPush,
			Parameters:  params(param("list", listA), param("val", tA)),
			ReturnType:  listA,
			Description: "Adds val to the front of list",
		},
		{
			Name:        ast.StdlibName("List", "range", 0),
			Fn:          builtinListRange,
			Parameters:  params(param("lowest", typesystem.Int), param("highest", typesystem.Int)),
			ReturnType:  typesystem.List(typesystem.Int),
			Description: "Integers from lowest to highest, inclusive",
		},
		{
			Name:       ast.StdlibName("List", "map", 0),
			Fn:         builtinListMap,
			Parameters: params(param("list", listA), param("fn", typesystem.Fn(tB, tA))),
			ReturnType: typesystem.List(tB),
		},
		{
			Name: ast.StdlibName("List", "fold", 0),
			Fn:   builtinListFold,
			Parameters: params(
				param("list", listA),
				param("init", tB),
				param("fn", typesystem.Fn(tB, tB, tA)),
			),
			ReturnType: tB,
		},
	}
}

func builtinListLength(e *Evaluator, args ...Object) Object {
	return NewInteger(int64(len(args[0].(*List).Elements)))
}

func builtinListHead(e *Evaluator, args ...Object) Object {
	list := args[0].(*List)
	if len(list.Elements) == 0 {
		return NOTHING
	}
	return Just(list.Elements[0])
}

func builtinListPush(e *Evaluator, args ...Object) Object {
	list := args[0].(*List)
	elements := make([]Object, 0, len(list.Elements)+1)
	elements = append(elements, args[1])
	elements = append(elements, list.Elements...)
	return newList(elements)
}

// maxRangeLength keeps List::range from allocating without bound.
const maxRangeLength = 1 << 20

func builtinListRange(e *Evaluator, args ...Object) Object {
	lo := args[0].(*Integer).Value
	hi := args[1].(*Integer).Value
	if lo.Cmp(hi) > 0 {
		return newList(nil)
	}
	count := new(big.Int).Sub(hi, lo)
	count.Add(count, big.NewInt(1))
	if !count.IsInt64() || count.Int64() > maxRangeLength {
		return newError("List::range: range of %s elements is too large", count.String())
	}
	n := count.Int64()
	elements := make([]Object, 0, n)
	cur := new(big.Int).Set(lo)
	for i := int64(0); i < n; i++ {
		elements = append(elements, &Integer{Value: new(big.Int).Set(cur)})
		cur.Add(cur, big.NewInt(1))
	}
	return newList(elements)
}

// builtinListMap stops at the first element whose result is an
// ErrorValue or Incomplete and returns it.
func builtinListMap(e *Evaluator, args ...Object) Object {
	list := args[0].(*List)
	result := make([]Object, 0, len(list.Elements))
	for _, el := range list.Elements {
		val := callLambda(e, args[1], el)
		if halts(val) {
			return val
		}
		result = append(result, val)
	}
	return newList(result)
}

func builtinListFold(e *Evaluator, args ...Object) Object {
	acc := args[1]
	for _, el := range args[0].(*List).Elements {
		acc = callLambda(e, args[2], acc, el)
		if halts(acc) {
			return acc
		}
	}
	return acc
}
