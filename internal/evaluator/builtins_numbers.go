package evaluator

import (
	"math"
	"math/big"

	"github.com/funvibe/canvasrt/internal/ast"
	"github.com/funvibe/canvasrt/internal/typesystem"
)

func intBuiltins() []*Builtin {
	binary := func(name string, fn BuiltinFunction, ret typesystem.Type, desc string) *Builtin {
		return &Builtin{
			Name:        ast.StdlibName("Int", name, 0),
			Fn:          fn,
			Parameters:  params(param("a", typesystem.Int), param("b", typesystem.Int)),
			ReturnType:  ret,
			Description: desc,
		}
	}
	return []*Builtin{
		binary("add", intArith((*big.Int).Add), typesystem.Int, "Adds two integers"),
		binary("subtract", intArith((*big.Int).Sub), typesystem.Int, "Subtracts b from a"),
		binary("multiply", intArith((*big.Int).Mul), typesystem.Int, "Multiplies two integers"),
		binary("divide", intArith((*big.Int).Quo), typesystem.Int, "Integer division truncated toward zero"),
		binary("mod", intArith((*big.Int).Mod), typesystem.Int, "Euclidean modulus"),
		binary("power", builtinIntPower, typesystem.Int, "Raises a to the power b"),
		binary("lessThan", intCompare(func(c int) bool { return c < 0 }), typesystem.Bool, ""),
		binary("greaterThan", intCompare(func(c int) bool { return c > 0 }), typesystem.Bool, ""),
		binary("lessThanOrEqualTo", intCompare(func(c int) bool { return c <= 0 }), typesystem.Bool, ""),
		binary("greaterThanOrEqualTo", intCompare(func(c int) bool { return c >= 0 }), typesystem.Bool, ""),
		{
			Name:       ast.StdlibName("Int", "toString", 0),
			Fn:         builtinIntToString,
			Parameters: params(param("a", typesystem.Int)),
			ReturnType: typesystem.String,
		},
		{
			Name:        ast.StdlibName("Int", "toFloat", 0),
			Fn:          builtinIntToFloat,
			Parameters:  params(param("a", typesystem.Int)),
			ReturnType:  typesystem.Float,
			Description: "Converts an integer to the nearest float",
		},
	}
}

// intArith wraps a math/big operation. Quo and Mod panic on a zero
// divisor; that panic is a native fault handled at the call boundary.
func intArith(op func(z, x, y *big.Int) *big.Int) BuiltinFunction {
	return func(e *Evaluator, args ...Object) Object {
		a := args[0].(*Integer).Value
		b := args[1].(*Integer).Value
		return &Integer{Value: op(new(big.Int), a, b)}
	}
}

func intCompare(test func(int) bool) BuiltinFunction {
	return func(e *Evaluator, args ...Object) Object {
		a := args[0].(*Integer).Value
		b := args[1].(*Integer).Value
		return nativeBoolToBooleanObject(test(a.Cmp(b)))
	}
}

// maxPowerBits bounds the size of Int::power results.
const maxPowerBits = 1 << 24

var bigOne = big.NewInt(1)

func builtinIntPower(e *Evaluator, args ...Object) Object {
	base := args[0].(*Integer).Value
	exp := args[1].(*Integer).Value
	if exp.Sign() < 0 {
		return newError("Negative exponent %s", exp.String())
	}
	if base.CmpAbs(bigOne) > 0 && exp.Cmp(bigOne) > 0 {
		// the result has at least (bitlen(base)-1)*exp bits
		limit := big.NewInt(maxPowerBits / int64(base.BitLen()-1))
		if exp.Cmp(limit) > 0 {
			return newError("Int::power: result of %s ^ %s is too large", base.String(), exp.String())
		}
	}
	return &Integer{Value: new(big.Int).Exp(base, exp, nil)}
}

func builtinIntToString(e *Evaluator, args ...Object) Object {
	return &String{Value: args[0].(*Integer).Value.String()}
}

func builtinIntToFloat(e *Evaluator, args ...Object) Object {
	f, _ := new(big.Float).SetInt(args[0].(*Integer).Value).Float64()
	return &Float{Value: f}
}

func floatBuiltins() []*Builtin {
	binary := func(name string, op func(a, b float64) float64) *Builtin {
		return &Builtin{
			Name:       ast.StdlibName("Float", name, 0),
			Parameters: params(param("a", typesystem.Float), param("b", typesystem.Float)),
			ReturnType: typesystem.Float,
			Fn: func(e *Evaluator, args ...Object) Object {
				return &Float{Value: op(args[0].(*Float).Value, args[1].(*Float).Value)}
			},
		}
	}
	return []*Builtin{
		binary("add", func(a, b float64) float64 { return a + b }),
		binary("subtract", func(a, b float64) float64 { return a - b }),
		binary("multiply", func(a, b float64) float64 { return a * b }),
		// IEEE semantics: dividing by zero gives an infinity or NaN
		binary("divide", func(a, b float64) float64 { return a / b }),
		{
			Name:       ast.StdlibName("Float", "round", 0),
			Parameters: params(param("a", typesystem.Float)),
			ReturnType: typesystem.Int,
			Fn:         builtinFloatRound,
		},
	}
}

func builtinFloatRound(e *Evaluator, args ...Object) Object {
	f := args[0].(*Float).Value
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return newError("Cannot round %s", args[0].Inspect())
	}
	i, _ := big.NewFloat(math.Round(f)).Int(nil)
	return &Integer{Value: i}
}

func boolBuiltins() []*Builtin {
	return []*Builtin{
		{
			Name:       ast.StdlibName("Bool", "not", 0),
			Parameters: params(param("b", typesystem.Bool)),
			ReturnType: typesystem.Bool,
			Fn: func(e *Evaluator, args ...Object) Object {
				return nativeBoolToBooleanObject(!args[0].(*Boolean).Value)
			},
		},
	}
}
