package typesystem

import (
	"fmt"
	"strings"
)

// Type is a declared type of a function parameter or result.
type Type interface {
	String() string
	FreeTypeVariables() []TVar
}

// TVar represents a type variable (e.g. 'a', 'b'). At run time a type
// variable accepts any value.
type TVar struct {
	Name string
}

func (t TVar) String() string            { return t.Name }
func (t TVar) FreeTypeVariables() []TVar { return []TVar{t} }

// TCon represents a type constant (Int, String, Uuid) or the constructor
// part of an applied type (List, Option).
type TCon struct {
	Name string
}

func (t TCon) String() string            { return t.Name }
func (t TCon) FreeTypeVariables() []TVar { return nil }

// TApp represents a type constructor applied to arguments: List<Int>, Result<a, String>.
type TApp struct {
	Constructor TCon
	Args        []Type
}

func (t TApp) String() string {
	if len(t.Args) == 0 {
		return t.Constructor.String()
	}
	args := make([]string, len(t.Args))
	for i, arg := range t.Args {
		args[i] = arg.String()
	}
	return fmt.Sprintf("%s<%s>", t.Constructor.String(), strings.Join(args, ", "))
}

func (t TApp) FreeTypeVariables() []TVar {
	var vars []TVar
	for _, arg := range t.Args {
		vars = append(vars, arg.FreeTypeVariables()...)
	}
	return uniqueTVars(vars)
}

// TFunc represents a function value type, (a, b) -> c.
type TFunc struct {
	Params     []Type
	ReturnType Type
}

func (t TFunc) String() string {
	params := make([]string, len(t.Params))
	for i, p := range t.Params {
		params[i] = p.String()
	}
	ret := "a"
	if t.ReturnType != nil {
		ret = t.ReturnType.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(params, ", "), ret)
}

func (t TFunc) FreeTypeVariables() []TVar {
	var vars []TVar
	for _, p := range t.Params {
		vars = append(vars, p.FreeTypeVariables()...)
	}
	if t.ReturnType != nil {
		vars = append(vars, t.ReturnType.FreeTypeVariables()...)
	}
	return uniqueTVars(vars)
}

func uniqueTVars(vars []TVar) []TVar {
	seen := make(map[string]bool)
	var result []TVar
	for _, v := range vars {
		if !seen[v.Name] {
			seen[v.Name] = true
			result = append(result, v)
		}
	}
	return result
}

// Predeclared types used by the standard library signatures.
var (
	Int       = TCon{Name: "Int"}
	Float     = TCon{Name: "Float"}
	Bool      = TCon{Name: "Bool"}
	String    = TCon{Name: "String"}
	Null      = TCon{Name: "Null"}
	Bytes     = TCon{Name: "Bytes"}
	Date      = TCon{Name: "Date"}
	Uuid      = TCon{Name: "Uuid"}
	Datastore = TCon{Name: "Datastore"}
	Record    = TCon{Name: "Record"}
	Error     = TCon{Name: "Error"}
)

func List(elem Type) TApp {
	return TApp{Constructor: TCon{Name: "List"}, Args: []Type{elem}}
}

func Option(elem Type) TApp {
	return TApp{Constructor: TCon{Name: "Option"}, Args: []Type{elem}}
}

func Result(ok, err Type) TApp {
	return TApp{Constructor: TCon{Name: "Result"}, Args: []Type{ok, err}}
}

func Tuple(elems ...Type) TApp {
	return TApp{Constructor: TCon{Name: "Tuple"}, Args: elems}
}

func Fn(ret Type, params ...Type) TFunc {
	return TFunc{Params: params, ReturnType: ret}
}
