package evaluator

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/funvibe/canvasrt/internal/ast"
	"github.com/funvibe/canvasrt/internal/typesystem"
)

type fakePackages map[string]*ast.FunctionDefinition

func (p fakePackages) LookupFunction(name ast.FQFnName) (*ast.FunctionDefinition, bool) {
	def, ok := p[name.String()]
	return def, ok
}

func TestUserFunctionArity(t *testing.T) {
	e := New()
	e.AddUserFunction(userFn("myFn", ident("x"), param("x", typesystem.Int)))

	assertError(t, run(t, e, userCall("myFn", intLit(1), intLit(2))),
		"myFn has 1 parameters, but here was called with 2 arguments.")
	assertEqual(t, run(t, e, userCall("myFn", intLit(1))), NewInteger(1))
}

func TestLambdaArity(t *testing.T) {
	expr := apply(lambda([]string{"a", "b"}, ident("a")), intLit(1))
	assertError(t, run(t, New(), expr), "Expected 2 arguments, got 1")
}

func TestStdlibArity(t *testing.T) {
	assertError(t, run(t, New(), stdCall("Int", "add", intLit(1))),
		"Int::add has 2 parameters, but here was called with 1 arguments.")
}

func TestParameterTypeCheck(t *testing.T) {
	tests := []struct {
		name string
		expr ast.Expression
		msg  string
	}{
		{
			"first mismatch only",
			stdCall("Int", "add", strLit("a"), floatLit(1)),
			"Type error(s) in function parameters: Expected to see a value of type Int but found a String.",
		},
		{
			"second parameter",
			stdCall("Int", "add", intLit(1), floatLit(1)),
			"Type error(s) in function parameters: Expected to see a value of type Int but found a Float.",
		},
		{
			"lambda arity in a function type",
			stdCall("List", "fold", list(intLit(1)), intLit(0), lambda([]string{"acc"}, ident("acc"))),
			"Type error(s) in function parameters: Expected to see a value of type (b, a) -> b but found a Lambda.",
		},
		{
			"generic container",
			stdCall("List", "length", strLit("abc")),
			"Type error(s) in function parameters: Expected to see a value of type List<a> but found a String.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertError(t, run(t, New(), tt.expr), tt.msg)
		})
	}
}

func TestValueMatchesType(t *testing.T) {
	tests := []struct {
		typ   string
		value Object
		want  bool
	}{
		{"Int", NewInteger(1), true},
		{"Int", &Float{Value: 1}, false},
		{"a", NULL, true},
		{"List<Int>", newList([]Object{NewInteger(1), NewInteger(2)}), true},
		{"List<Int>", newList([]Object{NewInteger(1), str("x")}), false},
		{"List<Int>", newList(nil), true},
		{"Option<String>", NOTHING, true},
		{"Option<String>", Just(NewInteger(1)), false},
		{"Result<Int, String>", Fail(str("e")), true},
		{"Result<Int, String>", Fail(NewInteger(1)), false},
		{"Tuple<Int, Bool>", &Tuple{Elements: []Object{NewInteger(1), TRUE}}, true},
		{"Tuple<Int, Bool>", &Tuple{Elements: []Object{NewInteger(1), TRUE, TRUE}}, false},
		{"Datastore", &DbReference{Name: "d"}, true},
		{"Record", NewRecord(), true},
		{"(a) -> b", newLambda([]string{"x"}, nil, NewEnvironment()), true},
		{"(a) -> b", newLambda([]string{"x", "y"}, nil, NewEnvironment()), false},
	}
	for _, tt := range tests {
		t.Run(tt.typ+"/"+tt.value.Inspect(), func(t *testing.T) {
			typ := typesystem.MustParse(tt.typ)
			if got := valueMatchesType(tt.value, typ); got != tt.want {
				t.Errorf("valueMatchesType(%s, %s) = %v, want %v", tt.value.Inspect(), tt.typ, got, tt.want)
			}
		})
	}
}

func TestUserFunctionScope(t *testing.T) {
	e := New()
	e.AddUserFunction(userFn("leak", ident("local")))
	e.AddDatabase("Users")
	e.AddUserFunction(userFn("db", ident("Users")))

	// Caller locals are not visible in the body.
	assertError(t, run(t, e, let("local", intLit(1), userCall("leak"))), "There is no variable named: local")
	// The root environment is.
	if got := run(t, e, userCall("db")); TypeName(got) != "Datastore" {
		t.Errorf("expected datastore, got %s", got.Inspect())
	}
}

func TestReturnedErrorIsNotWrapped(t *testing.T) {
	e := New()
	e.AddUserFunction(userFn("fails", typeError("inner")))
	assertError(t, run(t, e, userCall("fails")), "inner")
	if e.Faults() != 0 {
		t.Errorf("returned ErrorValue counted as fault")
	}
}

func TestPackageFunctions(t *testing.T) {
	name := ast.PackageName("acme", []string{"Math"}, "double", 0)
	e := New()
	e.Packages = fakePackages{
		name.String(): {
			Name:       name,
			Parameters: []ast.Parameter{param("n", typesystem.Int)},
			ReturnType: typesystem.Int,
			Body:       infix("*", ident("n"), intLit(2)),
		},
	}

	call := func(args ...ast.Expression) ast.Expression {
		return &ast.CallExpression{ID: ast.NewID(), Function: name, Arguments: args}
	}
	assertEqual(t, run(t, e, call(intLit(21))), NewInteger(42))
	assertError(t, run(t, e, call()), "acme.Math.double_v0 has 1 parameters, but here was called with 0 arguments.")
	assertError(t, run(t, e, call(strLit("x"))),
		"Type error(s) in function parameters: Expected to see a value of type Int but found a String.")

	missing := &ast.CallExpression{ID: ast.NewID(), Function: ast.PackageName("acme", []string{"Math"}, "triple", 0)}
	assertError(t, run(t, e, missing), "Function acme.Math.triple_v0 is not found")
}

func TestFaultConversion(t *testing.T) {
	var logs bytes.Buffer
	e := New()
	e.Logger = slog.New(slog.NewTextHandler(&logs, nil))
	before := ExceptionCount()

	tests := []struct {
		name string
		expr ast.Expression
	}{
		{"raised", raise()},
		{"division by zero", stdCall("Int", "divide", intLit(1), intLit(0))},
		{"mod by zero", infix("%", intLit(1), intLit(0))},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertError(t, run(t, e, tt.expr), "Unknown error")
			if got := e.Faults(); got != int64(i+1) {
				t.Errorf("Faults() = %d, want %d", got, i+1)
			}
		})
	}
	if ExceptionCount()-before < int64(len(tests)) {
		t.Errorf("process counter did not record every fault")
	}
	if !strings.Contains(logs.String(), "Test::raiseException") {
		t.Errorf("fault not logged: %s", logs.String())
	}
}

func TestFaultInsideLambdaIsCountedOnce(t *testing.T) {
	e := New()
	expr := stdCall("List", "map", list(intLit(1), intLit(2)), lambda([]string{"x"}, raise()))
	assertError(t, run(t, e, expr), "Unknown error")
	if e.Faults() != 1 {
		t.Errorf("Faults() = %d, want 1", e.Faults())
	}
}
