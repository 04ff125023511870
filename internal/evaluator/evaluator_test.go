package evaluator

import (
	"testing"

	"github.com/funvibe/canvasrt/internal/ast"
)

func TestEvalForms(t *testing.T) {
	tests := []struct {
		name string
		expr ast.Expression
		want Object
	}{
		{"let", let("x", intLit(2), infix("+", ident("x"), intLit(3))), NewInteger(5)},
		{"let shadowing", let("x", intLit(1), let("x", intLit(2), ident("x"))), NewInteger(2)},
		{"if true", ifExpr(boolLit(true), intLit(1), intLit(2)), NewInteger(1)},
		{"if false", ifExpr(boolLit(false), intLit(1), intLit(2)), NewInteger(2)},
		{"if skips other branch", ifExpr(boolLit(true), intLit(1), raise()), NewInteger(1)},
		{"and", infix("&&", boolLit(true), boolLit(false)), FALSE},
		{"and true", infix("&&", boolLit(true), boolLit(true)), TRUE},
		{"or", infix("||", boolLit(false), boolLit(true)), TRUE},
		{"or false", infix("||", boolLit(false), boolLit(false)), FALSE},
		{"list", list(intLit(1), strLit("a")), newList([]Object{NewInteger(1), str("a")})},
		{"tuple", tuple(intLit(1), intLit(2), intLit(3)), &Tuple{Elements: []Object{NewInteger(1), NewInteger(2), NewInteger(3)}}},
		{"record later wins", record(field("a", intLit(1)), field("a", intLit(2))), NewRecord().Put("a", NewInteger(2))},
		{"just", ctor("Just", nullLit()), Just(NULL)},
		{"nothing", ctor("Nothing"), NOTHING},
		{"ok", ctor("Ok", intLit(1)), Ok(NewInteger(1))},
		{"error ctor", ctor("Error", strLit("bad")), Fail(str("bad"))},
		{"field", member(record(field("name", strLit("x"))), "name"), str("x")},
		{"equal", infix("=", list(intLit(1)), list(intLit(1))), TRUE},
		{"not equal", infix("<>", nullLit(), ctor("Nothing")), TRUE},
		{"lambda not equal to identical lambda", infix("=", lambda(nil, intLit(1)), lambda(nil, intLit(1))), FALSE},
		{"same lambda equal", let("f", lambda(nil, intLit(1)), infix("=", ident("f"), ident("f"))), TRUE},
		{"arithmetic", infix("*", infix("-", intLit(10), intLit(4)), intLit(2)), NewInteger(12)},
		{"comparison", infix("<=", intLit(3), intLit(3)), TRUE},
		{"string append", infix("++", strLit("a"), strLit("b")), str("ab")},
		{"float divide", infix("/", floatLit(1), floatLit(4)), &Float{Value: 0.25}},
		{"pipe call", pipe(intLit(5), stdCall("Int", "add", intLit(1))), NewInteger(6)},
		{"pipe operator", pipe(intLit(5), infix("-", pipeTarget(), intLit(1))), NewInteger(4)},
		{"pipe lambda", pipe(intLit(5), lambda([]string{"x"}, infix("*", ident("x"), intLit(2)))), NewInteger(10)},
		{"pipe chain", pipe(list(intLit(1), intLit(2)), stdCall("List", "push", intLit(0)), stdCall("List", "length")), NewInteger(3)},
		{"apply", apply(lambda([]string{"a", "b"}, infix("-", ident("a"), ident("b"))), intLit(5), intLit(2)), NewInteger(3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertEqual(t, run(t, New(), tt.expr), tt.want)
		})
	}
}

func TestEvalErrors(t *testing.T) {
	tests := []struct {
		name string
		expr ast.Expression
		msg  string
	}{
		{"if not bool", ifExpr(intLit(1), intLit(1), intLit(2)), "If only supports Booleans"},
		{"and left not bool", infix("&&", intLit(1), raise()), "&& only supports Booleans"},
		{"and right not bool", infix("&&", boolLit(true), intLit(1)), "&& only supports Booleans"},
		{"or left not bool", infix("||", nullLit(), raise()), "|| only supports Booleans"},
		{"or right not bool", infix("||", boolLit(false), strLit("x")), "|| only supports Booleans"},
		{"field empty", member(record(field("a", intLit(1))), ""), "Field name is empty"},
		{"field not record", member(intLit(1), "a"), "Attempting to access a field of something that isn't a record or dict, (it's a Int)."},
		{"field missing", member(record(field("a", intLit(1))), "b"), "No field named b in record"},
		{"unknown variable", let("x", intLit(1), ident("y")), "There is no variable named: y"},
		{"apply non-lambda", apply(intLit(3), intLit(1)), "Expected a function value, but found a Int"},
		{"operand type", infix("+", intLit(1), strLit("a")), "Type error(s) in function parameters: Expected to see a value of type Int but found a String."},
		{"unknown function", stdCall("Nope", "nope"), "Function Nope::nope is not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New()
			assertError(t, run(t, e, tt.expr), tt.msg)
			if e.Faults() != 0 {
				t.Errorf("expected no faults, got %d", e.Faults())
			}
		})
	}
}

// Each composite form returns the first ErrorValue in evaluation order
// and never evaluates what comes after it.
func TestErrorPropagation(t *testing.T) {
	tests := []struct {
		name string
		expr ast.Expression
	}{
		{"list", list(intLit(1), typeError("e"), raise())},
		{"tuple", tuple(typeError("e"), raise())},
		{"record declaration order", record(field("z", typeError("e")), field("a", raise()))},
		{"just", ctor("Just", typeError("e"))},
		{"ok", ctor("Ok", typeError("e"))},
		{"call arguments", stdCall("Int", "add", typeError("e"), raise())},
		{"arguments before arity", stdCall("Int", "add", typeError("e"))},
		{"operator left", infix("+", typeError("e"), raise())},
		{"operator right", infix("+", intLit(5), typeError("e"))},
		{"pipe operator right", pipe(intLit(5), infix("+", pipeTarget(), typeError("e")))},
		{"pipe source", pipe(typeError("e"), stdCall("Int", "add", raise()))},
		{"field base", member(typeError("e"), "")},
		{"equality left", infix("=", typeError("e"), raise())},
		{"equality right", infix("<>", intLit(1), typeError("e"))},
		{"let value", let("x", typeError("e"), raise())},
		{"if condition", ifExpr(typeError("e"), raise(), raise())},
		{"and left", infix("&&", typeError("e"), raise())},
		{"and right", infix("&&", boolLit(true), typeError("e"))},
		{"or left", infix("||", typeError("e"), raise())},
		{"apply function", apply(typeError("e"), raise())},
		{"apply argument", apply(lambda([]string{"x"}, ident("x")), typeError("e"))},
		{"nested", list(tuple(intLit(1), record(field("k", ctor("Just", typeError("e"))))))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New()
			assertError(t, run(t, e, tt.expr), "e")
			if e.Faults() != 0 {
				t.Errorf("a later sub-expression was evaluated: %d faults", e.Faults())
			}
		})
	}
}

func TestIncompletePropagation(t *testing.T) {
	incomplete := func() ast.Expression { return stdCall("Test", "incomplete") }
	tests := []struct {
		name string
		expr ast.Expression
	}{
		{"list", list(incomplete(), typeError("e"))},
		{"if", ifExpr(incomplete(), intLit(1), intLit(2))},
		{"and", infix("&&", incomplete(), boolLit(true))},
		{"field", member(incomplete(), "x")},
		{"equality", infix("=", incomplete(), intLit(1))},
		{"call", stdCall("Int", "add", incomplete(), intLit(1))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := run(t, New(), tt.expr); !isIncomplete(got) {
				t.Errorf("expected Incomplete, got %s", got.Inspect())
			}
		})
	}
}

func TestShortCircuitSkipsFaults(t *testing.T) {
	tests := []struct {
		name string
		expr ast.Expression
		want Object
	}{
		{"false and", infix("&&", boolLit(false), raise()), FALSE},
		{"true or", infix("||", boolLit(true), raise()), TRUE},
		{"if", ifExpr(boolLit(false), raise(), intLit(0)), NewInteger(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := ExceptionCount()
			e := New()
			assertEqual(t, run(t, e, tt.expr), tt.want)
			if e.Faults() != 0 {
				t.Errorf("right operand was evaluated")
			}
			if ExceptionCount() < before {
				t.Errorf("exception counter went backwards")
			}
		})
	}
}

func TestErrorSourceIsSet(t *testing.T) {
	inner := member(intLit(1), "x")
	result := run(t, New(), list(intLit(0), inner))
	err, ok := result.(*Error)
	if !ok {
		t.Fatalf("expected error, got %s", result.Inspect())
	}
	if err.Source != inner.GetID() {
		t.Errorf("Source = %d, want the field access node %d", err.Source, inner.GetID())
	}
}

func TestSharedErrorIsNotStamped(t *testing.T) {
	shared := &Error{Message: "shared"}
	r := NewBuiltinRegistry()
	if err := r.Register(&Builtin{
		Name: ast.StdlibName("X", "fail", 0),
		Fn:   func(e *Evaluator, args ...Object) Object { return shared },
	}); err != nil {
		t.Fatal(err)
	}
	e := New()
	e.Builtins = r

	first, second := stdCall("X", "fail"), stdCall("X", "fail")
	a, _ := run(t, e, first).(*Error)
	b, _ := run(t, e, second).(*Error)
	if a == nil || b == nil {
		t.Fatalf("expected two errors")
	}
	if a.Source != first.GetID() || b.Source != second.GetID() {
		t.Errorf("Source = %d, %d; want %d, %d", a.Source, b.Source, first.GetID(), second.GetID())
	}
	if shared.Source != 0 {
		t.Errorf("shared error was stamped with %d", shared.Source)
	}
}

func TestTupleArity(t *testing.T) {
	assertError(t, run(t, New(), tuple(intLit(1))), "Tuples must have at least two elements, got 1")
}

func TestDatabaseReferences(t *testing.T) {
	e := New()
	e.AddDatabase("Users")
	e.AddDatabase("Users")
	e.AddDatabase("Orders")

	assertEqual(t, run(t, e, infix("=", ident("Users"), ident("Users"))), TRUE)
	assertEqual(t, run(t, e, infix("=", ident("Users"), ident("Orders"))), FALSE)
	assertEqual(t, run(t, e, infix("=", ident("Users"), strLit("Users"))), FALSE)

	other := New()
	other.AddDatabase("Users")
	a := run(t, e, ident("Users"))
	b := run(t, other, ident("Users"))
	if ObjectsEqual(a, b) {
		t.Errorf("references from different declarations compared equal")
	}
}

func TestRecursionGuard(t *testing.T) {
	e := New()
	e.MaxDepth = 200
	e.AddUserFunction(userFn("loop", userCall("loop", ident("x")), param("x", tA)))

	assertError(t, run(t, e, userCall("loop", intLit(1))), "maximum recursion depth exceeded")
	if e.evalDepth != 0 {
		t.Errorf("depth not unwound: %d", e.evalDepth)
	}
}
