package evaluator

import (
	"math"
	"testing"

	"github.com/google/uuid"
)

func TestObjectsEqual(t *testing.T) {
	id := uuid.MustParse("3700adbc-7a46-4ff4-81bf-a3bda6f25f4a")
	lam := newLambda([]string{"x"}, nil, NewEnvironment())
	ref := &DbReference{Name: "Users"}

	tests := []struct {
		name string
		a, b Object
		want bool
	}{
		{"int", NewInteger(5), NewInteger(5), true},
		{"int differs", NewInteger(5), NewInteger(6), false},
		{"int vs float", NewInteger(0), &Float{Value: 0}, false},
		{"float", &Float{Value: 1.5}, &Float{Value: 1.5}, true},
		{"nan", &Float{Value: math.NaN()}, &Float{Value: math.NaN()}, true},
		{"null", NULL, &Null{}, true},
		{"null vs nothing", NULL, NOTHING, false},
		{"null vs false", NULL, FALSE, false},
		{"null vs zero", NULL, NewInteger(0), false},
		{"null vs error", NULL, NewError("x"), false},
		{"string", str("😀"), str("😀"), true},
		{"list nested", newList([]Object{Just(NewInteger(1))}), newList([]Object{Just(NewInteger(1))}), true},
		{"list length", newList([]Object{NewInteger(1)}), newList(nil), false},
		{"list vs tuple", newList([]Object{TRUE, TRUE}), &Tuple{Elements: []Object{TRUE, TRUE}}, false},
		{"record order", NewRecord().Put("a", TRUE).Put("b", FALSE), NewRecord().Put("b", FALSE).Put("a", TRUE), true},
		{"record value", NewRecord().Put("a", TRUE), NewRecord().Put("a", FALSE), false},
		{"record extra key", NewRecord().Put("a", TRUE), NewRecord().Put("a", TRUE).Put("b", TRUE), false},
		{"ok vs error", Ok(NewInteger(1)), Fail(NewInteger(1)), false},
		{"nothing", NOTHING, &Option{}, true},
		{"just vs nothing", Just(NULL), NOTHING, false},
		{"uuid", &Uuid{Value: id}, &Uuid{Value: uuid.MustParse("3700ADBC-7A46-4FF4-81BF-A3BDA6F25F4A")}, true},
		{"bytes", &Bytes{Value: []byte{1, 2}}, &Bytes{Value: []byte{1, 2}}, true},
		{"same lambda", lam, lam, true},
		{"identical lambdas", newLambda([]string{"x"}, nil, NewEnvironment()), newLambda([]string{"x"}, nil, NewEnvironment()), false},
		{"same db", ref, ref, true},
		{"db by structure", &DbReference{Name: "Users"}, &DbReference{Name: "Users"}, false},
		{"db vs string", ref, str("Users"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ObjectsEqual(tt.a, tt.b); got != tt.want {
				t.Errorf("ObjectsEqual(%s, %s) = %v, want %v", tt.a.Inspect(), tt.b.Inspect(), got, tt.want)
			}
			if got := ObjectsEqual(tt.b, tt.a); got != tt.want {
				t.Errorf("ObjectsEqual is not symmetric for %s", tt.name)
			}
		})
	}
}

func TestObjectsEqualReflexive(t *testing.T) {
	values := []Object{
		NewInteger(-3), &Float{Value: math.Inf(1)}, TRUE, str(""), NULL,
		newList(nil), &Tuple{Elements: []Object{NULL, NOTHING}},
		NewRecord().Put("k", newList([]Object{Ok(str("v"))})),
		Just(Fail(NewInteger(2))), &Bytes{}, &Uuid{Value: uuid.New()},
	}
	for _, v := range values {
		if !ObjectsEqual(v, v) {
			t.Errorf("%s is not equal to itself", v.Inspect())
		}
	}
}

func TestTypeName(t *testing.T) {
	tests := []struct {
		obj  Object
		want string
	}{
		{NewInteger(1), "Int"},
		{&Float{Value: 1}, "Float"},
		{NULL, "Null"},
		{NOTHING, "Option"},
		{Ok(NULL), "Result"},
		{&DbReference{Name: "x"}, "Datastore"},
		{newLambda(nil, nil, NewEnvironment()), "Lambda"},
		{&Incomplete{}, "Incomplete"},
	}
	for _, tt := range tests {
		if got := TypeName(tt.obj); got != tt.want {
			t.Errorf("TypeName(%s) = %q, want %q", tt.obj.Inspect(), got, tt.want)
		}
	}
}

func TestInspect(t *testing.T) {
	tests := []struct {
		obj  Object
		want string
	}{
		{&Float{Value: 1}, "1.0"},
		{&Float{Value: 1e6}, "1000000.0"},
		{&Float{Value: 0.25}, "0.25"},
		{NewRecord().Put("b", NewInteger(2)).Put("a", NewInteger(1)), "{ a: 1, b: 2 }"},
		{newList([]Object{str("x"), NULL}), `["x", null]`},
	}
	for _, tt := range tests {
		if got := tt.obj.Inspect(); got != tt.want {
			t.Errorf("Inspect() = %q, want %q", got, tt.want)
		}
	}
}
