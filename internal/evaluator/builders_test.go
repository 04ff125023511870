package evaluator

import (
	"math/big"
	"testing"

	"github.com/funvibe/canvasrt/internal/ast"
	"github.com/funvibe/canvasrt/internal/typesystem"
)

// Tree builders for tests.

func intLit(n int64) ast.Expression {
	return &ast.IntegerLiteral{ID: ast.NewID(), Value: big.NewInt(n)}
}

func floatLit(f float64) ast.Expression { return &ast.FloatLiteral{ID: ast.NewID(), Value: f} }
func boolLit(b bool) ast.Expression     { return &ast.BooleanLiteral{ID: ast.NewID(), Value: b} }
func strLit(s string) ast.Expression    { return &ast.StringLiteral{ID: ast.NewID(), Value: s} }
func nullLit() ast.Expression           { return &ast.NullLiteral{ID: ast.NewID()} }
func ident(name string) ast.Expression  { return &ast.Identifier{ID: ast.NewID(), Value: name} }

func let(name string, val, body ast.Expression) ast.Expression {
	return &ast.LetExpression{ID: ast.NewID(), Name: name, Value: val, Body: body}
}

func ifExpr(cond, then, els ast.Expression) ast.Expression {
	return &ast.IfExpression{ID: ast.NewID(), Condition: cond, Consequence: then, Alternative: els}
}

func infix(op string, l, r ast.Expression) ast.Expression {
	return &ast.InfixExpression{ID: ast.NewID(), Operator: op, Left: l, Right: r}
}

func list(els ...ast.Expression) ast.Expression {
	return &ast.ListLiteral{ID: ast.NewID(), Elements: els}
}

func tuple(els ...ast.Expression) ast.Expression {
	return &ast.TupleLiteral{ID: ast.NewID(), Elements: els}
}

func record(fields ...ast.RecordField) ast.Expression {
	return &ast.RecordLiteral{ID: ast.NewID(), Fields: fields}
}

func field(key string, val ast.Expression) ast.RecordField {
	return ast.RecordField{Key: key, Value: val}
}

func ctor(name string, args ...ast.Expression) ast.Expression {
	return &ast.ConstructorExpression{ID: ast.NewID(), Name: name, Arguments: args}
}

func member(left ast.Expression, name string) ast.Expression {
	return &ast.MemberExpression{ID: ast.NewID(), Left: left, Member: name}
}

func lambda(params []string, body ast.Expression) ast.Expression {
	return &ast.FunctionLiteral{ID: ast.NewID(), Parameters: params, Body: body}
}

func apply(fn ast.Expression, args ...ast.Expression) ast.Expression {
	return &ast.ApplyExpression{ID: ast.NewID(), Function: fn, Arguments: args}
}

func stdCall(module, fn string, args ...ast.Expression) *ast.CallExpression {
	return &ast.CallExpression{ID: ast.NewID(), Function: ast.StdlibName(module, fn, 0), Arguments: args}
}

func userCall(name string, args ...ast.Expression) *ast.CallExpression {
	return &ast.CallExpression{ID: ast.NewID(), Function: ast.UserName(name), Arguments: args}
}

func pipe(src ast.Expression, steps ...ast.Expression) ast.Expression {
	return &ast.PipeExpression{ID: ast.NewID(), Source: src, Steps: steps}
}

func pipeTarget() ast.Expression { return &ast.PipeTarget{ID: ast.NewID()} }

func flag(cond, oldBranch, newBranch ast.Expression) ast.Expression {
	return &ast.FeatureFlagExpression{ID: ast.NewID(), Name: "test-flag", Condition: cond, Old: oldBranch, New: newBranch}
}

func match(scrutinee ast.Expression, arms ...*ast.MatchArm) ast.Expression {
	return &ast.MatchExpression{ID: ast.NewID(), Expression: scrutinee, Arms: arms}
}

func arm(p ast.Pattern, body ast.Expression) *ast.MatchArm {
	return &ast.MatchArm{Pattern: p, Expression: body}
}

func pvar(name string) ast.Pattern          { return &ast.IdentifierPattern{ID: ast.NewID(), Value: name} }
func pint(n int64) ast.Pattern              { return ast.NewIntPattern(n) }
func plit(v interface{}) ast.Pattern        { return &ast.LiteralPattern{ID: ast.NewID(), Value: v} }
func pwild() ast.Pattern                    { return &ast.WildcardPattern{ID: ast.NewID()} }
func ptuple(els ...ast.Pattern) ast.Pattern { return &ast.TuplePattern{ID: ast.NewID(), Elements: els} }

func pctor(name string, els ...ast.Pattern) ast.Pattern {
	return &ast.ConstructorPattern{ID: ast.NewID(), Name: name, Elements: els}
}

// typeError evaluates to ErrorValue(msg) without raising a fault.
func typeError(msg string) ast.Expression {
	return stdCall("Test", "typeError", strLit(msg))
}

// raise evaluates to a native fault.
func raise() ast.Expression {
	return stdCall("Test", "raiseException", strLit("boom"))
}

func userFn(name string, body ast.Expression, ps ...ast.Parameter) *ast.FunctionDefinition {
	return &ast.FunctionDefinition{
		Name:       ast.UserName(name),
		Parameters: ps,
		ReturnType: typesystem.TVar{Name: "r"},
		Body:       body,
	}
}

func run(t *testing.T, e *Evaluator, expr ast.Expression) Object {
	t.Helper()
	result := e.Run(expr)
	if result == nil {
		t.Fatalf("evaluation returned nil")
	}
	return result
}

func assertError(t *testing.T, obj Object, msg string) {
	t.Helper()
	err, ok := obj.(*Error)
	if !ok {
		t.Fatalf("expected ErrorValue %q, got %s (%s)", msg, TypeName(obj), obj.Inspect())
	}
	if err.Message != msg {
		t.Fatalf("expected error message %q, got %q", msg, err.Message)
	}
}

func assertEqual(t *testing.T, got, want Object) {
	t.Helper()
	if !ObjectsEqual(got, want) {
		t.Fatalf("expected %s, got %s", want.Inspect(), got.Inspect())
	}
}

func str(s string) *String { return &String{Value: s} }
