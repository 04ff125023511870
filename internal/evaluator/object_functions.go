package evaluator

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/funvibe/canvasrt/internal/ast"
	"github.com/funvibe/canvasrt/internal/typesystem"
)

var lastLambdaID atomic.Uint64

// Lambda is a closure. Env is the environment at creation time; since
// environments are persistent it is a snapshot. id is unique per created
// lambda and is the only thing equality looks at.
type Lambda struct {
	Parameters []string
	Body       ast.Expression
	Env        *Environment
	id         uint64
}

func newLambda(params []string, body ast.Expression, env *Environment) *Lambda {
	return &Lambda{
		Parameters: params,
		Body:       body,
		Env:        env,
		id:         lastLambdaID.Add(1),
	}
}

func (l *Lambda) Type() ObjectType { return LAMBDA_OBJ }
func (l *Lambda) Inspect() string {
	return fmt.Sprintf("<lambda (%s)>", strings.Join(l.Parameters, ", "))
}

// Callable is the one shape function dispatch works with: user, package
// and standard-library functions all resolve to it.
type Callable interface {
	QualifiedName() string
	Params() []ast.Parameter
	invoke(e *Evaluator, args []Object) Object
}

// BuiltinFunction is the native implementation of a standard-library function.
// It receives arguments that already passed arity and type checks.
type BuiltinFunction func(e *Evaluator, args ...Object) Object

// Builtin is a standard-library function.
type Builtin struct {
	Fn          BuiltinFunction
	Name        ast.FQFnName
	Parameters  []ast.Parameter
	ReturnType  typesystem.Type
	Description string
	Deprecated  bool
}

func (b *Builtin) QualifiedName() string   { return b.Name.String() }
func (b *Builtin) Params() []ast.Parameter { return b.Parameters }
func (b *Builtin) invoke(e *Evaluator, args []Object) Object {
	return b.Fn(e, args...)
}

// Function is a user or package function resolved for a call.
type Function struct {
	Definition *ast.FunctionDefinition
}

func (f *Function) QualifiedName() string   { return f.Definition.Name.String() }
func (f *Function) Params() []ast.Parameter { return f.Definition.Parameters }

// invoke evaluates the body in a fresh scope: the root environment plus
// the parameters. The caller's locals are not visible.
func (f *Function) invoke(e *Evaluator, args []Object) Object {
	env := e.RootEnvironment()
	for i, p := range f.Definition.Parameters {
		env = env.Bind(p.Name, args[i])
	}
	return e.Eval(f.Definition.Body, env)
}
