package evaluator

import (
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/funvibe/canvasrt/internal/ast"
	"github.com/funvibe/canvasrt/internal/config"
)

// PackageResolver looks up package functions: namespaced, versioned
// functions shared across programs.
type PackageResolver interface {
	LookupFunction(name ast.FQFnName) (*ast.FunctionDefinition, bool)
}

// Evaluator evaluates expression trees. One Evaluator serves one
// evaluation at a time; run independent evaluations on separate
// Evaluators. The Builtins registry and PackageResolver may be shared.
type Evaluator struct {
	// Standard-library functions
	Builtins *BuiltinRegistry
	// User functions of the current program, by name
	UserFunctions map[string]*ast.FunctionDefinition
	// Package functions; nil means none are available
	Packages PackageResolver
	// Logger receives fault conversions. Nil discards.
	Logger *slog.Logger
	// MaxDepth bounds nesting of Eval calls
	MaxDepth int

	databases map[string]*DbReference
	root      *Environment
	faults    atomic.Int64
	evalDepth int
}

func New() *Evaluator {
	return &Evaluator{
		Builtins:      Stdlib(),
		UserFunctions: make(map[string]*ast.FunctionDefinition),
		MaxDepth:      config.DefaultMaxEvalDepth,
		databases:     make(map[string]*DbReference),
	}
}

// AddUserFunction registers a function of the current program.
func (e *Evaluator) AddUserFunction(def *ast.FunctionDefinition) {
	e.UserFunctions[def.Name.Function] = def
}

// AddDatabase declares a datastore; its name is bound in the root
// environment to a DbReference. Declaring the same name twice keeps the
// first reference.
func (e *Evaluator) AddDatabase(name string) {
	if _, ok := e.databases[name]; ok {
		return
	}
	e.databases[name] = &DbReference{Name: name}
	e.root = nil
}

// RootEnvironment is the scope every program and function body starts in.
func (e *Evaluator) RootEnvironment() *Environment {
	if e.root == nil {
		env := NewEnvironment()
		for name, ref := range e.databases {
			env = env.Bind(name, ref)
		}
		e.root = env
	}
	return e.root
}

// Run evaluates a program expression in the root environment.
func (e *Evaluator) Run(node ast.Expression) Object {
	return e.Eval(node, e.RootEnvironment())
}

func (e *Evaluator) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return e.Logger
}

func (e *Evaluator) Eval(node ast.Expression, env *Environment) Object {
	// Check recursion depth to prevent Go stack overflow
	e.evalDepth++
	defer func() { e.evalDepth-- }()
	maxDepth := e.MaxDepth
	if maxDepth <= 0 {
		maxDepth = config.DefaultMaxEvalDepth
	}
	if e.evalDepth > maxDepth {
		return newError(config.MsgMaxDepth)
	}

	obj := e.evalCore(node, env)
	if node == nil {
		return obj
	}
	// Stamp a copy: built-ins may hand back a shared Error or Incomplete.
	switch o := obj.(type) {
	case *Error:
		if o.Source == 0 {
			stamped := *o
			stamped.Source = node.GetID()
			return &stamped
		}
	case *Incomplete:
		if o.Source == 0 {
			stamped := *o
			stamped.Source = node.GetID()
			return &stamped
		}
	}
	return obj
}

func (e *Evaluator) evalCore(node ast.Expression, env *Environment) Object {
	switch node := node.(type) {
	case *ast.IntegerLiteral:
		return &Integer{Value: node.Value}
	case *ast.FloatLiteral:
		return &Float{Value: node.Value}
	case *ast.BooleanLiteral:
		return nativeBoolToBooleanObject(node.Value)
	case *ast.StringLiteral:
		return &String{Value: node.Value}
	case *ast.NullLiteral:
		return NULL
	case *ast.Identifier:
		return e.evalIdentifier(node, env)
	case *ast.LetExpression:
		return e.evalLetExpression(node, env)
	case *ast.IfExpression:
		return e.evalIfExpression(node, env)
	case *ast.InfixExpression:
		return e.evalInfixExpression(node, env)
	case *ast.MatchExpression:
		return e.evalMatchExpression(node, env)
	case *ast.FunctionLiteral:
		return newLambda(node.Parameters, node.Body, env)
	case *ast.ListLiteral:
		return e.evalListLiteral(node, env)
	case *ast.TupleLiteral:
		return e.evalTupleLiteral(node, env)
	case *ast.RecordLiteral:
		return e.evalRecordLiteral(node, env)
	case *ast.ConstructorExpression:
		return e.evalConstructorExpression(node, env)
	case *ast.MemberExpression:
		return e.evalMemberExpression(node, env)
	case *ast.PipeExpression:
		return e.evalPipeExpression(node, env)
	case *ast.CallExpression:
		return e.evalCallExpression(node, env)
	case *ast.ApplyExpression:
		return e.evalApplyExpression(node, env)
	case *ast.FeatureFlagExpression:
		return e.evalFeatureFlag(node, env)
	case *ast.PipeTarget:
		return newError(config.MsgPipeStep)
	case nil:
		return newError("missing expression")
	}
	return newError("unsupported expression %T", node)
}

// evalExpressions evaluates exprs left to right. The first ErrorValue or
// Incomplete stops evaluation and is returned as the second result;
// later expressions are not evaluated.
func (e *Evaluator) evalExpressions(exprs []ast.Expression, env *Environment) ([]Object, Object) {
	result := make([]Object, 0, len(exprs))
	for _, expr := range exprs {
		val := e.Eval(expr, env)
		if halts(val) {
			return nil, val
		}
		result = append(result, val)
	}
	return result, nil
}
