package evaluator

import (
	"github.com/funvibe/canvasrt/internal/ast"
	"github.com/funvibe/canvasrt/internal/config"
)

// resolveFunction finds the callable a name refers to in its namespace.
func (e *Evaluator) resolveFunction(name ast.FQFnName) (Callable, bool) {
	switch name.Kind {
	case ast.UserFn:
		if def, ok := e.UserFunctions[name.Function]; ok {
			return &Function{Definition: def}, true
		}
	case ast.StdlibFn:
		if e.Builtins != nil {
			if b, ok := e.Builtins.Lookup(name); ok {
				return b, true
			}
		}
	case ast.PackageFn:
		if e.Packages != nil {
			if def, ok := e.Packages.LookupFunction(name); ok {
				return &Function{Definition: def}, true
			}
		}
	}
	return nil, false
}

// CallFunction calls a named function with already-evaluated arguments.
// Arguments that are ErrorValues or Incomplete have been dealt with by
// the caller.
func (e *Evaluator) CallFunction(name ast.FQFnName, args []Object) Object {
	fn, ok := e.resolveFunction(name)
	if !ok {
		return newError(config.MsgFunctionNotFound, name.String())
	}
	return e.call(fn, args)
}

// call checks arity, then parameter types, then invokes. Whatever the
// function returns, including an ErrorValue, is the result.
func (e *Evaluator) call(fn Callable, args []Object) Object {
	params := fn.Params()
	if len(args) != len(params) {
		return newError(config.MsgArity, fn.QualifiedName(), len(params), len(args))
	}
	if err := checkParameters(params, args); err != nil {
		return err
	}
	return e.invoke(fn.QualifiedName(), func() Object {
		return fn.invoke(e, args)
	})
}

// ApplyLambda calls a lambda. The body runs in the lambda's captured
// environment extended with the arguments.
func (e *Evaluator) ApplyLambda(l *Lambda, args []Object) Object {
	if len(args) != len(l.Parameters) {
		return newError(config.MsgLambdaArity, len(l.Parameters), len(args))
	}
	env := l.Env
	for i, p := range l.Parameters {
		env = env.Bind(p, args[i])
	}
	return e.invoke("<lambda>", func() Object {
		return e.Eval(l.Body, env)
	})
}

// invoke is the call boundary: a panic raised while running body is a
// native fault and becomes ErrorValue("Unknown error").
func (e *Evaluator) invoke(name string, body func() Object) (result Object) {
	defer func() {
		if r := recover(); r != nil {
			result = e.recordFault(name, r)
		}
	}()
	result = body()
	if result == nil {
		panic("function " + name + " returned no value")
	}
	return result
}
