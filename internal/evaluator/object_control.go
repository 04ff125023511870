package evaluator

import (
	"github.com/funvibe/canvasrt/internal/ast"
)

// Error is the ErrorValue: a detected type, shape or arity problem. It is
// an ordinary value that propagates through evaluation; it is never a Go
// error or panic.
type Error struct {
	Message string
	Source  ast.ID // node that produced the error, set by Eval
}

func (e *Error) Type() ObjectType { return ERROR_OBJ }
func (e *Error) Inspect() string  { return "<Error: " + e.Message + ">" }

// Incomplete means no rule produced a value, e.g. an unmatched match.
// It is distinct from Error and is never converted into one.
type Incomplete struct {
	Source ast.ID
}

func (i *Incomplete) Type() ObjectType { return INCOMPLETE_OBJ }
func (i *Incomplete) Inspect() string  { return "<Incomplete>" }
