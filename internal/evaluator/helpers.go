package evaluator

import (
	"fmt"
)

var (
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
	NULL  = &Null{}
)

func nativeBoolToBooleanObject(b bool) *Boolean {
	if b {
		return TRUE
	}
	return FALSE
}

func newError(format string, a ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, a...)}
}

// NewError builds an ErrorValue; built-ins return it to report a problem
// without raising a native fault.
func NewError(format string, a ...interface{}) *Error {
	return newError(format, a...)
}

func isError(obj Object) bool {
	if obj != nil {
		return obj.Type() == ERROR_OBJ
	}
	return false
}

func isIncomplete(obj Object) bool {
	if obj != nil {
		return obj.Type() == INCOMPLETE_OBJ
	}
	return false
}

// halts reports whether obj stops the evaluation of an enclosing
// expression: an ErrorValue or Incomplete is returned as the result of
// the whole expression instead of being used as an operand.
func halts(obj Object) bool {
	return isError(obj) || isIncomplete(obj)
}
