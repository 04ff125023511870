package evaluator

import (
	"fmt"
	"sync/atomic"

	"github.com/funvibe/canvasrt/internal/config"
)

var exceptionCount atomic.Int64

// ExceptionCount is the number of native faults converted to
// ErrorValue("Unknown error") by all evaluators in this process.
func ExceptionCount() int64 {
	return exceptionCount.Load()
}

// ResetExceptionCount zeroes the process-wide counter.
func ResetExceptionCount() {
	exceptionCount.Store(0)
}

// Faults is the number of native faults this evaluator converted.
func (e *Evaluator) Faults() int64 {
	return e.faults.Load()
}

// recordFault counts and logs one fault and returns the value the
// faulting call evaluates to.
func (e *Evaluator) recordFault(where string, recovered interface{}) Object {
	exceptionCount.Add(1)
	e.faults.Add(1)
	e.logger().Warn("native fault converted to error",
		"function", where,
		"fault", fmt.Sprint(recovered),
	)
	return newError(config.MsgUnknownError)
}
