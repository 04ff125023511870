package conformance

import (
	"fmt"
	"log/slog"

	"github.com/funvibe/canvasrt/internal/ast"
	"github.com/funvibe/canvasrt/internal/evaluator"
)

// Oracle is a second, independent implementation. When a Runner has one,
// every test is also evaluated by it and the two results must be equal.
type Oracle interface {
	Evaluate(test LoadedTest) (evaluator.Object, error)
}

// TestResult represents the outcome of running a single test
type TestResult struct {
	Test       LoadedTest
	Passed     bool
	Skipped    bool
	SkipReason string
	Error      error
	Result     evaluator.Object
	Faults     int64
}

// Runner executes conformance tests
type Runner struct {
	// Packages are consulted after a suite's own package functions
	Packages evaluator.PackageResolver
	Oracle   Oracle
	Logger   *slog.Logger
	MaxDepth int
}

func NewRunner() *Runner {
	return &Runner{}
}

// newEvaluator prepares an evaluator with the suite's functions,
// packages and datastores.
func (r *Runner) newEvaluator(suite *Suite) *evaluator.Evaluator {
	ev := evaluator.New()
	ev.Logger = r.Logger
	if r.MaxDepth > 0 {
		ev.MaxDepth = r.MaxDepth
	}
	for _, def := range suite.UserFunctions {
		ev.AddUserFunction(def)
	}
	for _, name := range suite.Databases {
		ev.AddDatabase(name)
	}
	ev.Packages = resolverChain{suite.Registry, r.Packages}
	return ev
}

// Run executes a single test case
func (r *Runner) Run(test LoadedTest) TestResult {
	if skipped, reason := test.Test.IsSkipped(); skipped {
		return TestResult{Test: test, Skipped: true, SkipReason: reason}
	}

	ev := r.newEvaluator(test.Suite)
	result := ev.Run(test.Expr)
	tr := TestResult{Test: test, Result: result, Faults: ev.Faults()}

	if err := r.checkExpectation(test, result); err != nil {
		tr.Error = err
		return tr
	}
	if want := test.Test.Expect.Faults; tr.Faults != want {
		tr.Error = fmt.Errorf("expected %d native fault(s), got %d", want, tr.Faults)
		return tr
	}
	if r.Oracle != nil {
		if err := r.crossCheck(test, result); err != nil {
			tr.Error = err
			return tr
		}
	}
	tr.Passed = true
	return tr
}

// RunAll executes all tests and returns results
func (r *Runner) RunAll(tests []LoadedTest) []TestResult {
	results := make([]TestResult, 0, len(tests))
	for _, test := range tests {
		results = append(results, r.Run(test))
	}
	return results
}

func (r *Runner) checkExpectation(test LoadedTest, result evaluator.Object) error {
	expect := test.Test.Expect

	if expect.Type != "" {
		if got := evaluator.TypeName(result); got != expect.Type {
			return fmt.Errorf("expected a %s, got a %s: %s", expect.Type, got, result.Inspect())
		}
	}

	switch {
	case expect.Error != nil:
		errVal, ok := result.(*evaluator.Error)
		if !ok {
			return fmt.Errorf("expected error %q, got %s", *expect.Error, result.Inspect())
		}
		if errVal.Message != *expect.Error {
			return fmt.Errorf("expected error %q, got error %q", *expect.Error, errVal.Message)
		}

	case expect.Incomplete:
		if _, ok := result.(*evaluator.Incomplete); !ok {
			return fmt.Errorf("expected Incomplete, got %s", result.Inspect())
		}

	default:
		want, err := r.evalExpected(test)
		if err != nil {
			return err
		}
		if !evaluator.ObjectsEqual(result, want) {
			return fmt.Errorf("expected %s, got %s", want.Inspect(), result.Inspect())
		}
	}
	return nil
}

// evalExpected evaluates the expected-value expression in its own
// evaluator. It must not fault.
func (r *Runner) evalExpected(test LoadedTest) (evaluator.Object, error) {
	ev := r.newEvaluator(test.Suite)
	want := ev.Run(test.Expected)
	if ev.Faults() != 0 {
		return nil, fmt.Errorf("expected value raised %d native fault(s)", ev.Faults())
	}
	return want, nil
}

func (r *Runner) crossCheck(test LoadedTest, result evaluator.Object) error {
	other, err := r.Oracle.Evaluate(test)
	if err != nil {
		return fmt.Errorf("oracle: %w", err)
	}
	if !evaluator.ObjectsEqual(result, other) {
		return fmt.Errorf("oracle disagrees: got %s, oracle %s", result.Inspect(), other.Inspect())
	}
	return nil
}

// resolverChain looks functions up in each resolver in turn.
type resolverChain []evaluator.PackageResolver

func (c resolverChain) LookupFunction(name ast.FQFnName) (*ast.FunctionDefinition, bool) {
	for _, r := range c {
		if r == nil {
			continue
		}
		if def, ok := r.LookupFunction(name); ok {
			return def, true
		}
	}
	return nil, false
}

// SummaryStats computes statistics from test results
type SummaryStats struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
	Faults  int64
}

// ComputeStats generates statistics from test results
func ComputeStats(results []TestResult) SummaryStats {
	stats := SummaryStats{Total: len(results)}
	for _, r := range results {
		stats.Faults += r.Faults
		if r.Skipped {
			stats.Skipped++
		} else if r.Passed {
			stats.Passed++
		} else {
			stats.Failed++
		}
	}
	return stats
}

// FormatStats returns a human-readable summary
func FormatStats(stats SummaryStats) string {
	return fmt.Sprintf("%d passed, %d failed, %d skipped (%d total, %d native faults)",
		stats.Passed, stats.Failed, stats.Skipped, stats.Total, stats.Faults)
}
