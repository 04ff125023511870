// Package packages holds package functions: namespaced, versioned
// functions shared across programs.
package packages

import (
	"fmt"
	"sort"
	"sync"

	"github.com/funvibe/canvasrt/internal/ast"
)

// Registry is an in-memory set of package functions. It implements the
// evaluator's PackageResolver and is safe for concurrent use.
type Registry struct {
	mu  sync.RWMutex
	fns map[string]*ast.FunctionDefinition
}

func NewRegistry() *Registry {
	return &Registry{fns: make(map[string]*ast.FunctionDefinition)}
}

// Add stores def, replacing any function with the same qualified name.
func (r *Registry) Add(def *ast.FunctionDefinition) error {
	if def.Name.Kind != ast.PackageFn {
		return fmt.Errorf("%s is not a package function name", def.Name)
	}
	if def.Body == nil {
		return fmt.Errorf("package function %s has no body", def.Name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fns[def.Name.String()] = def
	return nil
}

func (r *Registry) LookupFunction(name ast.FQFnName) (*ast.FunctionDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.fns[name.String()]
	return def, ok
}

// Functions returns every function ordered by qualified name.
func (r *Registry) Functions() []*ast.FunctionDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*ast.FunctionDefinition, 0, len(r.fns))
	for _, def := range r.fns {
		result = append(result, def)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name.String() < result[j].Name.String()
	})
	return result
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.fns)
}

// CheckConsistency reports base names with more than one non-deprecated
// version.
func (r *Registry) CheckConsistency() []string {
	current := make(map[string]int)
	for _, def := range r.Functions() {
		if !def.Deprecated {
			current[def.Name.BaseName()]++
		}
	}
	var problems []string
	for base, n := range current {
		if n > 1 {
			problems = append(problems, fmt.Sprintf("%s has %d non-deprecated versions", base, n))
		}
	}
	sort.Strings(problems)
	return problems
}
