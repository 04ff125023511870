package evaluator

import (
	"fmt"
	"sort"
	"sync"

	"github.com/funvibe/canvasrt/internal/ast"
	"github.com/funvibe/canvasrt/internal/typesystem"
)

// BuiltinRegistry is the standard-library directory: (module, name,
// version) to signature and native implementation. It is safe for
// concurrent lookups once populated.
type BuiltinRegistry struct {
	mu  sync.RWMutex
	fns map[string]*Builtin
}

func NewBuiltinRegistry() *BuiltinRegistry {
	return &BuiltinRegistry{fns: make(map[string]*Builtin)}
}

// Register adds a built-in. Registering the same qualified name twice is
// an error, as is a name whose printed form parses to a different name.
func (r *BuiltinRegistry) Register(b *Builtin) error {
	if b.Name.Kind != ast.StdlibFn {
		return fmt.Errorf("builtin %s: not a standard-library name", b.Name)
	}
	if b.Fn == nil {
		return fmt.Errorf("builtin %s: missing implementation", b.Name)
	}
	key := b.Name.String()
	if parsed, err := ast.ParseFQFnName(key); err != nil || parsed.String() != key || parsed.Function != b.Name.Function {
		return fmt.Errorf("builtin %s: function name must not carry a version suffix", key)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.fns[key]; exists {
		return fmt.Errorf("builtin %s registered twice", key)
	}
	r.fns[key] = b
	return nil
}

func (r *BuiltinRegistry) Lookup(name ast.FQFnName) (*Builtin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.fns[name.String()]
	return b, ok
}

// All returns every registered built-in ordered by qualified name.
func (r *BuiltinRegistry) All() []*Builtin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*Builtin, 0, len(r.fns))
	for _, b := range r.fns {
		result = append(result, b)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name.String() < result[j].Name.String()
	})
	return result
}

// CheckConsistency reports every base name that has more than one
// non-deprecated version. A consistent registry returns nil.
func (r *BuiltinRegistry) CheckConsistency() []string {
	current := make(map[string]int)
	for _, b := range r.All() {
		if !b.Deprecated {
			current[b.Name.BaseName()]++
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

var (
	stdlibOnce sync.Once
	stdlib     *BuiltinRegistry
)

// Stdlib returns the shared registry of standard-library functions.
func Stdlib() *BuiltinRegistry {
	stdlibOnce.Do(func() {
		stdlib = NewBuiltinRegistry()
		groups := [][]*Builtin{
			intBuiltins(),
			floatBuiltins(),
			boolBuiltins(),
			stringBuiltins(),
			bytesBuiltins(),
			listBuiltins(),
			optionBuiltins(),
			resultBuiltins(),
			recordBuiltins(),
			uuidBuiltins(),
			dateBuiltins(),
			testBuiltins(),
		}
		for _, group := range groups {
			for _, b := range group {
				if err := stdlib.Register(b); err != nil {
					panic(err)
				}
			}
		}
	})
	return stdlib
}

func param(name string, t typesystem.Type) ast.Parameter {
	return ast.Parameter{Name: name, Type: t}
}

func params(ps ...ast.Parameter) []ast.Parameter {
	return ps
}

var (
	tA = typesystem.TVar{Name: "a"}
	tB = typesystem.TVar{Name: "b"}
)

// callLambda is how higher-order built-ins call back into user code.
func callLambda(e *Evaluator, fn Object, args ...Object) Object {
	return e.ApplyLambda(fn.(*Lambda), args)
}
