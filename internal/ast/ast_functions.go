package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/funvibe/canvasrt/internal/typesystem"
)

// FnKind tells function dispatch which namespace a name resolves in.
type FnKind int

const (
	UserFn FnKind = iota
	StdlibFn
	PackageFn
)

func (k FnKind) String() string {
	switch k {
	case UserFn:
		return "user"
	case StdlibFn:
		return "stdlib"
	case PackageFn:
		return "package"
	}
	return "unknown"
}

// FQFnName is a fully-qualified function name.
//
//	user:    name
//	stdlib:  Module::name or Module::name_v2
//	package: owner.Module.Sub.name_v0
type FQFnName struct {
	Kind     FnKind
	Owner    string   // package functions only
	Modules  []string // one module for stdlib, one or more for packages
	Function string
	Version  int
}

func UserName(name string) FQFnName {
	return FQFnName{Kind: UserFn, Function: name}
}

func StdlibName(module, function string, version int) FQFnName {
	return FQFnName{Kind: StdlibFn, Modules: []string{module}, Function: function, Version: version}
}

func PackageName(owner string, modules []string, function string, version int) FQFnName {
	return FQFnName{Kind: PackageFn, Owner: owner, Modules: modules, Function: function, Version: version}
}

func (n FQFnName) String() string {
	switch n.Kind {
	case StdlibFn:
		s := strings.Join(n.Modules, "::") + "::" + n.Function
		if n.Version > 0 {
			s += fmt.Sprintf("_v%d", n.Version)
		}
		return s
	case PackageFn:
		parts := append([]string{n.Owner}, n.Modules...)
		parts = append(parts, fmt.Sprintf("%s_v%d", n.Function, n.Version))
		return strings.Join(parts, ".")
	}
	return n.Function
}

// BaseName is the name without its version, used to group versions of one function.
func (n FQFnName) BaseName() string {
	v := n
	v.Version = 0
	if n.Kind == PackageFn {
		parts := append([]string{n.Owner}, n.Modules...)
		return strings.Join(append(parts, n.Function), ".")
	}
	return v.String()
}

// ParseFQFnName reads the textual forms produced by FQFnName.String.
func ParseFQFnName(s string) (FQFnName, error) {
	if s == "" {
		return FQFnName{}, fmt.Errorf("empty function name")
	}
	if strings.Contains(s, "::") {
		parts := strings.Split(s, "::")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return FQFnName{}, fmt.Errorf("invalid stdlib function name %q", s)
		}
		fn, version, err := splitVersion(parts[1], false)
		if err != nil {
			return FQFnName{}, fmt.Errorf("invalid stdlib function name %q: %w", s, err)
		}
		return StdlibName(parts[0], fn, version), nil
	}
	if strings.Contains(s, ".") {
		parts := strings.Split(s, ".")
		if len(parts) < 3 {
			return FQFnName{}, fmt.Errorf("package function name %q needs owner, module and name", s)
		}
		for _, p := range parts {
			if p == "" {
				return FQFnName{}, fmt.Errorf("invalid package function name %q", s)
			}
		}
		fn, version, err := splitVersion(parts[len(parts)-1], true)
		if err != nil {
			return FQFnName{}, fmt.Errorf("invalid package function name %q: %w", s, err)
		}
		modules := append([]string(nil), parts[1:len(parts)-1]...)
		return PackageName(parts[0], modules, fn, version), nil
	}
	return UserName(s), nil
}

func splitVersion(s string, required bool) (string, int, error) {
	idx := strings.LastIndex(s, "_v")
	if idx <= 0 {
		if required {
			return "", 0, fmt.Errorf("missing _vN version suffix")
		}
		return s, 0, nil
	}
	v, err := strconv.Atoi(s[idx+2:])
	if err != nil || v < 0 {
		if required {
			return "", 0, fmt.Errorf("bad version suffix %q", s[idx:])
		}
		return s, 0, nil
	}
	return s[:idx], v, nil
}

// Parameter is one declared function parameter.
type Parameter struct {
	Name string
	Type typesystem.Type
}

// FunctionDefinition is a user or package function: typed parameters and
// an expression body evaluated in a fresh scope.
type FunctionDefinition struct {
	Name        FQFnName
	Parameters  []Parameter
	ReturnType  typesystem.Type
	Body        Expression
	Description string
	Deprecated  bool
}
