package conformance

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/canvasrt/internal/ast"
	"github.com/funvibe/canvasrt/internal/packages"
	"github.com/funvibe/canvasrt/internal/treecodec"
)

// Suite is a TestSuite with its functions decoded.
type Suite struct {
	TestSuite
	UserFunctions []*ast.FunctionDefinition
	Registry      *packages.Registry
}

// LoadedTest represents a decoded test with its source file path
type LoadedTest struct {
	File     string
	Suite    *Suite
	Test     TestCase
	Expr     ast.Expression
	Expected ast.Expression // nil unless Expect.Value is set
}

// LoadDir loads every .yaml suite under dir in lexical order. A malformed
// file fails the whole load.
func LoadDir(dir string) ([]LoadedTest, error) {
	var loaded []LoadedTest
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".yaml" {
			return nil
		}
		tests, err := LoadFile(path)
		if err != nil {
			return err
		}
		relPath, _ := filepath.Rel(dir, path)
		for i := range tests {
			tests[i].File = relPath
		}
		loaded = append(loaded, tests...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loaded, nil
}

// LoadFile parses and decodes a single suite file.
func LoadFile(path string) ([]LoadedTest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tests, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for i := range tests {
		tests[i].File = filepath.Base(path)
	}
	return tests, nil
}

// LoadSuite reads a suite file and decodes its functions without
// compiling its tests.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	suite, err := parseSuite(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return suite, nil
}

func parseSuite(data []byte) (*Suite, error) {
	var raw TestSuite
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return compileSuite(raw)
}

// Parse decodes a suite from YAML.
func Parse(data []byte) ([]LoadedTest, error) {
	suite, err := parseSuite(data)
	if err != nil {
		return nil, err
	}

	var tests []LoadedTest
	seen := make(map[string]bool)
	for _, tc := range suite.Tests {
		if seen[tc.Name] {
			return nil, fmt.Errorf("duplicate test name %q", tc.Name)
		}
		seen[tc.Name] = true

		lt, err := compileTest(suite, tc)
		if err != nil {
			return nil, fmt.Errorf("test %q: %w", tc.Name, err)
		}
		tests = append(tests, lt)
	}
	return tests, nil
}

func compileSuite(raw TestSuite) (*Suite, error) {
	suite := &Suite{TestSuite: raw, Registry: packages.NewRegistry()}
	for i := range raw.Functions {
		def, err := decodeFunction(&raw.Functions[i])
		if err != nil {
			return nil, err
		}
		if def.Name.Kind != ast.UserFn {
			return nil, fmt.Errorf("function %s: user functions have plain names", def.Name)
		}
		suite.UserFunctions = append(suite.UserFunctions, def)
	}
	for i := range raw.Packages {
		def, err := decodeFunction(&raw.Packages[i])
		if err != nil {
			return nil, err
		}
		if err := suite.Registry.Add(def); err != nil {
			return nil, err
		}
	}
	return suite, nil
}

func decodeFunction(n *yaml.Node) (*ast.FunctionDefinition, error) {
	var doc treecodec.FunctionDoc
	if err := n.Decode(&doc); err != nil {
		return nil, fmt.Errorf("line %d: %w", n.Line, err)
	}
	return treecodec.DecodeFunction(&doc)
}

func compileTest(suite *Suite, tc TestCase) (LoadedTest, error) {
	lt := LoadedTest{Suite: suite, Test: tc}

	expect := tc.Expect
	set := 0
	if expect.Value.Kind != 0 {
		set++
	}
	if expect.Error != nil {
		set++
	}
	if expect.Incomplete {
		set++
	}
	if set != 1 {
		return lt, fmt.Errorf("expect needs exactly one of value, error, incomplete")
	}

	var err error
	if lt.Expr, err = treecodec.Decode(&tc.Expr); err != nil {
		return lt, fmt.Errorf("expr: %w", err)
	}
	if expect.Value.Kind != 0 {
		if lt.Expected, err = treecodec.Decode(&expect.Value); err != nil {
			return lt, fmt.Errorf("expected value: %w", err)
		}
	}
	return lt, nil
}
