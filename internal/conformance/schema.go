package conformance

import "gopkg.in/yaml.v3"

// TestSuite represents a complete YAML test file
type TestSuite struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	// Datastores declared for every test of the suite
	Databases []string `yaml:"databases,omitempty"`
	// User functions visible to every test of the suite
	Functions []FunctionSpec `yaml:"functions,omitempty"`
	// Package functions visible to every test of the suite
	Packages []FunctionSpec `yaml:"packages,omitempty"`
	Tests    []TestCase     `yaml:"tests"`
}

// FunctionSpec is a function definition in treecodec form.
type FunctionSpec = yaml.Node

// TestCase represents a single test within a suite
type TestCase struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Skip        interface{} `yaml:"skip,omitempty"` // bool or string
	Expr        yaml.Node   `yaml:"expr"`
	Expect      Expectation `yaml:"expect"`
}

// Expectation defines what result is expected from a test. Exactly one of
// Value, Error and Incomplete is set. Faults is checked on every test and
// defaults to zero.
type Expectation struct {
	Value      yaml.Node  `yaml:"value,omitempty"` // expression; results compared with value equality
	Error      *string    `yaml:"error,omitempty"` // ErrorValue message
	Incomplete bool       `yaml:"incomplete,omitempty"`
	Type       string     `yaml:"type,omitempty"` // type name of the result
	Faults     int64      `yaml:"faults,omitempty"`
}

// IsSkipped returns true if this test should be skipped
func (tc *TestCase) IsSkipped() (bool, string) {
	switch v := tc.Skip.(type) {
	case bool:
		if v {
			return true, "skipped"
		}
	case string:
		return true, v
	}
	return false, ""
}
