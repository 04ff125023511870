package treecodec

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/canvasrt/internal/ast"
	"github.com/funvibe/canvasrt/internal/typesystem"
)

// FunctionDoc is the YAML shape of a user or package function.
type FunctionDoc struct {
	Name        string     `yaml:"name"`
	Params      []ParamDoc `yaml:"params,omitempty"`
	Returns     string     `yaml:"returns,omitempty"`
	Description string     `yaml:"description,omitempty"`
	Deprecated  bool       `yaml:"deprecated,omitempty"`
	Body        yaml.Node  `yaml:"body"`
}

type ParamDoc struct {
	Name string `yaml:"name"`
	Type string `yaml:"type,omitempty"`
}

// DecodeFunction builds a function definition. Missing parameter or
// return types are generic.
func DecodeFunction(doc *FunctionDoc) (*ast.FunctionDefinition, error) {
	name, err := ast.ParseFQFnName(doc.Name)
	if err != nil {
		return nil, err
	}
	if name.Kind == ast.StdlibFn {
		return nil, fmt.Errorf("function %s: standard-library names cannot be defined", doc.Name)
	}

	def := &ast.FunctionDefinition{
		Name:        name,
		Description: doc.Description,
		Deprecated:  doc.Deprecated,
	}
	for i, p := range doc.Params {
		t, err := parseTypeOr(p.Type, fmt.Sprintf("p%d", i))
		if err != nil {
			return nil, fmt.Errorf("function %s, parameter %s: %w", doc.Name, p.Name, err)
		}
		def.Parameters = append(def.Parameters, ast.Parameter{Name: p.Name, Type: t})
	}
	if def.ReturnType, err = parseTypeOr(doc.Returns, "r"); err != nil {
		return nil, fmt.Errorf("function %s, return type: %w", doc.Name, err)
	}
	if def.Body, err = Decode(&doc.Body); err != nil {
		return nil, fmt.Errorf("function %s: %w", doc.Name, err)
	}
	return def, nil
}

func parseTypeOr(s, variable string) (typesystem.Type, error) {
	if s == "" {
		return typesystem.TVar{Name: variable}, nil
	}
	return typesystem.Parse(s)
}

// EncodeFunction is the inverse of DecodeFunction.
func EncodeFunction(def *ast.FunctionDefinition) (*FunctionDoc, error) {
	body, err := Encode(def.Body)
	if err != nil {
		return nil, fmt.Errorf("function %s: %w", def.Name, err)
	}
	doc := &FunctionDoc{
		Name:        def.Name.String(),
		Description: def.Description,
		Deprecated:  def.Deprecated,
		Body:        *body,
	}
	for _, p := range def.Parameters {
		pd := ParamDoc{Name: p.Name}
		if p.Type != nil {
			pd.Type = p.Type.String()
		}
		doc.Params = append(doc.Params, pd)
	}
	if def.ReturnType != nil {
		doc.Returns = def.ReturnType.String()
	}
	return doc, nil
}

// UnmarshalFunction decodes a single function document.
func UnmarshalFunction(data []byte) (*ast.FunctionDefinition, error) {
	var doc FunctionDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse function: %w", err)
	}
	return DecodeFunction(&doc)
}

// MarshalFunction encodes a function definition as YAML.
func MarshalFunction(def *ast.FunctionDefinition) ([]byte, error) {
	doc, err := EncodeFunction(def)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(doc)
}
