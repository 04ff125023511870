package treecodec

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/canvasrt/internal/ast"
	"github.com/funvibe/canvasrt/internal/config"
)

// ErrUnknownNode is returned for a mapping whose key names no known form.
var ErrUnknownNode = errors.New("unknown node")

// Unmarshal decodes a YAML document holding one expression.
func Unmarshal(data []byte) (ast.Expression, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse expression: %w", err)
	}
	return Decode(&doc)
}

// Decode converts a YAML node into an expression tree. Every node gets a
// fresh ID.
func Decode(n *yaml.Node) (ast.Expression, error) {
	n = resolve(n)
	if n == nil {
		return nil, fmt.Errorf("empty expression")
	}

	switch n.Kind {
	case yaml.ScalarNode:
		return decodeScalar(n)
	case yaml.MappingNode:
		key, val, err := singleKey(n)
		if err != nil {
			return nil, err
		}
		return decodeForm(key, val)
	}
	return nil, errorAt(n, "expected a scalar or a single-key mapping")
}

func decodeForm(key string, val *yaml.Node) (ast.Expression, error) {
	id := ast.NewID()
	switch key {
	case "var":
		name, err := scalar(val)
		if err != nil {
			return nil, err
		}
		return &ast.Identifier{ID: id, Value: name}, nil

	case "str":
		s, err := scalar(val)
		if err != nil {
			return nil, err
		}
		return &ast.StringLiteral{ID: id, Value: s}, nil

	case "let":
		f, err := fieldsOf(val, "name", "value", "body")
		if err != nil {
			return nil, err
		}
		name, err := scalar(f["name"])
		if err != nil {
			return nil, err
		}
		value, body, err := decodePair(f["value"], f["body"])
		if err != nil {
			return nil, err
		}
		return &ast.LetExpression{ID: id, Name: name, Value: value, Body: body}, nil

	case "if":
		f, err := fieldsOf(val, "cond", "then", "else")
		if err != nil {
			return nil, err
		}
		exprs, err := decodeAll([]*yaml.Node{f["cond"], f["then"], f["else"]})
		if err != nil {
			return nil, err
		}
		return &ast.IfExpression{ID: id, Condition: exprs[0], Consequence: exprs[1], Alternative: exprs[2]}, nil

	case "infix":
		return decodeInfix(id, val)

	case "match":
		return decodeMatch(id, val)

	case "lambda":
		f, err := fieldsOf(val, "params", "body")
		if err != nil {
			return nil, err
		}
		params, err := scalarList(f["params"])
		if err != nil {
			return nil, err
		}
		body, err := Decode(f["body"])
		if err != nil {
			return nil, err
		}
		return &ast.FunctionLiteral{ID: id, Parameters: params, Body: body}, nil

	case "list", "tuple":
		items, err := sequence(val)
		if err != nil {
			return nil, err
		}
		elements, err := decodeAll(items)
		if err != nil {
			return nil, err
		}
		if key == "list" {
			return &ast.ListLiteral{ID: id, Elements: elements}, nil
		}
		return &ast.TupleLiteral{ID: id, Elements: elements}, nil

	case "record":
		return decodeRecord(id, val)

	case "just", "ok", "error":
		payload, err := Decode(val)
		if err != nil {
			return nil, err
		}
		return &ast.ConstructorExpression{ID: id, Name: ctorNames[key], Arguments: []ast.Expression{payload}}, nil

	case "nothing":
		return &ast.ConstructorExpression{ID: id, Name: config.NothingCtorName}, nil

	case "field":
		f, err := fieldsOf(val, "of", "name")
		if err != nil {
			return nil, err
		}
		left, err := Decode(f["of"])
		if err != nil {
			return nil, err
		}
		name, err := scalar(f["name"])
		if err != nil {
			return nil, err
		}
		return &ast.MemberExpression{ID: id, Left: left, Member: name}, nil

	case "pipe":
		items, err := sequence(val)
		if err != nil {
			return nil, err
		}
		if len(items) < 2 {
			return nil, errorAt(val, "pipe needs a source and at least one step")
		}
		exprs, err := decodeAll(items)
		if err != nil {
			return nil, err
		}
		return &ast.PipeExpression{ID: id, Source: exprs[0], Steps: exprs[1:]}, nil

	case "call":
		return decodeCall(id, val)

	case "apply":
		f, err := fieldsOf(val, "fn")
		if err != nil {
			return nil, err
		}
		fn, err := Decode(f["fn"])
		if err != nil {
			return nil, err
		}
		args, err := decodeArgs(f["args"])
		if err != nil {
			return nil, err
		}
		return &ast.ApplyExpression{ID: id, Function: fn, Arguments: args}, nil

	case "flag":
		f, err := fieldsOf(val, "name", "cond", "old", "new")
		if err != nil {
			return nil, err
		}
		name, err := scalar(f["name"])
		if err != nil {
			return nil, err
		}
		exprs, err := decodeAll([]*yaml.Node{f["cond"], f["old"], f["new"]})
		if err != nil {
			return nil, err
		}
		return &ast.FeatureFlagExpression{ID: id, Name: name, Condition: exprs[0], Old: exprs[1], New: exprs[2]}, nil
	}
	return nil, fmt.Errorf("%w %q (line %d)", ErrUnknownNode, key, val.Line)
}

var ctorNames = map[string]string{
	"just":    config.JustCtorName,
	"nothing": config.NothingCtorName,
	"ok":      config.OkCtorName,
	"error":   config.ErrorCtorName,
}

func decodeScalar(n *yaml.Node) (ast.Expression, error) {
	id := ast.NewID()
	switch n.ShortTag() {
	case "!!null":
		return &ast.NullLiteral{ID: id}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, errorAt(n, err.Error())
		}
		return &ast.BooleanLiteral{ID: id, Value: b}, nil
	case "!!int":
		v, err := parseInt(n)
		if err != nil {
			return nil, err
		}
		return &ast.IntegerLiteral{ID: id, Value: v}, nil
	case "!!float":
		// yaml.v3 resolves integers beyond 64 bits as floats.
		if n.Style&yaml.TaggedStyle == 0 && isIntegerText(n.Value) {
			v, err := parseInt(n)
			if err != nil {
				return nil, err
			}
			return &ast.IntegerLiteral{ID: id, Value: v}, nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, errorAt(n, err.Error())
		}
		return &ast.FloatLiteral{ID: id, Value: f}, nil
	case "!!str":
		return &ast.StringLiteral{ID: id, Value: n.Value}, nil
	}
	return nil, errorAt(n, fmt.Sprintf("unsupported scalar tag %s", n.ShortTag()))
}

// parseInt keeps integers of any size; yaml.v3 would overflow int64.
func parseInt(n *yaml.Node) (*big.Int, error) {
	v, ok := new(big.Int).SetString(n.Value, 0)
	if !ok {
		v, ok = new(big.Int).SetString(n.Value, 10)
	}
	if !ok {
		return nil, errorAt(n, fmt.Sprintf("invalid integer %q", n.Value))
	}
	return v, nil
}

func isIntegerText(s string) bool {
	s = strings.TrimLeft(s, "+-")
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func decodeInfix(id ast.ID, val *yaml.Node) (ast.Expression, error) {
	f, err := fieldsOf(val, "op", "right")
	if err != nil {
		return nil, err
	}
	op, err := scalar(f["op"])
	if err != nil {
		return nil, err
	}
	var left ast.Expression = &ast.PipeTarget{ID: ast.NewID()}
	if l, ok := f["left"]; ok {
		if left, err = Decode(l); err != nil {
			return nil, err
		}
	}
	right, err := Decode(f["right"])
	if err != nil {
		return nil, err
	}
	return &ast.InfixExpression{ID: id, Operator: op, Left: left, Right: right}, nil
}

func decodeMatch(id ast.ID, val *yaml.Node) (ast.Expression, error) {
	f, err := fieldsOf(val, "on", "arms")
	if err != nil {
		return nil, err
	}
	scrutinee, err := Decode(f["on"])
	if err != nil {
		return nil, err
	}
	items, err := sequence(f["arms"])
	if err != nil {
		return nil, err
	}
	arms := make([]*ast.MatchArm, 0, len(items))
	for _, item := range items {
		af, err := fieldsOf(item, "pattern", "body")
		if err != nil {
			return nil, err
		}
		pat, err := DecodePattern(af["pattern"])
		if err != nil {
			return nil, err
		}
		body, err := Decode(af["body"])
		if err != nil {
			return nil, err
		}
		arms = append(arms, &ast.MatchArm{Pattern: pat, Expression: body})
	}
	return &ast.MatchExpression{ID: id, Expression: scrutinee, Arms: arms}, nil
}

func decodeRecord(id ast.ID, val *yaml.Node) (ast.Expression, error) {
	val = resolve(val)
	if val.Kind != yaml.MappingNode {
		return nil, errorAt(val, "record expects a mapping")
	}
	fields := make([]ast.RecordField, 0, len(val.Content)/2)
	for i := 0; i+1 < len(val.Content); i += 2 {
		value, err := Decode(val.Content[i+1])
		if err != nil {
			return nil, err
		}
		fields = append(fields, ast.RecordField{Key: val.Content[i].Value, Value: value})
	}
	return &ast.RecordLiteral{ID: id, Fields: fields}, nil
}

func decodeCall(id ast.ID, val *yaml.Node) (ast.Expression, error) {
	f, err := fieldsOf(val, "fn")
	if err != nil {
		return nil, err
	}
	raw, err := scalar(f["fn"])
	if err != nil {
		return nil, err
	}
	name, err := ast.ParseFQFnName(raw)
	if err != nil {
		return nil, errorAt(f["fn"], err.Error())
	}
	args, err := decodeArgs(f["args"])
	if err != nil {
		return nil, err
	}
	return &ast.CallExpression{ID: id, Function: name, Arguments: args}, nil
}

// decodeArgs treats a missing argument list as empty.
func decodeArgs(n *yaml.Node) ([]ast.Expression, error) {
	if n == nil {
		return nil, nil
	}
	items, err := sequence(n)
	if err != nil {
		return nil, err
	}
	return decodeAll(items)
}

func decodePair(a, b *yaml.Node) (ast.Expression, ast.Expression, error) {
	exprs, err := decodeAll([]*yaml.Node{a, b})
	if err != nil {
		return nil, nil, err
	}
	return exprs[0], exprs[1], nil
}

func decodeAll(nodes []*yaml.Node) ([]ast.Expression, error) {
	exprs := make([]ast.Expression, len(nodes))
	for i, n := range nodes {
		expr, err := Decode(n)
		if err != nil {
			return nil, err
		}
		exprs[i] = expr
	}
	return exprs, nil
}

// DecodePattern converts a YAML node into a match pattern.
func DecodePattern(n *yaml.Node) (ast.Pattern, error) {
	n = resolve(n)
	if n == nil {
		return nil, fmt.Errorf("empty pattern")
	}
	id := ast.NewID()

	if n.Kind == yaml.ScalarNode {
		lit, err := decodeScalar(n)
		if err != nil {
			return nil, err
		}
		var value interface{}
		switch l := lit.(type) {
		case *ast.IntegerLiteral:
			value = l.Value
		case *ast.FloatLiteral:
			value = l.Value
		case *ast.BooleanLiteral:
			value = l.Value
		case *ast.StringLiteral:
			value = l.Value
		}
		return &ast.LiteralPattern{ID: id, Value: value}, nil
	}

	key, val, err := singleKey(n)
	if err != nil {
		return nil, err
	}
	switch key {
	case "var":
		name, err := scalar(val)
		if err != nil {
			return nil, err
		}
		if name == "_" {
			return &ast.WildcardPattern{ID: id}, nil
		}
		return &ast.IdentifierPattern{ID: id, Value: name}, nil

	case "str":
		s, err := scalar(val)
		if err != nil {
			return nil, err
		}
		return &ast.LiteralPattern{ID: id, Value: s}, nil

	case "just", "ok", "error":
		inner, err := DecodePattern(val)
		if err != nil {
			return nil, err
		}
		return &ast.ConstructorPattern{ID: id, Name: ctorNames[key], Elements: []ast.Pattern{inner}}, nil

	case "nothing":
		return &ast.ConstructorPattern{ID: id, Name: config.NothingCtorName}, nil

	case "tuple":
		items, err := sequence(val)
		if err != nil {
			return nil, err
		}
		elements := make([]ast.Pattern, len(items))
		for i, item := range items {
			if elements[i], err = DecodePattern(item); err != nil {
				return nil, err
			}
		}
		return &ast.TuplePattern{ID: id, Elements: elements}, nil
	}
	return nil, fmt.Errorf("%w %q in pattern (line %d)", ErrUnknownNode, key, val.Line)
}
