package treecodec

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/canvasrt/internal/ast"
	"github.com/funvibe/canvasrt/internal/config"
)

// Marshal encodes an expression as a YAML document.
func Marshal(expr ast.Expression) ([]byte, error) {
	n, err := Encode(expr)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(n)
}

// Encode converts an expression tree into the YAML form read by Decode.
// Node IDs are not written.
func Encode(expr ast.Expression) (*yaml.Node, error) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return scalarNode("!!int", e.Value.String()), nil
	case *ast.FloatLiteral:
		return floatNode(e.Value), nil
	case *ast.BooleanLiteral:
		return scalarNode("!!bool", strconv.FormatBool(e.Value)), nil
	case *ast.StringLiteral:
		return strNode(e.Value), nil
	case *ast.NullLiteral:
		return scalarNode("!!null", "~"), nil
	case *ast.Identifier:
		return mapNode("var", strNode(e.Value)), nil

	case *ast.LetExpression:
		value, body, err := encodePair(e.Value, e.Body)
		if err != nil {
			return nil, err
		}
		return mapNode("let", mapNode("name", strNode(e.Name), "value", value, "body", body)), nil

	case *ast.IfExpression:
		nodes, err := encodeAll([]ast.Expression{e.Condition, e.Consequence, e.Alternative})
		if err != nil {
			return nil, err
		}
		return mapNode("if", mapNode("cond", nodes[0], "then", nodes[1], "else", nodes[2])), nil

	case *ast.InfixExpression:
		right, err := Encode(e.Right)
		if err != nil {
			return nil, err
		}
		if _, ok := e.Left.(*ast.PipeTarget); ok {
			return mapNode("infix", mapNode("op", strNode(e.Operator), "right", right)), nil
		}
		left, err := Encode(e.Left)
		if err != nil {
			return nil, err
		}
		return mapNode("infix", mapNode("op", strNode(e.Operator), "left", left, "right", right)), nil

	case *ast.MatchExpression:
		return encodeMatch(e)

	case *ast.FunctionLiteral:
		params := make([]*yaml.Node, len(e.Parameters))
		for i, p := range e.Parameters {
			params[i] = strNode(p)
		}
		body, err := Encode(e.Body)
		if err != nil {
			return nil, err
		}
		return mapNode("lambda", mapNode("params", flowSeq(params), "body", body)), nil

	case *ast.ListLiteral:
		nodes, err := encodeAll(e.Elements)
		if err != nil {
			return nil, err
		}
		return mapNode("list", seqNode(nodes)), nil

	case *ast.TupleLiteral:
		nodes, err := encodeAll(e.Elements)
		if err != nil {
			return nil, err
		}
		return mapNode("tuple", seqNode(nodes)), nil

	case *ast.RecordLiteral:
		rec := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, f := range e.Fields {
			val, err := Encode(f.Value)
			if err != nil {
				return nil, err
			}
			rec.Content = append(rec.Content, strNode(f.Key), val)
		}
		return mapNode("record", rec), nil

	case *ast.ConstructorExpression:
		return encodeConstructor(e)

	case *ast.MemberExpression:
		left, err := Encode(e.Left)
		if err != nil {
			return nil, err
		}
		return mapNode("field", mapNode("of", left, "name", strNode(e.Member))), nil

	case *ast.PipeExpression:
		nodes, err := encodeAll(append([]ast.Expression{e.Source}, e.Steps...))
		if err != nil {
			return nil, err
		}
		return mapNode("pipe", seqNode(nodes)), nil

	case *ast.CallExpression:
		args, err := encodeAll(e.Arguments)
		if err != nil {
			return nil, err
		}
		return mapNode("call", mapNode("fn", strNode(e.Function.String()), "args", seqNode(args))), nil

	case *ast.ApplyExpression:
		fn, err := Encode(e.Function)
		if err != nil {
			return nil, err
		}
		args, err := encodeAll(e.Arguments)
		if err != nil {
			return nil, err
		}
		return mapNode("apply", mapNode("fn", fn, "args", seqNode(args))), nil

	case *ast.FeatureFlagExpression:
		nodes, err := encodeAll([]ast.Expression{e.Condition, e.Old, e.New})
		if err != nil {
			return nil, err
		}
		return mapNode("flag", mapNode("name", strNode(e.Name), "cond", nodes[0], "old", nodes[1], "new", nodes[2])), nil

	case *ast.PipeTarget:
		return nil, fmt.Errorf("pipe target outside an infix pipe step")
	}
	return nil, fmt.Errorf("%w %T", ErrUnknownNode, expr)
}

func floatNode(f float64) *yaml.Node {
	switch {
	case math.IsNaN(f):
		return scalarNode("!!float", ".nan")
	case math.IsInf(f, 1):
		return scalarNode("!!float", ".inf")
	case math.IsInf(f, -1):
		return scalarNode("!!float", "-.inf")
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return scalarNode("!!float", s)
}

func encodeConstructor(e *ast.ConstructorExpression) (*yaml.Node, error) {
	var key string
	for k, name := range ctorNames {
		if name == e.Name {
			key = k
		}
	}
	if key == "" {
		return nil, fmt.Errorf("%w: constructor %s", ErrUnknownNode, e.Name)
	}
	if e.Name == config.NothingCtorName {
		return mapNode(key, scalarNode("!!null", "~")), nil
	}
	if len(e.Arguments) != 1 {
		return nil, fmt.Errorf("constructor %s with %d arguments cannot be encoded", e.Name, len(e.Arguments))
	}
	payload, err := Encode(e.Arguments[0])
	if err != nil {
		return nil, err
	}
	return mapNode(key, payload), nil
}

func encodeMatch(e *ast.MatchExpression) (*yaml.Node, error) {
	on, err := Encode(e.Expression)
	if err != nil {
		return nil, err
	}
	arms := make([]*yaml.Node, len(e.Arms))
	for i, arm := range e.Arms {
		pat, err := EncodePattern(arm.Pattern)
		if err != nil {
			return nil, err
		}
		body, err := Encode(arm.Expression)
		if err != nil {
			return nil, err
		}
		arms[i] = mapNode("pattern", pat, "body", body)
	}
	return mapNode("match", mapNode("on", on, "arms", seqNode(arms))), nil
}

// EncodePattern converts a pattern into the YAML form read by DecodePattern.
func EncodePattern(p ast.Pattern) (*yaml.Node, error) {
	switch p := p.(type) {
	case *ast.WildcardPattern:
		return mapNode("var", strNode("_")), nil
	case *ast.IdentifierPattern:
		return mapNode("var", strNode(p.Value)), nil
	case *ast.LiteralPattern:
		return encodeLiteral(p.Value)
	case *ast.ConstructorPattern:
		var key string
		for k, name := range ctorNames {
			if name == p.Name {
				key = k
			}
		}
		if key == "" {
			return nil, fmt.Errorf("%w: constructor pattern %s", ErrUnknownNode, p.Name)
		}
		if len(p.Elements) == 0 {
			return mapNode(key, scalarNode("!!null", "~")), nil
		}
		inner, err := EncodePattern(p.Elements[0])
		if err != nil {
			return nil, err
		}
		return mapNode(key, inner), nil
	case *ast.TuplePattern:
		items := make([]*yaml.Node, len(p.Elements))
		for i, el := range p.Elements {
			n, err := EncodePattern(el)
			if err != nil {
				return nil, err
			}
			items[i] = n
		}
		return mapNode("tuple", seqNode(items)), nil
	}
	return nil, fmt.Errorf("%w %T", ErrUnknownNode, p)
}

func encodeLiteral(v interface{}) (*yaml.Node, error) {
	switch v := v.(type) {
	case nil:
		return scalarNode("!!null", "~"), nil
	case bool:
		return scalarNode("!!bool", strconv.FormatBool(v)), nil
	case float64:
		return floatNode(v), nil
	case string:
		return strNode(v), nil
	case interface{ String() string }:
		return scalarNode("!!int", v.String()), nil
	}
	return nil, fmt.Errorf("unsupported literal %T", v)
}

func encodePair(a, b ast.Expression) (*yaml.Node, *yaml.Node, error) {
	nodes, err := encodeAll([]ast.Expression{a, b})
	if err != nil {
		return nil, nil, err
	}
	return nodes[0], nodes[1], nil
}

func encodeAll(exprs []ast.Expression) ([]*yaml.Node, error) {
	nodes := make([]*yaml.Node, len(exprs))
	for i, expr := range exprs {
		n, err := Encode(expr)
		if err != nil {
			return nil, err
		}
		nodes[i] = n
	}
	return nodes, nil
}

func flowSeq(items []*yaml.Node) *yaml.Node {
	n := seqNode(items)
	n.Style = yaml.FlowStyle
	return n
}
