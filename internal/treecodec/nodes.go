package treecodec

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// resolve unwraps documents and aliases.
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch n.Kind {
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return nil
			}
			n = n.Content[0]
		case yaml.AliasNode:
			n = n.Alias
		default:
			return n
		}
	}
	return nil
}

func errorAt(n *yaml.Node, msg string) error {
	if n == nil {
		return fmt.Errorf("%s", msg)
	}
	return fmt.Errorf("line %d, column %d: %s", n.Line, n.Column, msg)
}

func singleKey(n *yaml.Node) (string, *yaml.Node, error) {
	if len(n.Content) != 2 {
		return "", nil, errorAt(n, fmt.Sprintf("expected exactly one key, found %d", len(n.Content)/2))
	}
	return n.Content[0].Value, n.Content[1], nil
}

// fieldsOf reads a mapping into a lookup table and checks that every
// required key is present.
func fieldsOf(n *yaml.Node, required ...string) (map[string]*yaml.Node, error) {
	n = resolve(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil, errorAt(n, "expected a mapping")
	}
	fields := make(map[string]*yaml.Node, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		fields[n.Content[i].Value] = n.Content[i+1]
	}
	for _, key := range required {
		if _, ok := fields[key]; !ok {
			return nil, errorAt(n, fmt.Sprintf("missing %q", key))
		}
	}
	return fields, nil
}

func sequence(n *yaml.Node) ([]*yaml.Node, error) {
	n = resolve(n)
	if n == nil {
		return nil, nil
	}
	if n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null" {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, errorAt(n, "expected a sequence")
	}
	return n.Content, nil
}

func scalar(n *yaml.Node) (string, error) {
	n = resolve(n)
	if n == nil || n.Kind != yaml.ScalarNode {
		return "", errorAt(n, "expected a scalar")
	}
	return n.Value, nil
}

func scalarList(n *yaml.Node) ([]string, error) {
	items, err := sequence(n)
	if err != nil {
		return nil, err
	}
	result := make([]string, len(items))
	for i, item := range items {
		if result[i], err = scalar(item); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func strNode(s string) *yaml.Node {
	return scalarNode("!!str", s)
}

// mapNode builds a mapping from alternating keys and values.
func mapNode(pairs ...interface{}) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Content = append(m.Content, strNode(pairs[i].(string)), pairs[i+1].(*yaml.Node))
	}
	return m
}

func seqNode(items []*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: items}
}
