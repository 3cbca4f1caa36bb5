// Package yml provides read helpers over yaml.v3 nodes for documents whose
// fields change shape (scalar, sequence or mapping), such as package
// manifests. JSON documents are valid YAML, so the same helpers read both.
package yml

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type (
	Node yaml.Node
)

// Parse decodes data into a node, unwrapping the document node.
func Parse(data []byte) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	switch {
	case doc.Kind == 0, doc.Kind == yaml.DocumentNode && len(doc.Content) == 0:
		return &Node{Kind: yaml.MappingNode, Tag: "!!map"}, nil
	case doc.Kind == yaml.DocumentNode:
		return (*Node)(doc.Content[0]), nil
	}
	return (*Node)(&doc), nil
}

// Lookup returns the value of key in a mapping node or nil.
func (n *Node) Lookup(key string) *Node {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return (*Node)(n.Content[i+1])
		}
	}
	return nil
}

// IsMap reports whether n is a mapping.
func (n *Node) IsMap() bool {
	return n != nil && n.Kind == yaml.MappingNode
}

// IsSequence reports whether n is a sequence.
func (n *Node) IsSequence() bool {
	return n != nil && n.Kind == yaml.SequenceNode
}

// String returns scalar value, empty for other kinds.
func (n *Node) String() string {
	if n == nil || n.Kind != yaml.ScalarNode {
		return ""
	}
	return n.Value
}

// Strings returns a scalar as a single element slice or the scalar items of a sequence.
func (n *Node) Strings() ([]string, error) {
	if n == nil {
		return nil, nil
	}
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return nil, nil
		}
		return []string{n.Value}, nil
	case yaml.SequenceNode:
		ret := make([]string, 0, len(n.Content))
		for i, item := range n.Content {
			if item.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("item %d: expected string, but had %v", i, kindName(item.Kind))
			}
			ret = append(ret, item.Value)
		}
		return ret, nil
	default:
		return nil, fmt.Errorf("expected string or list, but had %v", kindName(n.Kind))
	}
}

// Pairs calls callback for every scalar key/value pair of a mapping, in document order.
func (n *Node) Pairs(callback func(key string, node *Node) error) error {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if err := callback(n.Content[i].Value, (*Node)(n.Content[i+1])); err != nil {
			return err
		}
	}
	return nil
}

// StringMap returns a mapping of scalars; non scalar values are skipped.
func (n *Node) StringMap() map[string]string {
	if !n.IsMap() {
		return nil
	}
	ret := make(map[string]string, len(n.Content)/2)
	_ = n.Pairs(func(key string, node *Node) error {
		if node.Kind == yaml.ScalarNode {
			ret[key] = node.Value
		}
		return nil
	})
	return ret
}

func kindName(kind yaml.Kind) string {
	switch kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "list"
	case yaml.MappingNode:
		return "map"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "unknown"
}
