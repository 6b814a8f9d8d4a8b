package serialize

import (
	"bytes"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// StripNulls returns a copy of v with every nil-valued entry removed, at any
// nesting depth. Containers are the closed set produced by decoding JSON or
// an export document: map[string]interface{}, []interface{}, scalar.
func StripNulls(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			if val == nil {
				continue
			}
			out[k] = StripNulls(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, 0, len(t))
		for _, val := range t {
			if val == nil {
				continue
			}
			out = append(out, StripNulls(val))
		}
		return out
	default:
		return v
	}
}

// yamlNode builds a yaml.Node tree with mapping keys sorted alphabetically.
// Sequence order is left untouched.
func yamlNode(v interface{}) (*yaml.Node, error) {
	switch t := v.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range keys {
			vn, err := yamlNode(t[k])
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, vn)
		}
		return n, nil
	case []interface{}:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range t {
			vn, err := yamlNode(item)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, vn)
		}
		return n, nil
	default:
		n := &yaml.Node{}
		if err := n.Encode(v); err != nil {
			return nil, fmt.Errorf("encoding scalar %v: %w", v, err)
		}
		return n, nil
	}
}

// marshalYAML renders v as YAML with null entries stripped and mapping keys
// sorted, so repeated exports of the same object diff cleanly.
func marshalYAML(v interface{}) ([]byte, error) {
	node, err := yamlNode(StripNulls(v))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
