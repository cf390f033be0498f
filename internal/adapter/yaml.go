package adapter

import (
	"encoding/json"
	"strconv"

	"gopkg.in/yaml.v3"

	"kanon/internal/canon"
)

// ParseYAML decodes a YAML document into a canonical value. The yaml.Node
// tree is walked directly: mapping order is preserved, duplicate keys are
// rejected, and scalar tags decide the canonical type.
func ParseYAML(raw []byte) (canon.Value, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return nil, &canon.Error{Code: canon.ErrInput, Msg: "YAML parse error: " + err.Error()}
	}

	// Empty document.
	if root.Kind == 0 || len(root.Content) == 0 {
		return canon.Null{}, nil
	}
	return yamlToValue(root.Content[0], nil, 0)
}

func yamlToValue(n *yaml.Node, path []string, depth int) (canon.Value, error) {
	switch n.Kind {

	case yaml.AliasNode:
		// Anchored content is inlined at each alias site. Recursive
		// aliases are caught by the depth guard below.
		return yamlToValue(n.Alias, path, depth+1)

	case yaml.ScalarNode:
		return yamlScalar(n, path)

	case yaml.MappingNode:
		if depth+1 > canon.MaxDepth {
			return nil, errAt(canon.ErrDepth, path, "nesting exceeds depth limit")
		}
		entries := make([]canon.Entry, 0, len(n.Content)/2)
		seen := make(map[string]bool, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			kNode, vNode := n.Content[i], n.Content[i+1]
			if kNode.Kind != yaml.ScalarNode {
				return nil, errAt(canon.ErrInput, path, "non-scalar mapping key")
			}
			key := kNode.Value
			if seen[key] {
				return nil, errAt(canon.ErrDupKey, append(path, key), "duplicate key in YAML mapping")
			}
			seen[key] = true

			val, err := yamlToValue(vNode, append(path, key), depth+1)
			if err != nil {
				return nil, err
			}
			entries = append(entries, canon.Entry{Key: key, Value: val})
		}
		return &canon.Object{Entries: entries}, nil

	case yaml.SequenceNode:
		if depth+1 > canon.MaxDepth {
			return nil, errAt(canon.ErrDepth, path, "nesting exceeds depth limit")
		}
		arr := make(canon.Array, 0, len(n.Content))
		for i, item := range n.Content {
			val, err := yamlToValue(item, append(path, strconv.Itoa(i)), depth+1)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		return arr, nil

	default:
		return nil, errAt(canon.ErrInput, path, "unsupported YAML node kind")
	}
}

func yamlScalar(n *yaml.Node, path []string) (canon.Value, error) {
	switch n.Tag {

	case "!!null":
		return canon.Null{}, nil

	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return nil, errAt(canon.ErrInput, path, "bad YAML boolean "+n.Value)
		}
		return canon.Bool(b), nil

	case "!!int":
		// Base 0 handles YAML's 0x/0o notations; re-render as decimal
		// so the number token is valid JSON.
		if i, err := strconv.ParseInt(n.Value, 0, 64); err == nil {
			return canon.Number(strconv.FormatInt(i, 10)), nil
		}
		if u, err := strconv.ParseUint(n.Value, 0, 64); err == nil {
			return canon.Number(strconv.FormatUint(u, 10)), nil
		}
		return nil, errAt(canon.ErrInput, path, "YAML integer out of range: "+n.Value)

	case "!!float":
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return nil, errAt(canon.ErrInput, path, "bad YAML float "+n.Value)
		}
		b, err := json.Marshal(f)
		if err != nil {
			return nil, errAt(canon.ErrInput, path, "non-finite YAML float "+n.Value)
		}
		return canon.Number(b), nil

	case "!!timestamp":
		return canon.String(n.Value), nil

	default:
		// !!str and any unresolved custom tag.
		return canon.String(n.Value), nil
	}
}
