package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/reoring/treeconv"
)

// DecodeYAMLTree parses the first YAML document in data into a tree node.
// Mapping key order is preserved; integers and floats decode as json.Number
// so they carry the same int/float distinction as JSON input.
func DecodeYAMLTree(data []byte) (any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	n := &root
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil, nil
		}
		n = n.Content[0]
	}
	if n.Kind == 0 {
		// empty document
		return nil, nil
	}
	return yamlToTree(n)
}

// DecodeYAMLTrees parses every document in a multi-document YAML stream.
func DecodeYAMLTrees(data []byte) ([]any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var out []any
	for {
		var root yaml.Node
		if err := dec.Decode(&root); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		n := &root
		if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
			n = n.Content[0]
		}
		v, err := yamlToTree(n)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// EncodeYAMLTree renders a tree node as a YAML document, keeping
// *treeconv.Map key order.
func EncodeYAMLTree(node any) ([]byte, error) {
	y, err := yamlFromTree(node)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(y)
}

func yamlToTree(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return yamlToTree(n.Alias)
	case yaml.MappingNode:
		m := treeconv.NewMap()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("codec: non-scalar YAML mapping key at line %d", k.Line)
			}
			v, err := yamlToTree(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Set(k.Value, v)
		}
		return m, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := yamlToTree(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.ScalarNode:
		return yamlScalar(n)
	}
	return nil, fmt.Errorf("codec: unsupported YAML node kind %d at line %d", n.Kind, n.Line)
}

func yamlScalar(n *yaml.Node) (any, error) {
	switch n.Tag {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return b, nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return nil, err
		}
		return json.Number(strconv.FormatInt(i, 10)), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		s := strconv.FormatFloat(f, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			// keep the float marker so 1.0 stays a float node
			s += ".0"
		}
		return json.Number(s), nil
	default:
		return n.Value, nil
	}
}

func yamlFromTree(node any) (*yaml.Node, error) {
	switch v := node.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v)}, nil
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}, nil
	case int64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(v, 10)}, nil
	case float64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(v, 'g', -1, 64)}, nil
	case json.Number:
		tag := "!!float"
		if !strings.ContainsAny(v.String(), ".eE") {
			tag = "!!int"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.String()}, nil
	case []any:
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, e := range v {
			c, err := yamlFromTree(e)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, c)
		}
		return seq, nil
	case *treeconv.Map:
		mn := &yaml.Node{Kind: yaml.MappingNode}
		var walkErr error
		v.Range(func(k string, val any) bool {
			c, err := yamlFromTree(val)
			if err != nil {
				walkErr = err
				return false
			}
			mn.Content = append(mn.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, c)
			return true
		})
		if walkErr != nil {
			return nil, walkErr
		}
		return mn, nil
	}
	return nil, fmt.Errorf("codec: unsupported tree node %T", node)
}
