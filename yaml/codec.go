// Package yaml reads and writes indexes in YAML, for manuals that keep
// their table of contents in a hand-edited YAML file.
package yaml

import (
	"io"

	"github.com/fwojciec/docindex"
	yamlv3 "gopkg.in/yaml.v3"
)

// Ensure Codec implements docindex.Decoder and docindex.Encoder at compile time.
var (
	_ docindex.Decoder = (*Codec)(nil)
	_ docindex.Encoder = (*Codec)(nil)
)

// Codec decodes and encodes YAML indexes.
type Codec struct{}

// NewCodec creates a new Codec.
func NewCodec() *Codec {
	return &Codec{}
}

// Decode parses data into an Index. Mapping order is taken from the
// document, and duplicate keys are reported rather than merged.
func (c *Codec) Decode(data []byte) (*docindex.Index, error) {
	var doc yamlv3.Node
	if err := yamlv3.Unmarshal(data, &doc); err != nil {
		return nil, docindex.Errorf(docindex.EMALFORMED, "invalid YAML: %s", err)
	}
	if doc.Kind != yamlv3.DocumentNode || len(doc.Content) == 0 {
		return nil, docindex.Errorf(docindex.EMALFORMED, "index must be a YAML mapping")
	}

	root := resolve(doc.Content[0])
	if root.Kind != yamlv3.MappingNode {
		return nil, docindex.Errorf(docindex.EMALFORMED, "index must be a YAML mapping (line %d)", root.Line)
	}

	d := &decoder{expanding: make(map[*yamlv3.Node]bool)}
	v, err := d.convert(doc.Content[0])
	if err != nil {
		return nil, err
	}
	return docindex.Parse(v.(docindex.Object))
}

// MaxNodes bounds the number of nodes a document may expand to once
// aliases are followed.
const MaxNodes = 1 << 20

// decoder converts a YAML node tree, following aliases. An alias that
// refers back to a node being expanded is rejected, as is a document
// expanding past MaxNodes.
type decoder struct {
	expanding map[*yamlv3.Node]bool
	nodes     int
}

// convert turns a YAML node into the value types docindex.Parse expects.
func (d *decoder) convert(n *yamlv3.Node) (any, error) {
	if n.Kind == yamlv3.AliasNode {
		if n.Alias == nil {
			return nil, docindex.Errorf(docindex.EMALFORMED, "unknown alias (line %d)", n.Line)
		}
		if d.expanding[n.Alias] {
			return nil, docindex.Errorf(docindex.EMALFORMED, "recursive alias (line %d)", n.Line)
		}
		d.expanding[n.Alias] = true
		defer delete(d.expanding, n.Alias)
		return d.convert(n.Alias)
	}

	d.nodes++
	if d.nodes > MaxNodes {
		return nil, docindex.Errorf(docindex.EMALFORMED, "document expands to more than %d nodes (line %d)", MaxNodes, n.Line)
	}

	switch n.Kind {
	case yamlv3.MappingNode:
		obj := docindex.Object{}
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := resolve(n.Content[i])
			if k.Kind != yamlv3.ScalarNode {
				return nil, docindex.Errorf(docindex.EMALFORMED, "mapping key must be a scalar (line %d)", k.Line)
			}
			v, err := d.convert(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj = append(obj, docindex.Field{Key: k.Value, Value: v})
		}
		return obj, nil
	case yamlv3.SequenceNode:
		arr := []any{}
		for _, item := range n.Content {
			v, err := d.convert(item)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yamlv3.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, docindex.Errorf(docindex.EMALFORMED, "invalid scalar (line %d): %s", n.Line, err)
		}
		return v, nil
	}
	return nil, docindex.Errorf(docindex.EMALFORMED, "unsupported YAML node (line %d)", n.Line)
}

// resolve returns the node an alias refers to.
func resolve(n *yamlv3.Node) *yamlv3.Node {
	if n.Kind == yamlv3.AliasNode && n.Alias != nil {
		return n.Alias
	}
	return n
}

// Encode writes idx as a YAML document.
func (c *Codec) Encode(w io.Writer, idx *docindex.Index) error {
	doc := &yamlv3.Node{
		Kind:    yamlv3.DocumentNode,
		Content: []*yamlv3.Node{node(idx.Object())},
	}

	enc := yamlv3.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func node(v any) *yamlv3.Node {
	switch v := v.(type) {
	case docindex.Object:
		n := &yamlv3.Node{Kind: yamlv3.MappingNode, Tag: "!!map"}
		if len(v) == 0 {
			n.Style = yamlv3.FlowStyle
		}
		for _, f := range v {
			n.Content = append(n.Content, str(f.Key), node(f.Value))
		}
		return n
	case []any:
		n := &yamlv3.Node{Kind: yamlv3.SequenceNode, Tag: "!!seq", Style: yamlv3.FlowStyle}
		for _, item := range v {
			n.Content = append(n.Content, node(item))
		}
		return n
	case string:
		return str(v)
	}

	n := &yamlv3.Node{}
	_ = n.Encode(v)
	return n
}

func str(s string) *yamlv3.Node {
	return &yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: "!!str", Value: s}
}
