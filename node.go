package docindex

import "iter"

// Kind distinguishes the two node variants.
type Kind int

// Node kinds.
const (
	KindLeaf Kind = iota
	KindSection
)

// String returns "leaf" or "section".
func (k Kind) String() string {
	if k == KindSection {
		return "section"
	}
	return "leaf"
}

// Node is an entry of a table of contents. A node is either a leaf, which
// stands for a single page, or a section, which groups further nodes.
// Nodes are created by Parse and must not be modified.
type Node struct {
	key      string
	title    string
	contents *Contents // nil for leaves
}

// Key returns the node's key within its parent mapping.
// Leaf keys are conventionally relative page paths (e.g. "intro/setup.wiki").
func (n *Node) Key() string { return n.key }

// Title returns the display title.
func (n *Node) Title() string { return n.title }

// IsLeaf reports whether the node has no contents.
func (n *Node) IsLeaf() bool { return n.contents == nil }

// IsSection reports whether the node has contents, possibly empty.
func (n *Node) IsSection() bool { return n.contents != nil }

// Kind returns the node variant.
func (n *Node) Kind() Kind {
	if n.IsSection() {
		return KindSection
	}
	return KindLeaf
}

// Contents returns the children of a section, or nil for a leaf.
func (n *Node) Contents() *Contents { return n.contents }

// Contents is an ordered mapping from key to node. Iteration follows
// insertion order, which is the order authors want menus rendered in.
// A nil *Contents behaves as an empty mapping.
type Contents struct {
	keys  []string
	nodes map[string]*Node
}

func newContents() *Contents {
	return &Contents{nodes: make(map[string]*Node)}
}

// add appends n. Returns false if a node with the same key exists.
func (c *Contents) add(n *Node) bool {
	if _, ok := c.nodes[n.key]; ok {
		return false
	}
	c.keys = append(c.keys, n.key)
	c.nodes[n.key] = n
	return true
}

// Len returns the number of direct children.
func (c *Contents) Len() int {
	if c == nil {
		return 0
	}
	return len(c.keys)
}

// Keys returns a copy of the keys in insertion order.
func (c *Contents) Keys() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.keys...)
}

// Get returns the direct child with the given key.
func (c *Contents) Get(key string) (*Node, bool) {
	if c == nil {
		return nil, false
	}
	n, ok := c.nodes[key]
	return n, ok
}

// All iterates over direct children in insertion order.
func (c *Contents) All() iter.Seq2[string, *Node] {
	return func(yield func(string, *Node) bool) {
		if c == nil {
			return
		}
		for _, key := range c.keys {
			if !yield(key, c.nodes[key]) {
				return
			}
		}
	}
}
