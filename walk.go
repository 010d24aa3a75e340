package docindex

import (
	"iter"
	"strings"
)

// Entry is a node visited by a traversal, together with its position in
// the tree.
type Entry struct {
	// Path is the slash-join of the keys from the language root to the node.
	Path string

	// Parent is the path of the enclosing section, empty at the top level.
	Parent string

	// Depth is 0 for top-level entries.
	Depth int

	// Position is the index of the node among its siblings.
	Position int

	Node *Node
}

// Entries traverses the tree of a language depth-first in pre-order,
// following insertion order at every level. Each call returns an
// independent sequence. An undeclared language yields nothing.
func (idx *Index) Entries(lang string) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		l, ok := idx.Language(lang)
		if !ok {
			return
		}
		walk(l.contents, "", 0, yield)
	}
}

func walk(c *Contents, parent string, depth int, yield func(Entry) bool) bool {
	for i, key := range c.keys {
		n := c.nodes[key]
		e := Entry{
			Path:     joinPath(parent, key),
			Parent:   parent,
			Depth:    depth,
			Position: i,
			Node:     n,
		}
		if !yield(e) {
			return false
		}
		if n.IsSection() && !walk(n.contents, e.Path, depth+1, yield) {
			return false
		}
	}
	return true
}

// Walk yields (path, node) pairs in the order of Entries.
func (idx *Index) Walk(lang string) iter.Seq2[string, *Node] {
	return func(yield func(string, *Node) bool) {
		for e := range idx.Entries(lang) {
			if !yield(e.Path, e.Node) {
				return
			}
		}
	}
}

// Lookup resolves a path produced by Walk. It returns false if the
// language is not declared or nothing lives at path; there is no partial
// or fuzzy matching.
func (idx *Index) Lookup(lang, path string) (*Node, bool) {
	l, ok := idx.Language(lang)
	if !ok || path == "" {
		return nil, false
	}
	return lookup(l.contents, path)
}

// lookup descends through c. Keys may themselves contain slashes, so each
// child whose key is a slash-bounded prefix of path is tried in turn.
func lookup(c *Contents, path string) (*Node, bool) {
	for key, n := range c.All() {
		if path == key {
			return n, true
		}
		if n.IsSection() && strings.HasPrefix(path, key+"/") {
			if found, ok := lookup(n.contents, path[len(key)+1:]); ok {
				return found, true
			}
		}
	}
	return nil, false
}
