// Package translation models a hierarchical translation file: a tree of
// groups whose terminal values are translated strings.
package translation

import (
	"bytes"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind identifies which variant a Node holds.
type Kind int

const (
	// KindGroup is a mapping from keys to child nodes.
	KindGroup Kind = iota
	// KindLeaf is a translated string.
	KindLeaf
	// KindOther is any other JSON value (number, bool, null, array). It is kept
	// verbatim on output but never addressed by a key path.
	KindOther
)

// Node is one value of a translation tree.
type Node struct {
	kind     Kind
	value    string
	children *orderedmap.OrderedMap[string, *Node]
	raw      []byte
}

// NewGroup returns an empty group.
func NewGroup() *Node {
	return &Node{kind: KindGroup, children: orderedmap.New[string, *Node]()}
}

// NewLeaf returns a leaf holding s.
func NewLeaf(s string) *Node {
	return &Node{kind: KindLeaf, value: s}
}

func newOther(raw []byte) *Node {
	return &Node{kind: KindOther, raw: append([]byte(nil), raw...)}
}

// Kind reports the node variant.
func (n *Node) Kind() Kind { return n.kind }

// IsGroup reports whether n is a group.
func (n *Node) IsGroup() bool { return n != nil && n.kind == KindGroup }

// IsLeaf reports whether n is a string leaf.
func (n *Node) IsLeaf() bool { return n != nil && n.kind == KindLeaf }

// Value returns the string of a leaf, or "" for any other kind.
func (n *Node) Value() string { return n.value }

// Len returns the number of children of a group.
func (n *Node) Len() int {
	if !n.IsGroup() {
		return 0
	}
	return n.children.Len()
}

// Keys returns the child keys of a group in declaration order.
func (n *Node) Keys() []string {
	if !n.IsGroup() {
		return nil
	}
	keys := make([]string, 0, n.children.Len())
	for pair := n.children.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Get returns the child stored under key.
func (n *Node) Get(key string) (*Node, bool) {
	if !n.IsGroup() {
		return nil, false
	}
	return n.children.Get(key)
}

// Set stores child under key. An existing key keeps its position.
func (n *Node) Set(key string, child *Node) {
	if n.IsGroup() {
		n.children.Set(key, child)
	}
}

// Delete removes key from a group and reports whether it was present.
func (n *Node) Delete(key string) bool {
	if !n.IsGroup() {
		return false
	}
	_, ok := n.children.Delete(key)
	return ok
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	switch n.kind {
	case KindGroup:
		c := NewGroup()
		for pair := n.children.Oldest(); pair != nil; pair = pair.Next() {
			c.children.Set(pair.Key, pair.Value.Clone())
		}
		return c
	case KindLeaf:
		return NewLeaf(n.value)
	default:
		return newOther(n.raw)
	}
}

// Equal reports whether two trees are structurally identical, including the
// order of keys inside every group.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindLeaf:
		return a.value == b.value
	case KindOther:
		return bytes.Equal(a.raw, b.raw)
	}
	if a.children.Len() != b.children.Len() {
		return false
	}
	pb := b.children.Oldest()
	for pa := a.children.Oldest(); pa != nil; pa = pa.Next() {
		if pa.Key != pb.Key || !Equal(pa.Value, pb.Value) {
			return false
		}
		pb = pb.Next()
	}
	return true
}
