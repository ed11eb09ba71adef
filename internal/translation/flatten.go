package translation

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Table maps dotted key paths to leaf strings, in depth-first declaration order.
type Table = orderedmap.OrderedMap[string, string]

// Flatten returns every string leaf under n keyed by its dotted path. Segments
// are joined with "." without escaping. Values that are neither strings nor
// groups are skipped.
func Flatten(n *Node, prefix string) *Table {
	table := orderedmap.New[string, string]()
	flattenInto(table, n, prefix)
	return table
}

func flattenInto(table *Table, n *Node, prefix string) {
	if !n.IsGroup() {
		return
	}
	for pair := n.children.Oldest(); pair != nil; pair = pair.Next() {
		key := pair.Key
		if prefix != "" {
			key = prefix + "." + pair.Key
		}
		switch pair.Value.kind {
		case KindLeaf:
			table.Set(key, pair.Value.value)
		case KindGroup:
			flattenInto(table, pair.Value, key)
		}
	}
}

// Paths returns the keys of a table in order.
func Paths(table *Table) []string {
	paths := make([]string, 0, table.Len())
	for pair := table.Oldest(); pair != nil; pair = pair.Next() {
		paths = append(paths, pair.Key)
	}
	return paths
}

// Inflate rebuilds a tree from a flattened table by splitting each path on ".".
func Inflate(table *Table) *Node {
	root := NewGroup()
	for pair := table.Oldest(); pair != nil; pair = pair.Next() {
		segments := strings.Split(pair.Key, ".")
		cur := root
		for _, seg := range segments[:len(segments)-1] {
			next, ok := cur.Get(seg)
			if !ok || !next.IsGroup() {
				next = NewGroup()
				cur.Set(seg, next)
			}
			cur = next
		}
		cur.Set(segments[len(segments)-1], NewLeaf(pair.Value))
	}
	return root
}
