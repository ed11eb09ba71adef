package translation

import "strings"

type frame struct {
	parent *Node
	key    string
}

// RemoveLeaves returns a deep copy of root without the leaves at the given
// dotted paths. Groups emptied by a removal are deleted up to the root. Paths
// that do not resolve to an existing leaf are ignored. root is not modified.
func RemoveLeaves(root *Node, paths []string) *Node {
	out := root.Clone()
	for _, path := range paths {
		removeLeaf(out, path)
	}
	return out
}

func removeLeaf(root *Node, path string) {
	segments := strings.Split(path, ".")
	stack := make([]frame, 0, len(segments))

	cur := root
	for _, seg := range segments[:len(segments)-1] {
		next, ok := cur.Get(seg)
		if !ok || !next.IsGroup() {
			return
		}
		stack = append(stack, frame{parent: cur, key: seg})
		cur = next
	}

	last := segments[len(segments)-1]
	if leaf, ok := cur.Get(last); !ok || !leaf.IsLeaf() {
		return
	}
	cur.Delete(last)

	for len(stack) > 0 && cur.Len() == 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		top.parent.Delete(top.key)
		cur = top.parent
	}
}

// PruneEmpty deletes, depth first, every group under n that is empty or
// becomes empty once its own empty descendants are gone. n itself is kept even
// when it ends up empty. It reports whether anything was removed.
func PruneEmpty(n *Node) bool {
	if !n.IsGroup() {
		return false
	}
	changed := false
	for _, key := range n.Keys() {
		child, _ := n.Get(key)
		if !child.IsGroup() {
			continue
		}
		if PruneEmpty(child) {
			changed = true
		}
		if child.Len() == 0 {
			n.Delete(key)
			changed = true
		}
	}
	return changed
}
