package analyzer

import "github.com/jenian/i18nprune/internal/usage"

// Result contains the reconciliation of translation leaves against used keys
type Result struct {
	Paths         []string     // All leaf paths, in file order
	Used          usage.KeySet // Keys found in source files
	EffectiveUsed usage.KeySet // Leaf paths covered by a used key (itself or an ancestor)
	Unused        []string     // Leaf paths not covered, in file order
	Kept          []string     // Leaf paths spared only by the keep-list, in file order
}

// UnusedCount returns the number of leaves scheduled for removal
func (r Result) UnusedCount() int {
	return len(r.Unused)
}
