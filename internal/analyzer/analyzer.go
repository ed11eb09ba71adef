package analyzer

import (
	"strings"

	"github.com/jenian/i18nprune/internal/usage"
)

// Analyze compares the leaf paths of a translation file with the keys found in code
// paths: flattened leaf paths in file order
// used: normalized keys extracted from source files
// keep: keys or groups that must never be removed; they protect their descendants
// but are not counted as used
func Analyze(paths []string, used usage.KeySet, keep []string) Result {
	result := Result{
		Paths:         paths,
		Used:          used,
		EffectiveUsed: make(usage.KeySet),
		Unused:        []string{},
		Kept:          []string{},
	}

	keepSet := make(usage.KeySet, len(keep))
	for _, k := range keep {
		if k = strings.TrimSpace(k); k != "" {
			keepSet.Add(usage.Normalize(k))
		}
	}

	for _, path := range paths {
		switch {
		case IsCovered(path, used):
			result.EffectiveUsed.Add(path)
		case IsCovered(path, keepSet):
			result.EffectiveUsed.Add(path)
			result.Kept = append(result.Kept, path)
		default:
			result.Unused = append(result.Unused, path)
		}
	}

	return result
}

// IsCovered reports whether path or one of its ancestor prefixes is in keys.
// Ancestors are found by truncating at the last '.' until none is left.
func IsCovered(path string, keys usage.KeySet) bool {
	for {
		if keys.Has(path) {
			return true
		}
		i := strings.LastIndexByte(path, '.')
		if i < 0 {
			return false
		}
		path = path[:i]
	}
}
