package usage

import "regexp"

// bracketAccess matches ['x'], ["x"] and [`x`] member access.
var bracketAccess = regexp.MustCompile("\\[\\s*(['\"`])([^'\"`\\]]+)['\"`]\\s*\\]")

// Normalize rewrites bracket member access inside a key into dot notation, so
// parent["child"]['leaf'] becomes parent.child.leaf. Already dotted keys are
// returned unchanged.
func Normalize(key string) string {
	return bracketAccess.ReplaceAllString(key, ".$2")
}
