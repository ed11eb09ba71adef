package detect

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// IncludeQuery finds every object property. Keys are filtered in Go, so quoted
// and bare "include" keys are treated alike.
const IncludeQuery = `(pair key: (_) @key value: (_) @value)`

// viteConfigNames are probed in order
var viteConfigNames = []string{
	"vite.config.ts",
	"vite.config.mts",
	"vite.config.js",
	"vite.config.mjs",
	"vite.config.cjs",
}

var (
	i18nPluginReference = regexp.MustCompile(`(?i)@intlify/unplugin-vue-i18n|VueI18nPlugin`)
	i18nCallee          = regexp.MustCompile(`(?i)i18n`)
	pathJoinCallee      = regexp.MustCompile(`(?:^|\.)(?:resolve|join)$`)
)

// IncludeFromViteConfig parses a Vite config and returns the absolute path of
// the i18n plugin's include option. viteDir anchors relative paths. An include
// inside a call to the i18n plugin wins over other include properties (for
// example optimizeDeps.include).
func IncludeFromViteConfig(content []byte, filename, viteDir string) (string, bool, error) {
	language, err := getLanguage(grammarFor(filename))
	if err != nil {
		return "", false, err
	}

	// Tree-sitter parsers are not safe for concurrent use; one per call
	tsParser := sitter.NewParser()
	defer tsParser.Close()
	if err := tsParser.SetLanguage(language); err != nil {
		return "", false, fmt.Errorf("failed to set language for %s: %w", filename, err)
	}

	tree := tsParser.Parse(content, nil)
	if tree == nil {
		return "", false, fmt.Errorf("failed to parse %s", filename)
	}
	defer tree.Close()

	value, err := findInclude(tree.RootNode(), language, content)
	if err != nil || value == nil {
		return "", false, err
	}

	p, ok := resolveInclude(value, content, viteDir)
	return p, ok, nil
}

func findInclude(root *sitter.Node, language *sitter.Language, content []byte) (*sitter.Node, error) {
	query, queryErr := sitter.NewQuery(language, IncludeQuery)
	if queryErr != nil {
		return nil, fmt.Errorf("invalid include query: %v", queryErr)
	}
	defer query.Close()

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	matches := cursor.Matches(query, root, content)
	captureNames := query.CaptureNames()

	var first *sitter.Node
	for {
		match := matches.Next()
		if match == nil {
			break
		}

		var key string
		var value *sitter.Node
		for _, capture := range match.Captures {
			if int(capture.Index) >= len(captureNames) {
				continue
			}
			node := capture.Node
			switch captureNames[capture.Index] {
			case "key":
				key = unquote(nodeText(&node, content))
			case "value":
				value = &node
			}
		}
		if key != "include" || value == nil {
			continue
		}
		if insideI18nPlugin(value, content) {
			return value, nil
		}
		if first == nil {
			first = value
		}
	}
	return first, nil
}

// insideI18nPlugin reports whether n is an argument of a call whose callee mentions i18n
func insideI18nPlugin(n *sitter.Node, content []byte) bool {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Kind() != "call_expression" {
			continue
		}
		if callee := p.ChildByFieldName("function"); callee != nil && i18nCallee.MatchString(nodeText(callee, content)) {
			return true
		}
	}
	return false
}

// resolveInclude evaluates the few include expression shapes seen in practice:
// a string, an array of strings, path.resolve/join(...) and
// fileURLToPath(new URL('...', import.meta.url)).
func resolveInclude(n *sitter.Node, content []byte, viteDir string) (string, bool) {
	switch n.Kind() {
	case "string":
		return anchor(viteDir, unquote(nodeText(n, content))), true

	case "template_string":
		text := unquote(nodeText(n, content))
		if strings.Contains(text, "${") {
			return "", false
		}
		return anchor(viteDir, text), true

	case "array":
		for i := uint(0); i < n.NamedChildCount(); i++ {
			if p, ok := resolveInclude(n.NamedChild(i), content, viteDir); ok {
				return p, true
			}
		}
		return "", false

	case "call_expression":
		args := n.ChildByFieldName("arguments")
		if args == nil {
			return "", false
		}
		callee := n.ChildByFieldName("function")
		if callee != nil && pathJoinCallee.MatchString(nodeText(callee, content)) {
			return joinArguments(args, content, viteDir)
		}
		return firstArgument(args, content, viteDir)

	case "new_expression":
		args := n.ChildByFieldName("arguments")
		if args == nil {
			return "", false
		}
		return firstArgument(args, content, viteDir)

	case "parenthesized_expression", "as_expression", "satisfies_expression":
		if n.NamedChildCount() > 0 {
			return resolveInclude(n.NamedChild(0), content, viteDir)
		}
	}
	return "", false
}

// joinArguments mimics path.resolve: string arguments are joined onto viteDir,
// an absolute one restarts the path. Non-string arguments such as __dirname are skipped.
func joinArguments(args *sitter.Node, content []byte, viteDir string) (string, bool) {
	result := viteDir
	found := false
	for i := uint(0); i < args.NamedChildCount(); i++ {
		arg := args.NamedChild(i)
		if arg.Kind() != "string" {
			continue
		}
		result = anchor(result, unquote(nodeText(arg, content)))
		found = true
	}
	return result, found
}

func firstArgument(args *sitter.Node, content []byte, viteDir string) (string, bool) {
	for i := uint(0); i < args.NamedChildCount(); i++ {
		if p, ok := resolveInclude(args.NamedChild(i), content, viteDir); ok {
			return p, true
		}
	}
	return "", false
}

func anchor(base, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

func nodeText(n *sitter.Node, content []byte) string {
	return string(content[n.StartByte():n.EndByte()])
}

// unquote strips one pair of matching quotes
func unquote(s string) string {
	if len(s) >= 2 {
		switch s[0] {
		case '"', '\'', '`':
			if s[len(s)-1] == s[0] {
				return s[1 : len(s)-1]
			}
		}
	}
	return s
}

// BaseDirFromInclude returns the directory holding the translation files an
// include pattern selects: the directory before the first glob metacharacter,
// the parent of a file path, or the path itself.
func BaseDirFromInclude(include string) string {
	if i := strings.IndexAny(include, "*?["); i >= 0 {
		return filepath.Dir(include[:i])
	}
	if filepath.Ext(include) != "" {
		return filepath.Dir(include)
	}
	return include
}
