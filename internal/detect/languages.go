package detect

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// grammar names the tree-sitter grammar used for a config file
type grammar string

const (
	grammarJavaScript grammar = "javascript"
	grammarTypeScript grammar = "typescript"
)

var (
	languagesMu sync.RWMutex
	languages   = make(map[grammar]*sitter.Language)
)

// grammarFor picks the grammar from the config file extension
func grammarFor(filename string) grammar {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".ts", ".mts", ".cts":
		return grammarTypeScript
	default:
		return grammarJavaScript
	}
}

// getLanguage returns a language grammar, loading it if needed
func getLanguage(g grammar) (*sitter.Language, error) {
	languagesMu.RLock()
	if language, ok := languages[g]; ok {
		languagesMu.RUnlock()
		return language, nil
	}
	languagesMu.RUnlock()

	languagesMu.Lock()
	defer languagesMu.Unlock()

	// Double-check after acquiring write lock
	if language, ok := languages[g]; ok {
		return language, nil
	}

	language, err := loadLanguage(g)
	if err != nil {
		return nil, fmt.Errorf("failed to load language %s: %w", g, err)
	}
	languages[g] = language
	return language, nil
}

func loadLanguage(g grammar) (*sitter.Language, error) {
	switch g {
	case grammarTypeScript:
		langPtr := tree_sitter_typescript.LanguageTypescript()
		if langPtr == nil {
			return nil, fmt.Errorf("failed to load TypeScript language grammar")
		}
		return sitter.NewLanguage(langPtr), nil
	case grammarJavaScript:
		langPtr := tree_sitter_javascript.Language()
		if langPtr == nil {
			return nil, fmt.Errorf("failed to load JavaScript language grammar")
		}
		return sitter.NewLanguage(langPtr), nil
	default:
		return nil, fmt.Errorf("unsupported language: %s", g)
	}
}
