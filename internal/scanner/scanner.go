package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

// DefaultIncludeGlob selects the Vue single-file components and TypeScript sources to scan
const DefaultIncludeGlob = "**/*.{vue,ts,tsx}"

// Scanner handles file discovery and filtering
type Scanner struct {
	fs           afero.Fs
	excludeDirs  map[string]bool // Directory names to exclude at any depth (e.g., "node_modules")
	rootExcludes map[string]bool // Directory names excluded only directly below the scan root
	excludePaths []string        // Paths relative to the scan root to exclude (e.g., "src/legacy")
	includeGlobs []string
}

// NewScanner creates a new scanner with default exclusions. Build output
// directories are only skipped at the top of the scan, so a component folder
// named "build" deeper in the tree is still scanned.
func NewScanner(fs afero.Fs) *Scanner {
	return &Scanner{
		fs: fs,
		excludeDirs: map[string]bool{
			"node_modules": true,
			".git":         true,
		},
		rootExcludes: map[string]bool{
			"dist":     true,
			"build":    true,
			"coverage": true,
			".nuxt":    true,
			".output":  true,
			".cache":   true,
		},
		includeGlobs: []string{DefaultIncludeGlob},
	}
}

// SetIncludeGlobs sets the doublestar patterns a file must match, relative to the scan root.
// An empty list restores the default.
func (s *Scanner) SetIncludeGlobs(globs []string) error {
	if len(globs) == 0 {
		s.includeGlobs = []string{DefaultIncludeGlob}
		return nil
	}
	for _, g := range globs {
		if !doublestar.ValidatePattern(g) {
			return fmt.Errorf("invalid include pattern: %s", g)
		}
	}
	s.includeGlobs = globs
	return nil
}

// AddExcludeDirs adds additional directories to exclude from scanning
// Can be directory names (e.g., "generated") or paths (e.g., "src/legacy")
func (s *Scanner) AddExcludeDirs(dirs []string) {
	for _, dir := range dirs {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			continue
		}
		if strings.Contains(dir, "/") || strings.Contains(dir, "\\") {
			s.excludePaths = append(s.excludePaths, strings.TrimSuffix(filepath.ToSlash(dir), "/*"))
		} else {
			s.excludeDirs[dir] = true
		}
	}
}

// matchesGlob checks if a slash-separated relative path matches any of the patterns
func matchesGlob(rel string, globs []string) bool {
	for _, glob := range globs {
		if ok, _ := doublestar.Match(glob, rel); ok {
			return true
		}
	}
	return false
}

// isInIgnoredPath checks if a relative path is within an excluded folder
func (s *Scanner) isInIgnoredPath(rel string) bool {
	for _, p := range s.excludePaths {
		if rel == p || strings.HasPrefix(rel, p+"/") {
			return true
		}
	}
	return false
}

// Scan walks rootPath and returns the paths of the files matching the include
// patterns, sorted. A rootPath naming a regular file is returned as the only entry.
func (s *Scanner) Scan(rootPath string) ([]string, error) {
	info, err := s.fs.Stat(rootPath)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{rootPath}, nil
	}

	var files []string
	err = afero.Walk(s.fs, rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(rootPath, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if info.IsDir() {
			if path == rootPath {
				return nil
			}
			topLevel := !strings.Contains(rel, "/")
			if s.excludeDirs[info.Name()] || (topLevel && s.rootExcludes[rel]) || s.isInIgnoredPath(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if !matchesGlob(rel, s.includeGlobs) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
