// Package detect guesses the source and translation paths of a Vue project
// from its Vite config and from conventional directory names.
package detect

import (
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/jenian/i18nprune/internal/scanner"
)

const (
	ReasonNothing            = "Could not detect Vite i18n include or common directories."
	ReasonMissingSource      = "Detected translations directory but could not detect source directory."
	ReasonMissingTranslation = "Detected source directory but could not detect translations directory."
)

var (
	srcCandidates          = []string{"src", "app", "client"}
	translationsCandidates = []string{"src/locales", "src/i18n", "src/translations", "locales", "i18n", "translations"}
)

// Detected holds the paths found in a project. Reason is set when either path is missing.
type Detected struct {
	SrcPath          string
	TranslationsPath string
	Reason           string
}

// Detect inspects cwd. The Vite config takes precedence for the translations
// directory; conventional directories fill whatever is still missing.
func Detect(fs afero.Fs, cwd string) Detected {
	var d Detected
	d.TranslationsPath = fromViteConfig(fs, cwd)

	src, translations := commonPaths(fs, cwd)
	d.SrcPath = src
	if d.TranslationsPath == "" {
		d.TranslationsPath = translations
	}

	switch {
	case d.SrcPath == "" && d.TranslationsPath == "":
		d.Reason = ReasonNothing
	case d.SrcPath == "":
		d.Reason = ReasonMissingSource
	case d.TranslationsPath == "":
		d.Reason = ReasonMissingTranslation
	}
	return d
}

func fromViteConfig(fs afero.Fs, cwd string) string {
	for _, name := range viteConfigNames {
		full := filepath.Join(cwd, name)
		content, err := afero.ReadFile(fs, full)
		if err != nil {
			continue
		}
		if !i18nPluginReference.Match(content) {
			continue
		}

		include, ok, err := IncludeFromViteConfig(content, name, filepath.Dir(full))
		if err != nil {
			slog.Debug("failed to read vite config", "path", full, "error", err)
			continue
		}
		if ok {
			return BaseDirFromInclude(include)
		}
	}
	return ""
}

func commonPaths(fs afero.Fs, cwd string) (src, translations string) {
	for _, c := range srcCandidates {
		p := filepath.Join(cwd, c)
		if isDir, _ := afero.IsDir(fs, p); isDir {
			src = p
			break
		}
	}

	for _, c := range translationsCandidates {
		p := filepath.Join(cwd, c)
		if isDir, _ := afero.IsDir(fs, p); !isDir {
			continue
		}
		if hasJSON(fs, p) {
			translations = p
			break
		}
	}
	return src, translations
}

func hasJSON(fs afero.Fs, dir string) bool {
	s := scanner.NewScanner(fs)
	if err := s.SetIncludeGlobs([]string{"**/*.json"}); err != nil {
		return false
	}
	files, err := s.Scan(dir)
	return err == nil && len(files) > 0
}
