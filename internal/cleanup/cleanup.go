// Package cleanup removes translation keys that no source file references.
//
// Run validates its inputs, scans the source tree, reconciles the result
// against the flattened translation file and, unless DryRun is set, writes
// back a pruned copy of the file. The parsed tree is never modified in place.
package cleanup

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/afero"

	"github.com/jenian/i18nprune/internal/analyzer"
	"github.com/jenian/i18nprune/internal/scanner"
	"github.com/jenian/i18nprune/internal/translation"
	"github.com/jenian/i18nprune/internal/usage"
)

// BackupSuffix is appended to the translation file path to name its backup.
const BackupSuffix = ".backup"

// Options configures a cleanup run.
type Options struct {
	TranslationFile string
	SrcPath         string
	Backup          bool
	DryRun          bool
	// Verbose raises progress messages from DEBUG to INFO.
	Verbose bool

	Include     []string // source globs relative to SrcPath, default scanner.DefaultIncludeGlob
	ExcludeDirs []string // directory names or relative paths skipped while scanning
	Keep        []string // keys or groups never removed
	Workers     int

	FS     afero.Fs     // default: the OS file system
	Logger *slog.Logger // default: slog.Default()
}

// DefaultOptions returns options with backups enabled.
func DefaultOptions() Options {
	return Options{Backup: true}
}

// Result describes the outcome for one translation file.
type Result struct {
	TranslationFile    string       `json:"translationFile"`
	TotalKeys          int          `json:"totalKeys"`
	UsedKeys           int          `json:"usedKeys"`
	UsedKeysSet        usage.KeySet `json:"usedKeysSet"`
	UnusedKeys         int          `json:"unusedKeys"`
	UnusedTranslations []string     `json:"unusedTranslations"`
	KeptKeys           []string     `json:"keptKeys"`
	FilesScanned       int          `json:"filesScanned"`
	Cleaned            bool         `json:"cleaned"`
	BackupPath         string       `json:"backupPath,omitempty"`
}

// Run performs a cleanup of opts.TranslationFile against the sources under opts.SrcPath.
func Run(ctx context.Context, opts Options) (*Result, error) {
	fs := opts.FS
	if fs == nil {
		fs = afero.NewOsFs()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	progress := slog.LevelDebug
	if opts.Verbose {
		progress = slog.LevelInfo
	}

	if err := mustExist(fs, opts.TranslationFile, "Translation file"); err != nil {
		return nil, err
	}
	if err := mustExist(fs, opts.SrcPath, "Source path"); err != nil {
		return nil, err
	}

	original, err := afero.ReadFile(fs, opts.TranslationFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", opts.TranslationFile, err)
	}
	root, err := translation.Parse(original)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", opts.TranslationFile, err)
	}
	paths := translation.Paths(translation.Flatten(root, ""))

	fileScanner := scanner.NewScanner(fs)
	if err := fileScanner.SetIncludeGlobs(opts.Include); err != nil {
		return nil, err
	}
	fileScanner.AddExcludeDirs(opts.ExcludeDirs)
	files, err := fileScanner.Scan(opts.SrcPath)
	if err != nil {
		return nil, fmt.Errorf("failed to list source files: %w", err)
	}
	logger.Log(ctx, progress, "scanning source files", "path", opts.SrcPath, "files", len(files))

	keyScanner := usage.NewScanner(fs)
	keyScanner.SetWorkers(opts.Workers)
	used, err := keyScanner.ScanFiles(ctx, files)
	if err != nil {
		return nil, err
	}

	rec := analyzer.Analyze(paths, used, opts.Keep)
	result := &Result{
		TranslationFile:    opts.TranslationFile,
		TotalKeys:          len(paths),
		UsedKeys:           len(used),
		UsedKeysSet:        used,
		UnusedKeys:         rec.UnusedCount(),
		UnusedTranslations: rec.Unused,
		KeptKeys:           rec.Kept,
		FilesScanned:       len(files),
	}
	logger.Log(ctx, progress, "reconciled translation keys",
		"file", opts.TranslationFile, "total", result.TotalKeys, "used", result.UsedKeys,
		"unused", result.UnusedKeys, "kept", len(result.KeptKeys))

	if opts.DryRun {
		return result, nil
	}

	var updated *translation.Node
	if len(rec.Unused) > 0 {
		updated = translation.RemoveLeaves(root, rec.Unused)
		translation.PruneEmpty(updated)
	} else {
		updated = root.Clone()
		if !translation.PruneEmpty(updated) || translation.Equal(root, updated) {
			return result, nil
		}
		logger.Log(ctx, progress, "removing empty groups", "file", opts.TranslationFile)
	}

	out, err := translation.Marshal(updated)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", opts.TranslationFile, err)
	}

	perm, err := filePerm(fs, opts.TranslationFile)
	if err != nil {
		return nil, err
	}
	if opts.Backup {
		backupPath := opts.TranslationFile + BackupSuffix
		if err := afero.WriteFile(fs, backupPath, original, perm); err != nil {
			return nil, fmt.Errorf("failed to write backup %s: %w", backupPath, err)
		}
		result.BackupPath = backupPath
		logger.Log(ctx, progress, "backup created", "path", backupPath)
	}
	if err := afero.WriteFile(fs, opts.TranslationFile, out, perm); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", opts.TranslationFile, err)
	}
	result.Cleaned = true

	return result, nil
}

func mustExist(fs afero.Fs, path, what string) error {
	if path == "" {
		return &NotFoundError{What: what, Path: path}
	}
	ok, err := afero.Exists(fs, path)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", path, err)
	}
	if !ok {
		return &NotFoundError{What: what, Path: path}
	}
	return nil
}

func filePerm(fs afero.Fs, path string) (os.FileMode, error) {
	info, err := fs.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return info.Mode().Perm(), nil
}
