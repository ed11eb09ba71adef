package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/text/language"

	"github.com/jenian/i18nprune/internal/cleanup"
	"github.com/jenian/i18nprune/internal/config"
	"github.com/jenian/i18nprune/internal/detect"
	"github.com/jenian/i18nprune/internal/output"
	"github.com/jenian/i18nprune/internal/scanner"
)

// cleanFlags are registered on both the root command and "clean".
type cleanFlags struct {
	translationFile string
	srcPath         string
	dryRun          bool
	noBackup        bool
	jsonOutput      bool
	check           bool
	include         []string
	exclude         []string
	keep            []string
	workers         int
}

func (f *cleanFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.translationFile, "translation-file", "t", "", "Path to a translation file or a directory of translation files")
	flags.StringVarP(&f.srcPath, "src-path", "s", "", "Path to source files")
	flags.BoolVarP(&f.dryRun, "dry-run", "n", false, "Show what would be removed without making changes")
	flags.BoolVar(&f.noBackup, "no-backup", false, "Skip creating backup file")
	flags.BoolVar(&f.jsonOutput, "json", false, "Output results in JSON format")
	flags.BoolVar(&f.check, "check", false, "Exit with code 1 when unused keys exist (implies --dry-run)")
	flags.StringSliceVar(&f.include, "include", nil, "Glob patterns of source files to scan, relative to the source path")
	flags.StringSliceVar(&f.exclude, "exclude", nil, "Directory names or relative paths to skip")
	flags.StringSliceVar(&f.keep, "keep", nil, "Keys or groups that must never be removed")
	flags.IntVar(&f.workers, "workers", 0, "Number of files scanned concurrently (default 10)")
	flags.SetNormalizeFunc(normalizeFlagName)
}

// normalizeFlagName accepts snake_case spellings and the config file key names.
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	name = strings.ReplaceAll(name, "_", "-")
	switch name {
	case "translations":
		name = "translation-file"
	case "src":
		name = "src-path"
	}
	return pflag.NormalizedName(name)
}

func (a *app) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove unused translation keys",
		Long: `Scan the source path for translation key usages and remove unused keys from
the translation file. Paths missing from the flags are read from ` + config.FileName + `,
then detected from vite.config.* and conventional directory names.`,
		Args: cobra.NoArgs,
		RunE: a.runClean,
	}
	a.clean.register(cmd)
	return cmd
}

func (a *app) runClean(cmd *cobra.Command, _ []string) error {
	f := a.clean
	dryRun := f.dryRun || f.check
	out := cmd.OutOrStdout()

	cfg, err := config.LoadConfig(a.fs, a.cwd)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to load %s: %v\n", config.FileName, err)
		cfg = &config.Config{}
	}
	if cfg.Path() != "" {
		slog.Debug("loaded config", "path", a.display(cfg.Path()))
	}

	translations, src, err := a.resolvePaths(cfg)
	if err != nil {
		return err
	}

	files := []string{translations}
	directory, _ := afero.IsDir(a.fs, translations)
	if directory {
		files, err = a.translationFiles(translations)
		if err != nil {
			return err
		}
		if a.verbose && !f.jsonOutput {
			fmt.Fprintf(out, "Found %d translation files\n", len(files))
		}
	}

	include := f.include
	if len(include) == 0 {
		include = cfg.Include
	}

	var reports []output.FileReport
	for _, file := range files {
		opts := cleanup.DefaultOptions()
		opts.TranslationFile = file
		opts.SrcPath = src
		opts.Backup = !f.noBackup
		opts.DryRun = dryRun
		opts.Verbose = a.verbose
		opts.Include = include
		opts.ExcludeDirs = append(append([]string{}, cfg.Ignores.Folders...), f.exclude...)
		opts.Keep = append(append([]string{}, cfg.Ignores.Keys...), f.keep...)
		opts.Workers = f.workers
		opts.FS = a.fs
		opts.Logger = slog.Default()

		res, err := cleanup.Run(cmd.Context(), opts)
		if err != nil {
			return err
		}
		res.TranslationFile = a.display(res.TranslationFile)
		if res.BackupPath != "" {
			res.BackupPath = a.display(res.BackupPath)
		}
		reports = append(reports, output.FileReport{Locale: localeOf(file), Result: res})
	}

	if err := output.Format(out, reports, f.jsonOutput, dryRun, directory); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if f.check && output.HasIssues(reports) {
		unused := 0
		for _, r := range reports {
			unused += r.UnusedKeys
		}
		return &ExitCodeError{Code: ExitFailed, Msg: fmt.Sprintf("Found %d unused translation key(s)", unused)}
	}
	return nil
}

// resolvePaths applies flags, then the config file, then auto-detection.
func (a *app) resolvePaths(cfg *config.Config) (translations, src string, err error) {
	translations = a.abs(a.clean.translationFile)
	if translations == "" {
		translations = cfg.Translations
	}
	src = a.abs(a.clean.srcPath)
	if src == "" {
		src = cfg.Src
	}
	if translations != "" && src != "" {
		return translations, src, nil
	}

	detected := detect.Detect(a.fs, a.cwd)
	if translations == "" {
		translations = detected.TranslationsPath
	}
	if src == "" {
		src = detected.SrcPath
	}
	if translations == "" || src == "" {
		return "", "", fmt.Errorf("Could not determine required paths: %s", detected.Reason)
	}
	slog.Debug("using detected paths", "translations", translations, "src", src)
	return translations, src, nil
}

// translationFiles lists every JSON file below dir, sorted.
func (a *app) translationFiles(dir string) ([]string, error) {
	s := scanner.NewScanner(a.fs)
	if err := s.SetIncludeGlobs([]string{"**/*.json"}); err != nil {
		return nil, err
	}
	found, err := s.Scan(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list translation files: %w", err)
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("no translation files found in %s", a.display(dir))
	}
	return found, nil
}

func (a *app) abs(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(a.cwd, p)
}

// display shortens paths below the working directory.
func (a *app) display(p string) string {
	rel, err := filepath.Rel(a.cwd, p)
	if err != nil || strings.HasPrefix(rel, "..") {
		return p
	}
	return filepath.ToSlash(rel)
}

// localeOf derives a BCP 47 tag from en.json, pt_BR.json or de/messages.json.
func localeOf(path string) string {
	candidates := []string{strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))}
	// Only short or region-qualified directory names; "src" is a valid tag too.
	if dir := filepath.Base(filepath.Dir(path)); len(dir) == 2 || strings.ContainsAny(dir, "-_") {
		candidates = append(candidates, dir)
	}
	for _, candidate := range candidates {
		tag, err := language.Parse(strings.ReplaceAll(candidate, "_", "-"))
		if err == nil {
			return tag.String()
		}
	}
	return ""
}
