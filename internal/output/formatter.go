package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/jenian/i18nprune/internal/cleanup"
)

func init() {
	color.NoColor = !initColorSupport()
}

// initColorSupport reports whether stdout is a terminal that wants colors
func initColorSupport() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// SetColor forces colored output on or off
func SetColor(enabled bool) {
	color.NoColor = !enabled
}

// Shared color printers for report sections.
var (
	colorRed    = color.New(color.FgRed)
	colorYellow = color.New(color.FgYellow)
	colorGreen  = color.New(color.FgGreen)
	colorCyan   = color.New(color.FgCyan)
	colorGray   = color.New(color.FgHiBlack)
	colorBold   = color.New(color.Bold)
)

// FileReport is the outcome for one translation file
type FileReport struct {
	Locale string `json:"locale,omitempty"` // BCP 47 tag derived from the file name, if any
	*cleanup.Result
}

// Format writes the reports as JSON or as a human-readable report
func Format(w io.Writer, reports []FileReport, jsonOutput, dryRun, directory bool) error {
	if jsonOutput {
		return formatJSON(w, reports)
	}
	if directory {
		formatDirectory(w, reports, dryRun)
		return nil
	}
	for _, r := range reports {
		formatHumanReadable(w, r, dryRun)
	}
	return nil
}

// formatJSON outputs results in JSON format
func formatJSON(w io.Writer, reports []FileReport) error {
	if reports == nil {
		reports = []FileReport{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(reports)
}

// formatHumanReadable outputs the report of a single translation file
func formatHumanReadable(w io.Writer, r FileReport, dryRun bool) {
	fmt.Fprintf(w, "\n%s\n", colorBold.Sprint("Results:"))
	fmt.Fprintf(w, "Total translation keys: %d\n", r.TotalKeys)
	fmt.Fprintf(w, "Used keys: %s\n", colorGreen.Sprint(r.UsedKeys))
	fmt.Fprintf(w, "Unused keys: %s\n", colorCount(r.UnusedKeys))

	if len(r.KeptKeys) > 0 {
		fmt.Fprintf(w, "%s %d key(s) kept by the keep-list\n", colorGray.Sprint("Note:"), len(r.KeptKeys))
	}

	if r.UnusedKeys == 0 {
		fmt.Fprintf(w, "\n%s\n", colorGreen.Sprint("No unused translations found"))
		if r.Cleaned {
			fmt.Fprintf(w, "Empty groups removed, translations file has been updated\n")
		}
		return
	}

	fmt.Fprintf(w, "\n%s\n", colorBold.Sprint("Unused translations:"))
	for _, key := range r.UnusedTranslations {
		fmt.Fprintf(w, "  %s\n", colorYellow.Sprint(key))
	}

	switch {
	case dryRun:
		fmt.Fprintf(w, "\n%s\n", colorCyan.Sprint("Dry run - no changes made"))
	case r.Cleaned:
		fmt.Fprintf(w, "\n%s\n", colorGreen.Sprint("Translations file has been updated"))
		if r.BackupPath != "" {
			fmt.Fprintf(w, "%s %s\n", colorGray.Sprint("Backup:"), r.BackupPath)
		}
	}
}

// formatDirectory outputs one line per translation file followed by a summary
func formatDirectory(w io.Writer, reports []FileReport, dryRun bool) {
	total := 0
	for _, r := range reports {
		total += r.UnusedKeys
		name := r.TranslationFile
		if r.Locale != "" {
			name = fmt.Sprintf("%s (%s)", r.TranslationFile, r.Locale)
		}

		status := ""
		switch {
		case r.Cleaned:
			status = colorGreen.Sprint(" updated")
		case dryRun && r.UnusedKeys > 0:
			status = colorCyan.Sprint(" dry run")
		}
		fmt.Fprintf(w, "  %s: %s unused of %d%s\n", colorCyan.Sprint(name), colorCount(r.UnusedKeys), r.TotalKeys, status)
	}
	fmt.Fprintf(w, "\n%s\n", colorBold.Sprintf("Found %d unused translation keys across %d file(s)", total, len(reports)))
}

// colorCount colors a count: 0 is green, >0 is yellow.
func colorCount(n int) string {
	s := fmt.Sprintf("%d", n)
	if n == 0 {
		return colorGreen.Sprint(s)
	}
	return colorYellow.Sprint(s)
}

// HasIssues returns true if any translation file has unused keys
func HasIssues(reports []FileReport) bool {
	for _, r := range reports {
		if r.UnusedKeys > 0 {
			return true
		}
	}
	return false
}

// FormatError formats an error message
func FormatError(err error) string {
	return fmt.Sprintf("%s %s\n", colorRed.Sprint("Error:"), err)
}
