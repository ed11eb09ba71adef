// Package cli implements the i18nprune command line.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	i18nlog "github.com/jenian/i18nprune/internal/log"
	"github.com/jenian/i18nprune/internal/output"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// Exit codes for the i18nprune CLI.
const (
	ExitOK     = 0 // Nothing to report, or the cleanup succeeded.
	ExitFailed = 1 // Invalid arguments, unreadable input, or --check found unused keys.
)

// ExitCodeError carries a process exit code through cobra's error return.
type ExitCodeError struct {
	Code int
	Msg  string
}

func (e *ExitCodeError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

// app holds the dependencies and flag values shared by the commands.
type app struct {
	fs  afero.Fs
	cwd string

	verbose bool
	quiet   bool
	noColor bool

	clean cleanFlags
}

// NewRootCmd builds the command tree. fs and cwd are injected so tests can
// run the CLI against an in-memory project.
func NewRootCmd(fs afero.Fs, cwd string) *cobra.Command {
	a := &app{fs: fs, cwd: cwd}

	rootCmd := &cobra.Command{
		Use:   "i18nprune",
		Short: "Remove unused translation keys from vue-i18n JSON files",
		Long: `i18nprune scans Vue and TypeScript sources for translation key usages
(t(), $t(), rt(), tc(), v-t directives, <i18n-t keypath> components and key
arrays) and removes the keys no source file references from JSON translation
files. Groups left empty are removed too.

Without a subcommand it runs "clean".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			i18nlog.Setup(cmd.ErrOrStderr(), a.verbose, a.quiet)
			if a.noColor {
				output.SetColor(false)
			}
		},
		Args: cobra.NoArgs,
		RunE: a.runClean,
	}

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Show detailed output")
	rootCmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "Only log warnings and errors")
	rootCmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")
	a.clean.register(rootCmd)

	rootCmd.AddCommand(a.newCleanCmd())
	rootCmd.AddCommand(a.newInitConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Long:  "Print the version number of i18nprune",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
		},
	}
}

// Execute runs the CLI against the OS file system and returns the process exit code.
func Execute() int {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprint(os.Stderr, output.FormatError(err))
		return ExitFailed
	}

	if err := NewRootCmd(afero.NewOsFs(), cwd).Execute(); err != nil {
		var ece *ExitCodeError
		if errors.As(err, &ece) {
			if ece.Msg != "" {
				fmt.Fprintln(os.Stderr, ece.Msg)
			}
			return ece.Code
		}
		fmt.Fprint(os.Stderr, output.FormatError(err))
		return ExitFailed
	}
	return ExitOK
}
