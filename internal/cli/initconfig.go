package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jenian/i18nprune/internal/config"
)

func (a *app) newInitConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-config",
		Short: "Create a " + config.FileName + " file in the current directory",
		Long:  "Creates a " + config.FileName + " file with default configuration in the current directory.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := config.WriteDefault(a.fs, a.cwd); err != nil {
				if errors.Is(err, config.ErrConfigExists) {
					return fmt.Errorf("%s already exists in the current directory", config.FileName)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s in the current directory\n", config.FileName)
			return nil
		},
	}
}
