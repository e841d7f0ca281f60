package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "copybara",
		Short: "Copybara transforms commit messages moving between repositories",
		Long: `Copybara transforms commit messages moving between repositories.

Transformations are read from copybara.yaml in the working directory, or from
the file given with --config. Every configured chain can also run in reverse.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the configuration file")

	// Add subcommands
	rootCmd.AddCommand(newMigrateCmd(&configPath))
	rootCmd.AddCommand(newValidateCmd(&configPath))
	rootCmd.AddCommand(newDescribeCmd(&configPath))
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}
