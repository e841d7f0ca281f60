package cli

import (
	"github.com/spf13/cobra"

	"github.com/MedMaalej/copybara/internal/actions"
	"github.com/MedMaalej/copybara/internal/runtime"
	"github.com/MedMaalej/copybara/internal/utils"
)

// newMigrateCmd creates the migrate command
func newMigrateCmd(configPath *string) *cobra.Command {
	var opts actions.MigrateOptions

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Transform a commit message",
		Long: `Run the configured transformations on a commit message and print the result.

The message is taken from --message, from the commit given with --repo and
--rev, or from standard input. With --origin and --destination the histories
of those refs are consulted for labels recorded by earlier migrations.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := runtime.GetContext(*configPath, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer ctx.Close()

			opts.ReadStdin = utils.ReadFromStdin
			return actions.MigrateAction(cmd.Context(), ctx, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Message, "message", "m", "", "Message to transform")
	cmd.Flags().StringVar(&opts.RepoPath, "repo", "", "Repository to read changes from")
	cmd.Flags().StringVar(&opts.Rev, "rev", "", "Change whose message is transformed (requires --repo)")
	cmd.Flags().BoolVarP(&opts.Reverse, "reverse", "r", false, "Run the reversed chain")
	cmd.Flags().StringVar(&opts.Origin, "origin", "", "Ref whose history holds the changes being migrated")
	cmd.Flags().StringVar(&opts.Destination, "destination", "", "Ref whose history holds already migrated changes")
	cmd.Flags().IntVar(&opts.HistoryLimit, "history-limit", 1000, "Maximum number of changes read from each history (0 for all)")

	return cmd
}
