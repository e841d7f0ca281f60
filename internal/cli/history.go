package cli

import (
	"github.com/spf13/cobra"

	"github.com/MedMaalej/copybara/internal/actions"
	"github.com/MedMaalej/copybara/internal/output"
)

// newHistoryCmd creates the history command
func newHistoryCmd() *cobra.Command {
	var opts actions.HistoryOptions

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List changes carrying a label",
		Long: `List the changes reachable from --rev that carry one of the given labels.

With --value, print the newest change that records that value instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.Splog = output.NewSplogWithWriter(cmd.OutOrStdout())
			return actions.HistoryAction(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.RepoPath, "repo", ".", "Repository to read")
	cmd.Flags().StringVar(&opts.Rev, "rev", "", "Ref to start from (defaults to HEAD)")
	cmd.Flags().StringSliceVarP(&opts.Labels, "label", "l", nil, "Label to look for (repeatable)")
	cmd.Flags().StringVar(&opts.Value, "value", "", "Value to look up")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "Maximum number of changes to read (0 for all)")
	_ = cmd.MarkFlagRequired("label")

	return cmd
}
