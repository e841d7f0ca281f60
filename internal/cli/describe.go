package cli

import (
	"github.com/spf13/cobra"

	"github.com/MedMaalej/copybara/internal/actions"
	"github.com/MedMaalej/copybara/internal/runtime"
)

// newDescribeCmd creates the describe command
func newDescribeCmd(configPath *string) *cobra.Command {
	var opts actions.DescribeOptions

	cmd := &cobra.Command{
		Use:     "describe",
		Short:   "List the configured transformations",
		Aliases: []string{"d"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := runtime.GetContext(*configPath, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer ctx.Close()

			return actions.DescribeAction(ctx, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Reverse, "reverse", "r", false, "Describe the reversed chain")

	return cmd
}
