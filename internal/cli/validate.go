package cli

import (
	"github.com/spf13/cobra"

	"github.com/MedMaalej/copybara/internal/actions"
	"github.com/MedMaalej/copybara/internal/runtime"
)

// newValidateCmd creates the validate command
func newValidateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that the configured transformations can be built",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := runtime.GetContext(*configPath, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer ctx.Close()

			return actions.ValidateAction(ctx)
		},
	}
}
