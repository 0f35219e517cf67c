package cli

import (
	"fmt"

	"github.com/alexanderramin/strata/internal/cli/formatter"
	"github.com/alexanderramin/strata/internal/domain"
	"github.com/spf13/cobra"
)

func newDiffCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <branch-a> [branch-b]",
		Short: "Compare two branches item by item",
		Long: "Compare two branches item by item. With one argument, the branch " +
			"is compared against main.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			branchA := domain.MainBranch
			branchB := args[0]
			if len(args) == 2 {
				branchA, branchB = args[0], args[1]
			}
			result, err := app.Diff.Compare(cmd.Context(), branchA, branchB)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.DiffSummary(result))
			return nil
		},
	}
	return cmd
}
