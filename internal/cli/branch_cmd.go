package cli

import (
	"fmt"

	"github.com/alexanderramin/strata/internal/cli/formatter"
	"github.com/alexanderramin/strata/internal/domain"
	"github.com/spf13/cobra"
)

func newBranchCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "branch",
		Short: "Manage scenario branches",
	}
	cmd.AddCommand(
		newBranchListCmd(app),
		newBranchCreateCmd(app),
		newBranchDeleteCmd(app),
		newBranchRenameCmd(app),
	)
	return cmd
}

func newBranchListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List branches with item counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			branches, err := app.Branches.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, branch := range branches {
				count, err := app.Branches.ItemCount(cmd.Context(), branch.ID)
				if err != nil {
					return err
				}
				label := branch.Label
				if label == "" {
					label = branch.ID
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %-30s %d items\n",
					branch.ID, label, count)
			}
			return nil
		},
	}
}

func newBranchCreateCmd(app *App) *cobra.Command {
	var from, label, note string
	cmd := &cobra.Command{
		Use:   "create <branch-id>",
		Short: "Create a branch as a full copy of another branch's current items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			branch, err := app.Branches.Create(cmd.Context(), from, args[0], label, note)
			if err != nil {
				return err
			}
			count, err := app.Branches.ItemCount(cmd.Context(), branch.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s from %s (%d items copied)\n",
				branch.ID, branch.CreatedFrom, count)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", domain.MainBranch, "source branch to copy")
	cmd.Flags().StringVar(&label, "label", "", "display label")
	cmd.Flags().StringVar(&note, "note", "", "free-form note")
	return cmd
}

func newBranchDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <branch-id>",
		Short: "Delete a branch and its items (history is retained)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Branches.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted branch %s\n", args[0])
			return nil
		},
	}
}

func newBranchRenameCmd(app *App) *cobra.Command {
	var label, note string
	cmd := &cobra.Command{
		Use:   "rename <branch-id>",
		Short: "Update a branch's label or note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var changes domain.BranchChanges
			if cmd.Flags().Changed("label") {
				changes.Label = &label
			}
			if cmd.Flags().Changed("note") {
				changes.Note = &note
			}
			n, err := app.Branches.Update(cmd.Context(), args[0], changes)
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintln(cmd.OutOrStdout(),
					formatter.StyleDim.Render("nothing updated (unknown branch or no fields)"))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated branch %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&label, "label", "", "new display label")
	cmd.Flags().StringVar(&note, "note", "", "new note")
	return cmd
}
