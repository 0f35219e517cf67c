package cli

import (
	"fmt"

	"github.com/alexanderramin/strata/internal/cli/formatter"
	"github.com/alexanderramin/strata/internal/domain"
	"github.com/alexanderramin/strata/internal/repository"
	"github.com/spf13/cobra"
)

func newItemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Inspect items on a branch",
	}
	cmd.AddCommand(newItemListCmd(app), newItemShowCmd(app))
	return cmd
}

func newItemListCmd(app *App) *cobra.Command {
	var branch, owner, project, lane, tag string
	var types []string
	var fromDate, toDate string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items, optionally filtered",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := repository.Filter{
				Owner:   owner,
				Project: project,
				Lane:    lane,
				Tag:     tag,
			}
			for _, t := range types {
				filter.Types = append(filter.Types, domain.ItemType(t))
			}
			if fromDate != "" && toDate != "" {
				start, err := domain.ParseDate(fromDate)
				if err != nil {
					return err
				}
				end, err := domain.ParseDate(toDate)
				if err != nil {
					return err
				}
				filter.Overlaps = &repository.DateRange{Start: start, End: end}
			}

			items, err := app.Items.List(cmd.Context(), branch, filter)
			if err != nil {
				return err
			}
			for _, item := range items {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.ItemLine(item))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d items\n", len(items))
			return nil
		},
	}
	cmd.Flags().StringVar(&branch, "branch", domain.MainBranch, "branch to list")
	cmd.Flags().StringSliceVar(&types, "type", nil, "item types (task, milestone, release, meeting)")
	cmd.Flags().StringVar(&owner, "owner", "", "exact owner match")
	cmd.Flags().StringVar(&project, "project", "", "exact project match")
	cmd.Flags().StringVar(&lane, "lane", "", "exact lane match")
	cmd.Flags().StringVar(&tag, "tag", "", "tag substring match")
	cmd.Flags().StringVar(&fromDate, "from", "", "overlap window start (with --to)")
	cmd.Flags().StringVar(&toDate, "to", "", "overlap window end (with --from)")
	return cmd
}

func newItemShowCmd(app *App) *cobra.Command {
	var branch string
	cmd := &cobra.Command{
		Use:   "show <item-id>",
		Short: "Show a single item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := app.Items.Get(cmd.Context(), args[0], branch)
			if err != nil {
				return err
			}
			if item == nil {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleDim.Render("not found"))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.ItemLine(item))
			if len(item.Tags) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "tags: %v\n", item.Tags)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated: %s\n",
				item.UpdatedAt.Format("2006-01-02 15:04:05"))
			return nil
		},
	}
	cmd.Flags().StringVar(&branch, "branch", domain.MainBranch, "branch to read")
	return cmd
}
