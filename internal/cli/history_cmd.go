package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/strata/internal/cli/formatter"
	"github.com/alexanderramin/strata/internal/domain"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the version history of items",
	}
	cmd.AddCommand(
		newHistoryShowCmd(app),
		newHistoryVersionCmd(app),
		newHistoryRecentCmd(app),
		newHistorySearchCmd(app),
	)
	return cmd
}

func newHistoryShowCmd(app *App) *cobra.Command {
	var branch string
	cmd := &cobra.Command{
		Use:   "show <item-id>",
		Short: "Show every recorded version of an item, oldest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := app.History.History(cmd.Context(), args[0], branch)
			if err != nil {
				return err
			}
			for _, rec := range records {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.HistoryLine(rec))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d versions\n", len(records))
			return nil
		},
	}
	cmd.Flags().StringVar(&branch, "branch", domain.MainBranch, "branch to read")
	return cmd
}

func newHistoryVersionCmd(app *App) *cobra.Command {
	var branch string
	cmd := &cobra.Command{
		Use:   "version <item-id> <version>",
		Short: "Show one recorded version of an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("version must be a number: %q", args[1])
			}
			rec, err := app.History.Version(cmd.Context(), args[0], branch, version)
			if err != nil {
				return err
			}
			if rec == nil {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleDim.Render("not found"))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.HistoryLine(rec))
			fmt.Fprintln(cmd.OutOrStdout(), formatter.ItemLine(&rec.Item))
			return nil
		},
	}
	cmd.Flags().StringVar(&branch, "branch", domain.MainBranch, "branch to read")
	return cmd
}

func newHistoryRecentCmd(app *App) *cobra.Command {
	var branch string
	var limit int
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show the most recent changes on a branch, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := app.History.Recent(cmd.Context(), branch, limit)
			if err != nil {
				return err
			}
			for _, rec := range records {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.HistoryLine(rec))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&branch, "branch", domain.MainBranch, "branch to read")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum records to show")
	return cmd
}

func newHistorySearchCmd(app *App) *cobra.Command {
	var branch string
	var limit int
	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Find items by case-insensitive title substring",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := app.History.Search(cmd.Context(), branch, args[0], limit)
			if err != nil {
				return err
			}
			for _, item := range items {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.ItemLine(item))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d matches\n", len(items))
			return nil
		},
	}
	cmd.Flags().StringVar(&branch, "branch", domain.MainBranch, "branch to read")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum matches to show")
	return cmd
}
