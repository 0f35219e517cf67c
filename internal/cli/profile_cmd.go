package cli

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/alexanderramin/strata/internal/cli/formatter"
	"github.com/alexanderramin/strata/internal/domain"
	"github.com/alexanderramin/strata/internal/importer"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage saved import column mappings",
	}
	cmd.AddCommand(
		newProfileSaveCmd(app),
		newProfileListCmd(app),
		newProfileDeleteCmd(app),
	)
	return cmd
}

func newProfileSaveCmd(app *App) *cobra.Command {
	var strategy string
	cmd := &cobra.Command{
		Use:   "save <name> <file.csv>",
		Short: "Detect a file's column layout and save it under a name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[1])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[1], err)
			}
			defer f.Close()

			reader := csv.NewReader(f)
			reader.FieldsPerRecord = -1
			headers, err := reader.Read()
			if err != nil {
				return fmt.Errorf("read header of %s: %w", args[1], err)
			}

			mapping := importer.DetectColumns(headers)
			if strategy != "" {
				mapping.IDStrategy = domain.IDStrategy(strategy)
			}
			if err := app.Profiles.Save(cmd.Context(), args[0], mapping); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved profile %q (%s strategy)\n",
				args[0], mapping.IDStrategy)
			return nil
		},
	}
	cmd.Flags().StringVar(&strategy, "strategy", "", "override id strategy (generate, column, match)")
	return cmd
}

func newProfileListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved profile names",
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := app.Profiles.ListNames(cmd.Context())
			if err != nil {
				return err
			}
			if len(names) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleDim.Render("no saved profiles"))
				return nil
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newProfileDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := app.Profiles.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleDim.Render("not found"))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted profile %q\n", args[0])
			return nil
		},
	}
}
