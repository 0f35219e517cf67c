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

func newImportCmd(app *App) *cobra.Command {
	var branch, profile, strategy, mode string
	var commit bool

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import a CSV export into a branch",
		Long: "Import a CSV export into a branch. Columns are auto-detected from " +
			"the header row unless --profile names a saved mapping. Without " +
			"--commit only the classification is shown and nothing is written.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			headers, rows, err := readCSV(args[0])
			if err != nil {
				return err
			}

			var mapping domain.ColumnMapping
			if profile != "" {
				saved, err := app.Profiles.Get(cmd.Context(), profile)
				if err != nil {
					return err
				}
				if saved == nil {
					return fmt.Errorf("no import profile named %q", profile)
				}
				mapping = *saved
			} else {
				mapping = importer.DetectColumns(headers)
			}
			if strategy != "" {
				mapping.IDStrategy = domain.IDStrategy(strategy)
			}

			result, err := app.Importer.DryRun(cmd.Context(), rows, importer.Options{
				Branch:  branch,
				Mapping: mapping,
				Mode:    importer.Mode(mode),
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.DryRunSummary(result))

			if !commit {
				fmt.Fprintln(cmd.OutOrStdout(),
					formatter.StyleDim.Render("dry run only; re-run with --commit to apply"))
				return nil
			}
			res := app.Importer.Commit(cmd.Context(), result)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.CommitSummary(res))
			return nil
		},
	}
	cmd.Flags().StringVar(&branch, "branch", domain.MainBranch, "target branch")
	cmd.Flags().StringVar(&profile, "profile", "", "saved column mapping to use instead of auto-detection")
	cmd.Flags().StringVar(&strategy, "strategy", "", "override id strategy (generate, column, match)")
	cmd.Flags().StringVar(&mode, "mode", string(importer.ModeUpsert), "upsert or update-only")
	cmd.Flags().BoolVar(&commit, "commit", false, "apply the classified changes")
	return cmd
}

// readCSV splits a file into its header row and data rows.
func readCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%s is empty", path)
	}
	return records[0], records[1:], nil
}
