package cli

import (
	"fmt"
	"os"

	"github.com/alexanderramin/strata/internal/db"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.db>",
		Short: "Write a compacted snapshot of the database to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := db.ExportImage(app.DB)
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[0], image, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d bytes to %s\n", len(image), args[0])
			return nil
		},
	}
}
