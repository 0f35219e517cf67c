package cli

import (
	"fmt"

	"github.com/alexanderramin/strata/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read and write app parameters",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "get <key>",
			Short: "Print a parameter value, empty if unset",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				val, err := app.Params.GetParam(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if val == "" {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleDim.Render("(unset)"))
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), val)
				return nil
			},
		},
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Set a parameter",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.Params.SetParam(cmd.Context(), args[0], args[1])
			},
		},
	)
	return cmd
}
