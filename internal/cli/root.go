package cli

import (
	"database/sql"

	"github.com/alexanderramin/strata/internal/diff"
	"github.com/alexanderramin/strata/internal/importer"
	"github.com/alexanderramin/strata/internal/repository"
	"github.com/spf13/cobra"
)

// App holds the repositories and engines the CLI commands operate on.
type App struct {
	DB       *sql.DB
	Items    repository.ItemRepo
	Branches repository.BranchRepo
	History  repository.HistoryRepo
	Profiles repository.ProfileRepo
	Params   repository.ParamRepo
	Diff     *diff.Engine
	Importer *importer.Engine
}

// NewApp wires the full component stack over one open store.
func NewApp(database *sql.DB) *App {
	items := repository.NewSQLiteItemRepo(database)
	return &App{
		DB:       database,
		Items:    items,
		Branches: repository.NewSQLiteBranchRepo(database, items),
		History:  repository.NewSQLiteHistoryRepo(database),
		Profiles: repository.NewSQLiteProfileRepo(database),
		Params:   repository.NewSQLiteParamRepo(database),
		Diff:     diff.NewEngine(items),
		Importer: importer.NewEngine(items),
	}
}

// NewRootCmd creates the top-level "strata" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "strata",
		Short:         "Branch-scoped roadmap store with version history and CSV import",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newBranchCmd(app),
		newItemCmd(app),
		newHistoryCmd(app),
		newDiffCmd(app),
		newImportCmd(app),
		newProfileCmd(app),
		newConfigCmd(app),
		newExportCmd(app),
	)

	return root
}
