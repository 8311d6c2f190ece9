// Package upload implements the upload stage command: load the transformed
// table into PostgreSQL.
package upload

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/tmsnobrega/pipeline-car-ml-pricing/cmd/common"
	"github.com/tmsnobrega/pipeline-car-ml-pricing/internal/database"
	"github.com/tmsnobrega/pipeline-car-ml-pricing/internal/pipeline"
)

// Command returns the upload command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "upload",
		Short: "Load the transformed table into PostgreSQL",
		Long: `Upload reads the transformed table and inserts the listings into the
car_listings table. Listings whose URL is already present are skipped, so
repeated uploads of overlapping batches are safe.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewDeps()
			if err != nil {
				return err
			}
			defer func() { _ = deps.Logger.Sync() }()

			return Run(cmd.Context(), deps)
		},
	}
}

// Run executes the upload stage with the given dependencies.
func Run(ctx context.Context, deps *common.Deps) error {
	listings, err := pipeline.ReadCSV(deps.Config.Paths.TransformedListings)
	if err != nil {
		return err
	}

	db, err := database.NewPostgresConnection(deps.Config.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := database.NewListingRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return err
	}

	inserted, err := repo.InsertListings(ctx, listings)
	if err != nil {
		return err
	}

	deps.Logger.Info("upload stage complete",
		"rows_read", len(listings),
		"rows_inserted", inserted,
		"rows_skipped", len(listings)-inserted,
	)
	return nil
}
