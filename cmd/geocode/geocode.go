// Package geocode implements the geocode stage command: enrich the
// transformed table with coordinates and province per seller postal code.
package geocode

import (
	"github.com/spf13/cobra"

	"github.com/tmsnobrega/pipeline-car-ml-pricing/cmd/common"
	"github.com/tmsnobrega/pipeline-car-ml-pricing/internal/geocode"
	"github.com/tmsnobrega/pipeline-car-ml-pricing/internal/pipeline"
)

// Command returns the geocode command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "geocode",
		Short: "Enrich the transformed table with seller geography",
		Long: `Geocode resolves each distinct seller postal code in the transformed
table to coordinates and a province, using a file-backed cache so a postal
code hits the network at most once across runs, and rewrites the table in
place with the enriched columns filled.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewDeps()
			if err != nil {
				return err
			}
			defer func() { _ = deps.Logger.Sync() }()

			return Run(deps)
		},
	}
}

// Run executes the geocode stage with the given dependencies.
func Run(deps *common.Deps) error {
	cfg := deps.Config
	if !cfg.Geocode.Enabled {
		deps.Logger.Info("geocoding disabled, skipping stage")
		return nil
	}

	listings, err := pipeline.ReadCSV(cfg.Paths.TransformedListings)
	if err != nil {
		return err
	}

	cache, err := geocode.LoadCache(cfg.Paths.GeocodeCache)
	if err != nil {
		return err
	}
	deps.Logger.Info("geocode stage starting",
		"rows", len(listings),
		"cached_zip_codes", cache.Len(),
	)

	enricher := geocode.NewEnricher(deps.Logger, geocode.NewClient(cfg.Geocode.BaseURL), cache)
	if err := enricher.Enrich(listings); err != nil {
		return err
	}

	return pipeline.WriteCSV(cfg.Paths.TransformedListings, listings)
}
