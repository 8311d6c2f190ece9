// Package transform implements the transform stage command: clean the raw
// scraped listings into the analysis-ready table.
package transform

import (
	"github.com/spf13/cobra"

	"github.com/tmsnobrega/pipeline-car-ml-pricing/cmd/common"
	"github.com/tmsnobrega/pipeline-car-ml-pricing/internal/pipeline"
)

// Command returns the transform command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "transform",
		Short: "Clean raw listings into the transformed table",
		Long: `Transform reads the raw scraped listings (newline-delimited JSON),
normalizes them into typed rows, applies the business rules, filters out
untrustworthy rows, deduplicates, and writes the cleaned CSV table.`,
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

// Run executes the transform stage with the given dependencies.
func Run(deps *common.Deps) error {
	res, err := pipeline.NewTransformer(deps.Logger).Run(
		deps.Config.Paths.RawListings,
		deps.Config.Paths.TransformedListings,
	)
	if err != nil {
		return err
	}

	pipeline.RenderSummary(res)
	return nil
}
