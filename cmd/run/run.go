// Package run implements the full-pipeline command: transform, geocode,
// and upload in sequence.
package run

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/tmsnobrega/pipeline-car-ml-pricing/cmd/common"
	cmdgeocode "github.com/tmsnobrega/pipeline-car-ml-pricing/cmd/geocode"
	cmdtransform "github.com/tmsnobrega/pipeline-car-ml-pricing/cmd/transform"
	cmdupload "github.com/tmsnobrega/pipeline-car-ml-pricing/cmd/upload"
)

// Command returns the run command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline: transform, geocode, upload",
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

// Run executes all pipeline stages in order, stopping at the first failure.
func Run(ctx context.Context, deps *common.Deps) error {
	if err := cmdtransform.Run(deps); err != nil {
		return err
	}
	if err := cmdgeocode.Run(deps); err != nil {
		return err
	}
	return cmdupload.Run(ctx, deps)
}
