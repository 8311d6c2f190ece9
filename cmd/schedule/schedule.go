// Package schedule implements the scheduler command: run the full pipeline
// on a cron schedule until interrupted.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/tmsnobrega/pipeline-car-ml-pricing/cmd/common"
	cmdrun "github.com/tmsnobrega/pipeline-car-ml-pricing/cmd/run"
)

// Command returns the schedule command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Run the full pipeline on a cron schedule",
		Long: `Schedule runs the full pipeline repeatedly according to the cron
expression in schedule.cron. A failed run is logged and the next run still
happens. The command blocks until interrupted.`,
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

// Run blocks, executing the full pipeline per the configured cron schedule,
// until the context is cancelled or an interrupt arrives.
func Run(ctx context.Context, deps *common.Deps) error {
	spec := deps.Config.Schedule.Cron
	if spec == "" {
		return errors.New("schedule.cron is required")
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if runErr := cmdrun.Run(ctx, deps); runErr != nil {
			deps.Logger.Error("scheduled pipeline run failed", "error", runErr)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", spec, err)
	}

	deps.Logger.Info("scheduler started", "cron", spec)
	c.Start()
	<-ctx.Done()

	deps.Logger.Info("scheduler stopping")
	stopCtx := c.Stop()
	<-stopCtx.Done()
	return nil
}
