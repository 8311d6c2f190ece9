// Package pipeline wires the transform stage together: read raw listings,
// apply the rule engine, filter and deduplicate, and write the cleaned table.
// Stages communicate through files so each can be run and re-run on its own.
package pipeline

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/tmsnobrega/pipeline-car-ml-pricing/internal/filter"
	"github.com/tmsnobrega/pipeline-car-ml-pricing/internal/logger"
	"github.com/tmsnobrega/pipeline-car-ml-pricing/internal/normalize"
	"github.com/tmsnobrega/pipeline-car-ml-pricing/internal/rules"
)

// Transformer runs the transform stage of the pipeline.
type Transformer struct {
	logger     logger.Interface
	normalizer *normalize.Normalizer
}

// NewTransformer creates a transform stage runner.
func NewTransformer(log logger.Interface) *Transformer {
	return &Transformer{
		logger:     log,
		normalizer: normalize.New(log),
	}
}

// Result summarizes one transform run.
type Result struct {
	RunID  string
	Counts filter.Counts
}

// Run executes the transform stage: rawPath (NDJSON) in, outPath (CSV) out.
// A batch that yields zero usable rows is an error; writing an empty table
// would silently wipe downstream state.
func (t *Transformer) Run(rawPath, outPath string) (*Result, error) {
	runID := uuid.New().String()
	now := time.Now()
	log := t.logger.With("run_id", runID)

	log.Info("transform stage starting", "raw_listings", rawPath)

	listings, err := t.normalizer.ReadFile(rawPath)
	if err != nil {
		return nil, err
	}
	log.Info("normalized raw listings", "rows", len(listings))

	rules.NewEngineAt(log, now).Apply(listings)

	cleaned, counts := filter.New(log, now).Apply(listings)
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("no usable rows in %s after filtering", rawPath)
	}

	if err := WriteCSV(outPath, cleaned); err != nil {
		return nil, err
	}
	log.Info("transform stage complete", "output", outPath, "rows", len(cleaned))

	return &Result{RunID: runID, Counts: counts}, nil
}

// RenderSummary prints the per-stage row counts of a run as a table.
func RenderSummary(res *Result) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Stage", "Rows"})
	t.AppendRow(table.Row{"normalized", res.Counts.Before})
	t.AppendRow(table.Row{"after filters", res.Counts.AfterFilters})
	t.AppendRow(table.Row{"after dedup", res.Counts.AfterDedup})
	t.Render()
}
