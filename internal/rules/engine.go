// Package rules implements the business rule engine: an ordered sequence of
// named derivation, correction, and imputation rules applied to every typed
// listing row. Rules run in a fixed sequence because later rules assume
// earlier derivations; the engine, not code position, enforces the order.
package rules

import (
	"time"

	"github.com/tmsnobrega/pipeline-car-ml-pricing/internal/domain"
	"github.com/tmsnobrega/pipeline-car-ml-pricing/internal/logger"
)

// Rule is one total, side-effect-free transformation over a single row.
// Reads and Writes declare the columns the rule touches so the ordering
// contract is visible in one place.
type Rule interface {
	Name() string
	Reads() []string
	Writes() []string
	Apply(l *domain.Listing)
}

// Engine applies the fixed rule sequence to a batch of listings.
type Engine struct {
	rules  []Rule
	logger logger.Interface
	now    time.Time
}

// NewEngine creates an engine evaluating time-dependent rules against the
// current wall clock.
func NewEngine(log logger.Interface) *Engine {
	return NewEngineAt(log, time.Now())
}

// NewEngineAt creates an engine with a fixed reference time. Used by tests
// and by the pipeline driver so one run shares a single "now".
func NewEngineAt(log logger.Interface, now time.Time) *Engine {
	return &Engine{
		logger: log,
		now:    now,
		rules: []Rule{
			&canonicalLabels{},
			&derivedMetrics{now: now},
			&gearTypeForElectric{},
			&drivetrainInference{},
			&newUsedInference{},
			&serviceHistoryInference{},
			&gearCountCorrection{},
			&emissionCorrection{},
			&rangeValidation{},
		},
	}
}

// Rules returns the rule sequence in execution order.
func (e *Engine) Rules() []Rule {
	return e.rules
}

// Apply runs every rule, in order, across the whole batch. Each rule fully
// consumes the batch before the next rule starts, matching the strict
// forward-only dependency between rule stages.
func (e *Engine) Apply(listings []domain.Listing) {
	for _, r := range e.rules {
		for i := range listings {
			r.Apply(&listings[i])
		}
		e.logger.Debug("applied rule", "rule", r.Name(), "rows", len(listings))
	}
}
