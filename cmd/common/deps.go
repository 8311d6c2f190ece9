// Package common holds dependencies shared by the pipeline subcommands.
package common

import (
	"fmt"

	"github.com/tmsnobrega/pipeline-car-ml-pricing/internal/config"
	"github.com/tmsnobrega/pipeline-car-ml-pricing/internal/logger"
)

// Deps bundles the configuration and logger every stage command needs.
type Deps struct {
	Config *config.Config
	Logger logger.Interface
}

// NewDeps loads the merged configuration and builds the logger from it.
func NewDeps() (*Deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	return &Deps{Config: cfg, Logger: log}, nil
}
