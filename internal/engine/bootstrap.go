package engine

import (
	"context"
	"fmt"

	"schoolindex/internal/logging"
	"schoolindex/internal/pipeline"
	"schoolindex/internal/telemetry"
)

func Bootstrap(ctx context.Context, cfg Config) (*Engine, error) {
	// 1. logging
	logging.Configure(logging.Options{Level: cfg.LogLevel, JSON: cfg.LogJSON})

	// 2. pipeline runner
	ov := pipeline.Overrides{Input: cfg.Input, Output: cfg.Output}
	var (
		runner *pipeline.Runner
		err    error
	)
	if cfg.PipelineYml != "" {
		runner, err = pipeline.Compile(cfg.PipelineYml, ov)
	} else {
		runner, err = pipeline.Default(ov)
	}
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	// 3. metrics
	m := telemetry.New()
	runner.SetMetrics(m)

	return &Engine{
		runner:   runner,
		metrics:  m,
		textfile: cfg.MetricsTextfile,
	}, nil
}
