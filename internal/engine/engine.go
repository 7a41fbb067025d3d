package engine

import (
	"context"
	"time"

	"github.com/google/uuid"

	"schoolindex/internal/logging"
	"schoolindex/internal/pipeline"
	"schoolindex/internal/telemetry"
)

type Config struct {
	Input           string // overrides the source path when set
	Output          string // overrides the json sink path when set
	PipelineYml     string // optional
	LogLevel        string
	LogJSON         bool
	MetricsTextfile string // optional
}

type Engine struct {
	runner   *pipeline.Runner
	metrics  *telemetry.Metrics
	textfile string
}

// Run executes the pipeline once. A metrics textfile, when configured, is
// written whether or not the run succeeded.
func (e *Engine) Run(ctx context.Context) (pipeline.Report, error) {
	log := logging.L().With("run", uuid.NewString())
	start := time.Now()
	log.Debug("run started")

	rep, err := e.runner.Run(ctx)
	e.metrics.Observe(start, err)
	if e.textfile != "" {
		if werr := e.metrics.WriteTextfile(e.textfile); werr != nil {
			log.Warn("metrics textfile not written", "path", e.textfile, "err", werr)
		}
	}
	if err != nil {
		log.Error("run failed", "err", err, "elapsed", time.Since(start))
		return rep, err
	}
	log.Info("run finished",
		"rows_read", rep.RowsRead,
		"rows_kept", rep.RowsKept,
		"entries", rep.Entries,
		"elapsed", time.Since(start))
	return rep, nil
}
