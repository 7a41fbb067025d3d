package pipeline

import (
	"context"
	"errors"
	"fmt"

	"schoolindex/internal/school"
	"schoolindex/internal/telemetry"
	"schoolindex/internal/transform"
	"schoolindex/sink"
	"schoolindex/source"
)

type namedSink struct {
	name string
	s    sink.Adapter
}

type Runner struct {
	source  source.Adapter
	keep    transform.Predicate
	sinks   []namedSink
	metrics *telemetry.Metrics
}

// Report summarizes one run.
type Report struct {
	RowsRead int
	RowsKept int
	Entries  int
}

func NewRunner() *Runner { return &Runner{keep: transform.HighSchool} }

func (r *Runner) AddSink(name string, s sink.Adapter) {
	r.sinks = append(r.sinks, namedSink{name: name, s: s})
}
func (r *Runner) SetSource(s source.Adapter)       { r.source = s }
func (r *Runner) SetMetrics(m *telemetry.Metrics) { r.metrics = m }

// Run executes load → filter → build → write once. Errors carry the stage
// that failed. No sink sees any entry unless load and filter succeed. Source
// and sinks are closed before Run returns.
func (r *Runner) Run(ctx context.Context) (rep Report, err error) {
	if r.source == nil {
		return rep, errors.New("runner: no source configured")
	}
	if len(r.sinks) == 0 {
		return rep, errors.New("runner: no sinks configured")
	}
	defer func() {
		if cerr := r.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close: %w", cerr)
		}
	}()

	counting := func(rec school.Record) bool {
		rep.RowsRead++
		return r.keep(rec)
	}
	kept, err := transform.LoadAndFilter(ctx, r.source, counting)
	if err != nil {
		var se *school.SchemaError
		if errors.As(err, &se) {
			return rep, fmt.Errorf("filter: %w", err)
		}
		return rep, fmt.Errorf("load: %w", err)
	}
	rep.RowsKept = len(kept)

	entries := transform.BuildEntries(kept)
	rep.Entries = len(entries)
	if r.metrics != nil {
		r.metrics.RowsRead.Add(float64(rep.RowsRead))
		r.metrics.RowsKept.Add(float64(rep.RowsKept))
	}

	for _, ns := range r.sinks {
		if err := ns.s.Write(ctx, entries); err != nil {
			return rep, fmt.Errorf("write %s: %w", ns.name, err)
		}
		if r.metrics != nil {
			r.metrics.EntriesWritten.WithLabelValues(ns.name).Add(float64(len(entries)))
		}
	}
	return rep, nil
}

// Close releases the source and every sink. Safe to call more than once.
func (r *Runner) Close() error {
	var errs []error
	if r.source != nil {
		errs = append(errs, r.source.Close())
	}
	for _, ns := range r.sinks {
		if err := ns.s.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", ns.name, err))
		}
	}
	return errors.Join(errs...)
}
