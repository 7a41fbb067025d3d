// Package jsonfile writes entries to a file as one pretty-printed JSON array.
package jsonfile

import (
	"context"
	"fmt"

	"schoolindex/internal/school"
	"schoolindex/internal/transform"
	"schoolindex/sink"
)

const DefaultPath = "schools.json"

/* ────────── public YAML config ────────── */
type Config struct {
	Path   string `yaml:"path"`   // default schools.json
	Indent int    `yaml:"indent"` // spaces; default 4
	ASCII  *bool  `yaml:"ascii"`  // escape non-ASCII; default true
}

/* ────────── driver ────────── */
type driver struct {
	path string
	opts transform.EncodeOptions
}

func (d *driver) Configure(raw any) error {
	c, ok := raw.(Config)
	if !ok {
		return fmt.Errorf("json-sink: expected Config, got %T", raw)
	}
	d.path = c.Path
	if d.path == "" {
		d.path = DefaultPath
	}
	d.opts = transform.DefaultEncodeOptions
	if c.Indent > 0 {
		d.opts.Indent = c.Indent
	}
	if c.ASCII != nil {
		d.opts.ASCII = *c.ASCII
	}
	return nil
}

func (d *driver) Write(_ context.Context, entries []school.Entry) error {
	return transform.WriteFile(entries, d.path, d.opts)
}

func (d *driver) Close() error { return nil }

/* ────────── auto-register ────────── */
func init() {
	sink.Register("json", func() sink.Adapter { return &driver{} })
}
