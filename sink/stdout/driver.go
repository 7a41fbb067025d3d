// schoolindex/sink/stdout/driver.go
package stdout

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"schoolindex/internal/school"
	"schoolindex/sink"
)

/* ────────── public YAML config ────────── */
type Config struct {
	PrintCounter bool `yaml:"print_counter"` // prepend seq#
	PrintValue   bool `yaml:"print_value"`   // append the lowercase key
	Limit        int  `yaml:"limit"`         // 0 = all entries
}

/* ────────── driver ────────── */
type driver struct {
	cfg Config
	out io.Writer
}

/* ────────── sink.Adapter ────────── */
func (d *driver) Configure(raw any) error {
	c, ok := raw.(Config)
	if !ok {
		return fmt.Errorf("stdout-sink: expected Config, got %T", raw)
	}
	if c.Limit < 0 {
		return fmt.Errorf("stdout-sink: negative limit %d", c.Limit)
	}
	d.cfg = c
	return nil
}

func (d *driver) Write(ctx context.Context, entries []school.Entry) error {
	out := d.out
	if out == nil {
		out = os.Stdout
	}
	w := bufio.NewWriter(out)

	n := len(entries)
	if d.cfg.Limit > 0 && d.cfg.Limit < n {
		n = d.cfg.Limit
	}
	for i, e := range entries[:n] {
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.cfg.PrintCounter {
			fmt.Fprintf(w, "[%06d] ", i+1)
		}
		w.WriteString(e.Label)
		if d.cfg.PrintValue {
			fmt.Fprintf(w, "\t%s", e.Value)
		}
		w.WriteByte('\n')
	}
	if n < len(entries) {
		fmt.Fprintf(w, "… %d more\n", len(entries)-n)
	}
	return w.Flush()
}

func (d *driver) Close() error { return nil }

/* ────────── auto-register ────────── */
func init() {
	sink.Register("stdout", func() sink.Adapter { return &driver{} })
}
