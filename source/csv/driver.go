// Package csv loads a delimited text table into memory.
package csv

import (
	"bufio"
	"context"
	stdcsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"schoolindex/internal/school"
	"schoolindex/source"
)

const (
	bufSize    = 1 << 20
	checkEvery = 4096
	bom        = "\uFEFF"
)

var (
	errNoHeader   = errors.New("no header row")
	errInvalidUTF = errors.New("invalid UTF-8")
)

type Driver struct {
	cfg source.Config
}

func (d *Driver) Configure(cfg source.Config) error {
	source.ApplyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	d.cfg = cfg
	return nil
}

// Load reads the whole file. Rows shorter than the header are padded with
// empty cells; longer rows fail the load.
func (d *Driver) Load(ctx context.Context) (*source.Table, error) {
	f, err := os.Open(d.cfg.Path)
	if err != nil {
		return nil, &school.DataLoadError{Source: d.cfg.Path, Err: err}
	}
	defer f.Close()

	t, err := Read(ctx, bufio.NewReaderSize(f, bufSize), d.cfg)
	if err != nil {
		return nil, &school.DataLoadError{Source: d.cfg.Path, Err: err}
	}
	t.Name = d.cfg.Path
	return t, nil
}

func (d *Driver) Close() error { return nil }

// Read parses a delimited table from r using the delimiter in cfg.
func Read(ctx context.Context, r io.Reader, cfg source.Config) (*source.Table, error) {
	source.ApplyDefaults(&cfg)
	reader := stdcsv.NewReader(r)
	reader.Comma = cfg.Comma()
	reader.LazyQuotes = !cfg.StrictQuotes
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], bom)
	}
	if err := checkUTF8(reader, header); err != nil {
		return nil, err
	}

	t := &source.Table{Header: header}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if len(row) > len(header) {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("line %d: expected %d fields, saw %d", line, len(header), len(row))
		}
		if err := checkUTF8(reader, row); err != nil {
			return nil, err
		}
		for len(row) < len(header) {
			row = append(row, "")
		}
		t.Rows = append(t.Rows, row)

		if len(t.Rows)%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}

// checkUTF8 reports the first cell of the record just read that is not
// valid UTF-8.
func checkUTF8(reader *stdcsv.Reader, record []string) error {
	for i, cell := range record {
		if !utf8.ValidString(cell) {
			line, col := reader.FieldPos(i)
			return fmt.Errorf("line %d, column %d: %w", line, col, errInvalidUTF)
		}
	}
	return nil
}

func init() {
	source.Register("csv", func() source.Adapter { return &Driver{} })
}
