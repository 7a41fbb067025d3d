// Package xlsx loads the first (or a named) worksheet of a spreadsheet as a
// table. The first row is the header.
package xlsx

import (
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"schoolindex/internal/school"
	"schoolindex/source"
)

type Driver struct {
	cfg source.Config
}

func (d *Driver) Configure(cfg source.Config) error {
	if cfg.Path == "" {
		return errors.New("xlsx-source: path is required")
	}
	d.cfg = cfg
	return nil
}

func (d *Driver) Load(ctx context.Context) (*source.Table, error) {
	t, err := d.load(ctx)
	if err != nil {
		return nil, &school.DataLoadError{Source: d.cfg.Path, Err: err}
	}
	return t, nil
}

func (d *Driver) load(ctx context.Context) (*source.Table, error) {
	f, err := excelize.OpenFile(d.cfg.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := d.cfg.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q: no header row", sheet)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	header := rows[0]
	t := &source.Table{Name: d.cfg.Path + "#" + sheet, Header: header, Rows: make([][]string, 0, len(rows)-1)}
	for i, row := range rows[1:] {
		// GetRows drops trailing empty cells.
		if len(row) > len(header) {
			return nil, fmt.Errorf("sheet %q row %d: expected %d cells, saw %d", sheet, i+2, len(header), len(row))
		}
		for len(row) < len(header) {
			row = append(row, "")
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func (d *Driver) Close() error { return nil }

func init() {
	source.Register("xlsx", func() source.Adapter { return &Driver{} })
}
