package xlsx

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"schoolindex/internal/school"
	"schoolindex/source"
)

func writeWorkbook(t *testing.T, sheet string, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			t.Fatalf("rename sheet: %v", err)
		}
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		row := r
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row %d: %v", i+1, err)
		}
	}
	p := filepath.Join(t.TempDir(), "schools.xlsx")
	if err := f.SaveAs(p); err != nil {
		t.Fatalf("save: %v", err)
	}
	return p
}

func TestLoad_FirstSheet(t *testing.T) {
	p := writeWorkbook(t, "Schools", [][]any{
		{"NAME", "CITY", "STATE", "ST_GRADE", "END_GRADE"},
		{"lincoln high school", "springfield", "il", "09", "12"},
		{"tiny school", "nowhere"},
	})

	d := &Driver{}
	if err := d.Configure(source.Config{Path: p}); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	tbl, err := d.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tbl.Header) != 5 || tbl.Header[4] != "END_GRADE" {
		t.Fatalf("unexpected header %v", tbl.Header)
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("want 2 rows, got %d", len(tbl.Rows))
	}
	if tbl.Rows[0][3] != "09" {
		t.Fatalf("want text grade 09, got %q", tbl.Rows[0][3])
	}
	if len(tbl.Rows[1]) != 5 || tbl.Rows[1][2] != "" {
		t.Fatalf("short row not padded: %q", tbl.Rows[1])
	}
}

func TestLoad_UnknownSheet(t *testing.T) {
	p := writeWorkbook(t, "Sheet1", [][]any{{"NAME"}})

	d := &Driver{}
	if err := d.Configure(source.Config{Path: p, Sheet: "Missing"}); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	_, err := d.Load(context.Background())
	var dl *school.DataLoadError
	if !errors.As(err, &dl) {
		t.Fatalf("want DataLoadError, got %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	d := &Driver{}
	if err := d.Configure(source.Config{Path: filepath.Join(t.TempDir(), "none.xlsx")}); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	_, err := d.Load(context.Background())
	var dl *school.DataLoadError
	if !errors.As(err, &dl) {
		t.Fatalf("want DataLoadError, got %v", err)
	}
}

func TestConfigure_RequiresPath(t *testing.T) {
	if err := (&Driver{}).Configure(source.Config{}); err == nil {
		t.Fatal("expected error for empty path")
	}
}
