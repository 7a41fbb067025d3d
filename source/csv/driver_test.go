package csv

import (
	"context"
	stdcsv "encoding/csv"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"schoolindex/internal/school"
	"schoolindex/source"
)

func writeTemp(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "schools.csv")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func load(t *testing.T, path string) (*source.Table, error) {
	t.Helper()
	d := &Driver{}
	if err := d.Configure(source.Config{Path: path}); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	defer d.Close()
	return d.Load(context.Background())
}

func TestLoad_SemicolonTable(t *testing.T) {
	p := writeTemp(t, "NAME;CITY;STATE;ST_GRADE;END_GRADE\n"+
		"lincoln high school;springfield;il;09;12\n"+
		"\"semi;colon academy\";dover;de;06;08\n")

	tbl, err := load(t, p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tbl.Name != p {
		t.Fatalf("want table name %q, got %q", p, tbl.Name)
	}
	wantHeader := []string{"NAME", "CITY", "STATE", "ST_GRADE", "END_GRADE"}
	if !reflect.DeepEqual(tbl.Header, wantHeader) {
		t.Fatalf("header mismatch: %v", tbl.Header)
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("want 2 rows, got %d", len(tbl.Rows))
	}
	if tbl.Rows[1][0] != "semi;colon academy" {
		t.Fatalf("quoted field not preserved: %q", tbl.Rows[1][0])
	}
	if tbl.Rows[0][3] != "09" {
		t.Fatalf("grade text must stay zero-padded, got %q", tbl.Rows[0][3])
	}
}

func TestLoad_StripsBOMAndPadsShortRows(t *testing.T) {
	p := writeTemp(t, "\uFEFFNAME;CITY;STATE\nwest high;boise\n")

	tbl, err := load(t, p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tbl.Header[0] != "NAME" {
		t.Fatalf("BOM not stripped: %q", tbl.Header[0])
	}
	if got := tbl.Rows[0]; len(got) != 3 || got[2] != "" {
		t.Fatalf("short row not padded: %q", got)
	}
}

func TestLoad_HeaderOnly(t *testing.T) {
	p := writeTemp(t, "NAME;CITY;STATE;ST_GRADE;END_GRADE\n")
	tbl, err := load(t, p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tbl.Rows) != 0 {
		t.Fatalf("want no rows, got %d", len(tbl.Rows))
	}
}

func TestLoad_Failures(t *testing.T) {
	cases := []struct {
		name string
		path func(t *testing.T) string
		is   error
	}{
		{
			name: "missing file",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.csv") },
			is:   fs.ErrNotExist,
		},
		{
			name: "empty file",
			path: func(t *testing.T) string { return writeTemp(t, "") },
			is:   errNoHeader,
		},
		{
			name: "row wider than header",
			path: func(t *testing.T) string { return writeTemp(t, "A;B\n1;2;3\n") },
		},
		{
			name: "invalid utf-8 in row",
			path: func(t *testing.T) string { return writeTemp(t, "NAME;CITY\ncaf\xe9 high;dover\n") },
			is:   errInvalidUTF,
		},
		{
			name: "invalid utf-8 in header",
			path: func(t *testing.T) string { return writeTemp(t, "NAM\xff;CITY\nx;y\n") },
			is:   errInvalidUTF,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := load(t, tc.path(t))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var dl *school.DataLoadError
			if !errors.As(err, &dl) {
				t.Fatalf("want DataLoadError, got %T: %v", err, err)
			}
			if tc.is != nil && !errors.Is(err, tc.is) {
				t.Fatalf("want %v in chain, got %v", tc.is, err)
			}
		})
	}
}

func TestLoad_BareQuoteKeptAsText(t *testing.T) {
	p := writeTemp(t, "NAME;CITY;STATE;ST_GRADE;END_GRADE\nst mary\"s high;dover;de;09;12\n")

	tbl, err := load(t, p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := tbl.Rows[0][0]; got != `st mary"s high` {
		t.Fatalf("want quote kept in name, got %q", got)
	}
}

func TestRead_StrictQuotes(t *testing.T) {
	_, err := Read(context.Background(), strings.NewReader("A;B\nx\"y;2\n"), source.Config{StrictQuotes: true})
	var pe *stdcsv.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("want csv.ParseError, got %v", err)
	}
}

func TestRead_InvalidUTF8NamesLine(t *testing.T) {
	body := "NAME;CITY\nok;fine\ncaf\xe9 high;dover\n"
	_, err := Read(context.Background(), strings.NewReader(body), source.Config{})
	if !errors.Is(err, errInvalidUTF) {
		t.Fatalf("want invalid UTF-8 error, got %v", err)
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Fatalf("error should name line 3: %v", err)
	}
}

func TestRead_CustomDelimiter(t *testing.T) {
	tbl, err := Read(context.Background(), strings.NewReader("A|B\n1|2\n"), source.Config{Delimiter: "|"})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !reflect.DeepEqual(tbl.Rows, [][]string{{"1", "2"}}) {
		t.Fatalf("unexpected rows %v", tbl.Rows)
	}
}

func TestRead_CancelledContext(t *testing.T) {
	var b strings.Builder
	b.WriteString("A;B\n")
	for i := 0; i < checkEvery; i++ {
		b.WriteString("x;y\n")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Read(ctx, strings.NewReader(b.String()), source.Config{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

func TestRegistered(t *testing.T) {
	a, err := source.NewAdapter("csv")
	if err != nil {
		t.Fatalf("NewAdapter: %v", err)
	}
	if _, ok := a.(*Driver); !ok {
		t.Fatalf("want *Driver, got %T", a)
	}
}
