package school

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
)

func TestDataLoadError_UnwrapsCause(t *testing.T) {
	err := fmt.Errorf("load: %w", &DataLoadError{Source: "in.csv", Err: fs.ErrNotExist})

	var dl *DataLoadError
	if !errors.As(err, &dl) {
		t.Fatalf("errors.As failed for %v", err)
	}
	if dl.Source != "in.csv" {
		t.Fatalf("unexpected source %q", dl.Source)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatal("expected wrapped fs.ErrNotExist")
	}
}

func TestSchemaError_ListsMissingColumns(t *testing.T) {
	err := &SchemaError{Source: "in.csv", Missing: []string{ColState, ColEndGrade}}
	msg := err.Error()
	if !strings.Contains(msg, "STATE, END_GRADE") {
		t.Fatalf("message does not name columns: %q", msg)
	}
}

func TestIOWriteError_UnwrapsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := &IOWriteError{Dest: "schools.json", Err: cause}
	if !errors.Is(err, cause) {
		t.Fatal("expected cause to be reachable")
	}
	if !strings.HasPrefix(err.Error(), "write schools.json") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
