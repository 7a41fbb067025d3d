package transform

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf16"

	"schoolindex/internal/school"
)

const DefaultIndent = 4

type EncodeOptions struct {
	Indent int
	// ASCII escapes every non-ASCII rune as \uXXXX (surrogate pairs above
	// the BMP).
	ASCII bool
}

// DefaultEncodeOptions is what WriteOutput uses.
var DefaultEncodeOptions = EncodeOptions{Indent: DefaultIndent, ASCII: true}

// Encode writes entries to w as an indented JSON array. A nil or empty slice
// encodes as [].
func Encode(w io.Writer, entries []school.Entry, opts EncodeOptions) error {
	if entries == nil {
		entries = []school.Entry{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if opts.Indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", opts.Indent))
	}
	if err := enc.Encode(entries); err != nil {
		return err
	}
	out := buf.Bytes()
	if opts.ASCII {
		out = escapeNonASCII(out)
	}
	_, err := w.Write(out)
	return err
}

// escapeNonASCII is safe on encoder output: non-ASCII bytes only occur
// inside string literals.
func escapeNonASCII(b []byte) []byte {
	if !hasNonASCII(b) {
		return b
	}
	var out bytes.Buffer
	out.Grow(len(b) + len(b)/4)
	for _, r := range string(b) {
		switch {
		case r < 0x80:
			out.WriteByte(byte(r))
		case r > 0xFFFF:
			hi, lo := utf16.EncodeRune(r)
			fmt.Fprintf(&out, `\u%04x\u%04x`, hi, lo)
		default:
			fmt.Fprintf(&out, `\u%04x`, r)
		}
	}
	return out.Bytes()
}

func hasNonASCII(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return true
		}
	}
	return false
}

// WriteOutput writes entries to dest as a JSON array with 4-space
// indentation, replacing any existing file.
func WriteOutput(entries []school.Entry, dest string) error {
	return WriteFile(entries, dest, DefaultEncodeOptions)
}

// WriteFile encodes into a temp file next to dest and renames it into place,
// so dest is either the previous content or the complete new array. Every
// failure is an *school.IOWriteError and leaves no temp file behind.
func WriteFile(entries []school.Entry, dest string, opts EncodeOptions) (err error) {
	f, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*.tmp")
	if err != nil {
		return &school.IOWriteError{Dest: dest, Err: err}
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
			err = &school.IOWriteError{Dest: dest, Err: err}
		}
	}()

	if err = Encode(f, entries, opts); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, dest)
}
