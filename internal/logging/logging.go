package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

type Options struct {
	Level string
	JSON  bool
	// Writer defaults to os.Stderr.
	Writer io.Writer
}

var def atomic.Value

func init() {
	cfg := &slog.HandlerOptions{Level: slog.LevelInfo}
	h := slog.NewTextHandler(os.Stderr, cfg)
	def.Store(slog.New(h))
}

func Configure(opts Options) {
	lvl := ParseLevel(opts.Level)
	cfg := &slog.HandlerOptions{Level: lvl}
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	var h slog.Handler
	if opts.JSON {
		h = slog.NewJSONHandler(w, cfg)
	} else {
		h = slog.NewTextHandler(w, cfg)
	}
	def.Store(slog.New(h))
}

func ParseLevel(s string) slog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func L() *slog.Logger {
	l, _ := def.Load().(*slog.Logger)
	return l
}
