package source

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"unicode/utf8"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	DefaultPath      = "us-public-schools.csv"
	DefaultDelimiter = ";"
)

type Config struct {
	Path      string `koanf:"path"`
	Delimiter string `koanf:"delimiter"` // single rune, csv only
	Sheet     string `koanf:"sheet"`     // xlsx only; first sheet when empty

	// StrictQuotes rejects a quote inside an unquoted field instead of keeping
	// it as text. csv only.
	StrictQuotes bool `koanf:"strict_quotes"`
}

// ---------------------------------------------------------------------------
// Loader
// ---------------------------------------------------------------------------

// LoadConfig merges YAML (if present) with env-vars
// (prefix `SCHOOLINDEX_SOURCE__`, delimiter `__`).
func LoadConfig(path string) (Config, error) {
	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil &&
			!errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}
	// schema version check (only when YAML is present)
	sv := k.String("schema_version")
	if sv != "" && sv != "v1" {
		return Config{}, fmt.Errorf("source schema_version %q not supported (want v1)", sv)
	}

	_ = k.Load(env.Provider("SCHOOLINDEX_SOURCE__", "__", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "SCHOOLINDEX_SOURCE__"))
	}), nil)

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, err
	}
	ApplyDefaults(&cfg)
	return cfg, cfg.Validate()
}

// ---------------------------------------------------------------------------
// defaults
// ---------------------------------------------------------------------------

func ApplyDefaults(c *Config) {
	if c.Path == "" {
		c.Path = DefaultPath
	}
	if c.Delimiter == "" {
		c.Delimiter = DefaultDelimiter
	}
}

func (c Config) Validate() error {
	if utf8.RuneCountInString(c.Delimiter) != 1 {
		return fmt.Errorf("source: delimiter must be a single character, got %q", c.Delimiter)
	}
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return fmt.Errorf("source: invalid delimiter %q", c.Delimiter)
	}
	return nil
}

// Comma returns the delimiter as a rune. Call after Validate.
func (c Config) Comma() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}
