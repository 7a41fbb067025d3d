package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	DefaultAppFile = "schoolindex.yml"
	envPrefix      = "SCHOOLINDEX__"
)

type Log struct {
	Level string `koanf:"level"`
	JSON  bool   `koanf:"json"`
}

type Metrics struct {
	Textfile string `koanf:"textfile"` // empty = don't write
}

// App is the top-level run configuration.
type App struct {
	Input    string  `koanf:"input"`
	Output   string  `koanf:"output"`
	Pipeline string  `koanf:"pipeline"` // optional pipeline.yml
	Log      Log     `koanf:"log"`
	Metrics  Metrics `koanf:"metrics"`
}

// LoadApp merges YAML (if present) with env-vars
// (prefix `SCHOOLINDEX__`, delimiter `__`, e.g. SCHOOLINDEX__LOG__LEVEL).
// A missing file is not an error.
func LoadApp(path string) (App, error) {
	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil &&
			!errors.Is(err, fs.ErrNotExist) {
			return App{}, err
		}
	}
	_ = k.Load(env.Provider(envPrefix, "__", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)

	var cfg App
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, err
	}
	applyAppDefaults(&cfg)
	return cfg, nil
}

// Input and Output stay empty unless set so they only override a pipeline
// file when given explicitly.
func applyAppDefaults(c *App) {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}
