package pipeline

import (
	"fmt"

	"schoolindex/internal/config"
	"schoolindex/sink"
	"schoolindex/sink/jsonfile"
	"schoolindex/sink/kafka"
	"schoolindex/sink/stdout"
	"schoolindex/source"

	_ "schoolindex/source/csv"
	_ "schoolindex/source/xlsx"
)

// Overrides replace the input path of the source and the output path of the
// json sink when non-empty.
type Overrides struct {
	Input  string
	Output string
}

func Compile(path string, ov Overrides) (*Runner, error) {
	r := NewRunner()
	if err := LoadYAML(path, ov, r); err != nil {
		_ = r.Close()
		return nil, err
	}
	return r, nil
}

// Drivers used by Default.
var (
	defaultSource = "csv"
	defaultSink   = "json"
)

// Default builds the plain csv → json pipeline.
func Default(ov Overrides) (*Runner, error) {
	r := NewRunner()
	if err := loadDefault(ov, r); err != nil {
		_ = r.Close()
		return nil, err
	}
	return r, nil
}

func loadDefault(ov Overrides, r *Runner) error {
	sc, err := config.LoadSourceConfig("")
	if err != nil {
		return err
	}
	if ov.Input != "" {
		sc.Path = ov.Input
	}
	src, err := source.NewAdapter(defaultSource)
	if err != nil {
		return err
	}
	if err := src.Configure(sc); err != nil {
		return err
	}
	r.SetSource(src)

	s, err := sink.NewAdapter(defaultSink)
	if err != nil {
		return err
	}
	if err := s.Configure(jsonfile.Config{Path: ov.Output}); err != nil {
		return fmt.Errorf("sink %s: %w", defaultSink, err)
	}
	r.AddSink(defaultSink, s)
	return nil
}

func LoadYAML(path string, ov Overrides, r *Runner) error {
	cfg, confPath, err := config.LoadPipelineSpec(path)
	if err != nil {
		return err
	}

	sc, err := config.LoadSourceConfig(confPath)
	if err != nil {
		return err
	}
	if ov.Input != "" {
		sc.Path = ov.Input
	}
	src, err := source.NewAdapter(cfg.Source.Kind)
	if err != nil {
		return err
	}
	if err = src.Configure(sc); err != nil {
		return err
	}
	r.SetSource(src)

	for _, name := range cfg.Sinks {
		sDrv, err := sink.NewAdapter(name)
		if err != nil {
			return err
		}

		switch name {
		case "json":
			jc := cfg.SinkConfigs.JSON
			if ov.Output != "" {
				jc.Path = ov.Output
			}
			err = sDrv.Configure(jsonfile.Config{Path: jc.Path, Indent: jc.Indent, ASCII: jc.ASCII})
		case "stdout":
			oc := cfg.SinkConfigs.Stdout
			err = sDrv.Configure(stdout.Config{
				PrintCounter: oc.PrintCounter,
				PrintValue:   oc.PrintValue,
				Limit:        oc.Limit,
			})
		case "kafka":
			kc := cfg.SinkConfigs.Kafka
			err = sDrv.Configure(kafka.Config{
				Brokers:   kc.Brokers,
				Topic:     kc.Topic,
				Acks:      kc.Acks,
				Version:   kc.Version,
				ClientID:  kc.ClientID,
				BatchSize: kc.BatchSize,
			})
		default:
			err = fmt.Errorf("no config block for sink %q", name)
		}
		if err != nil {
			return fmt.Errorf("sink %s: %w", name, err)
		}
		r.AddSink(name, sDrv)
	}
	return nil
}
