package spec

type jsonSink struct {
	Path   string `yaml:"path"`
	Indent int    `yaml:"indent"`
	ASCII  *bool  `yaml:"ascii"`
}

type stdoutSink struct {
	PrintCounter bool `yaml:"print_counter"`
	PrintValue   bool `yaml:"print_value"`
	Limit        int  `yaml:"limit"`
}

type kafkaSink struct {
	Brokers   []string `yaml:"brokers"`
	Topic     string   `yaml:"topic"`
	Acks      int16    `yaml:"required_acks"`
	Version   string   `yaml:"version"`
	ClientID  string   `yaml:"client_id"`
	BatchSize int      `yaml:"batch_size"`
}

type sinkConfigs struct {
	JSON   jsonSink   `yaml:"json"`
	Stdout stdoutSink `yaml:"stdout"`
	Kafka  kafkaSink  `yaml:"kafka"`
}

type File struct {
	SchemaVersion string `yaml:"schema_version"`

	Source struct {
		Kind   string `yaml:"kind"`   // "csv" or "xlsx"
		Config string `yaml:"config"` // source config YAML, relative to this file
	} `yaml:"source"`

	// Sinks receive the entries in this order.
	Sinks       []string    `yaml:"sinks"`
	SinkConfigs sinkConfigs `yaml:"sink_configs"`
}
