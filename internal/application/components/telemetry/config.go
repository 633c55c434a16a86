package telemetry

import "time"

type ExporterType string

const (
	ExporterStdout ExporterType = "stdout"
	ExporterOTLP   ExporterType = "otlp"
	ExporterNone   ExporterType = "none" // 只设置 provider 与传播器，不导出
)

type OTLPConfig struct {
	Endpoint string        `yaml:"endpoint" json:"endpoint" toml:"endpoint"`
	Insecure bool          `yaml:"insecure" json:"insecure" toml:"insecure"`
	Timeout  time.Duration `yaml:"timeout" json:"timeout" toml:"timeout"`
}

type Config struct {
	Enabled        bool          `yaml:"enabled" json:"enabled" toml:"enabled"`
	ServiceName    string        `yaml:"service_name" json:"service_name" toml:"service_name"`
	Exporter       ExporterType  `yaml:"exporter" json:"exporter" toml:"exporter"`
	SampleRatio    float64       `yaml:"sample_ratio" json:"sample_ratio" toml:"sample_ratio"`
	MetricInterval time.Duration `yaml:"metric_interval" json:"metric_interval" toml:"metric_interval"`
	OTLP           *OTLPConfig   `yaml:"otlp" json:"otlp" toml:"otlp"`
	StdoutPretty   bool          `yaml:"stdout_pretty" json:"stdout_pretty" toml:"stdout_pretty"`
	StdoutFile     string        `yaml:"stdout_file" json:"stdout_file" toml:"stdout_file"`
}

func (c *Config) applyDefaults() {
	if c.SampleRatio <= 0 || c.SampleRatio > 1 {
		c.SampleRatio = 1.0
	}
	if c.Exporter == "" {
		c.Exporter = ExporterStdout
	}
	if c.MetricInterval <= 0 {
		c.MetricInterval = 15 * time.Second
	}
	if c.OTLP != nil && c.OTLP.Timeout <= 0 {
		c.OTLP.Timeout = 5 * time.Second
	}
}
