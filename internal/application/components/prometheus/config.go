package prometheus

type Config struct {
	Enabled          bool   `yaml:"enabled" json:"enabled" toml:"enabled"`
	Address          string `yaml:"address" json:"address" toml:"address"` // 为空则不单独监听，只保留 registry
	Path             string `yaml:"path" json:"path" toml:"path"`
	Namespace        string `yaml:"namespace" json:"namespace" toml:"namespace"`
	Subsystem        string `yaml:"subsystem" json:"subsystem" toml:"subsystem"`
	DisableGoMetrics bool   `yaml:"disable_go_metrics" json:"disable_go_metrics" toml:"disable_go_metrics"`
	DisableProcess   bool   `yaml:"disable_process" json:"disable_process" toml:"disable_process"`
}
