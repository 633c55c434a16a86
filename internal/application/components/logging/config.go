package logging

// LoggingConfig 日志配置
type LoggingConfig struct {
	Enabled      bool          `yaml:"enabled" json:"enabled" toml:"enabled"`
	Level        string        `yaml:"level" json:"level" toml:"level"`
	Format       string        `yaml:"format" json:"format" toml:"format"` // json | console
	Output       string        `yaml:"output" json:"output" toml:"output"` // stdout | stderr | file | <path>
	FileConfig   *FileConfig   `yaml:"file_config,omitempty" json:"file_config,omitempty" toml:"file_config"`
	RotateConfig *RotateConfig `yaml:"rotate_config,omitempty" json:"rotate_config,omitempty" toml:"rotate_config"`
}

type FileConfig struct {
	Dir      string `yaml:"dir" json:"dir" toml:"dir"`
	Filename string `yaml:"filename" json:"filename" toml:"filename"` // 不含扩展名
}

// RotateConfig 交给 lumberjack 处理，按大小切分、按天数清理。
type RotateConfig struct {
	Enabled    bool `yaml:"enabled" json:"enabled" toml:"enabled"`
	MaxSizeMB  int  `yaml:"max_size_mb" json:"max_size_mb" toml:"max_size_mb"`
	MaxAgeDays int  `yaml:"max_age_days" json:"max_age_days" toml:"max_age_days"`
	MaxBackups int  `yaml:"max_backups" json:"max_backups" toml:"max_backups"`
	Compress   bool `yaml:"compress" json:"compress" toml:"compress"`
}

// DefaultConfig 配置文件缺少 logging 小节时使用。
func DefaultConfig() *LoggingConfig {
	return &LoggingConfig{Enabled: true, Level: "INFO", Format: "json", Output: "stdout"}
}
