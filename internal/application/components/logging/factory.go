package logging

import (
	"fmt"
	"strings"
)

// NewFromConfig 补齐默认值、校验后构造日志组件。
func NewFromConfig(cfg *LoggingConfig) (*LoggerComponent, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	setDefaults(cfg)
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return NewLoggerComponent(cfg), nil
}

func setDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	if cfg.Format == "" {
		cfg.Format = "json"
	}
	if cfg.Output == "" {
		cfg.Output = "stdout"
	}
	if strings.EqualFold(cfg.Output, "file") && cfg.FileConfig == nil {
		cfg.FileConfig = &FileConfig{Dir: "./logs", Filename: "todo"}
	}
	if rc := cfg.RotateConfig; rc != nil && rc.Enabled && rc.MaxSizeMB == 0 {
		rc.MaxSizeMB = 100
	}
}

func validate(cfg *LoggingConfig) error {
	if _, err := parseLevel(cfg.Level); err != nil {
		return err
	}
	switch strings.ToLower(cfg.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", cfg.Format)
	}
	if rc := cfg.RotateConfig; rc != nil && rc.Enabled {
		if rc.MaxSizeMB < 0 || rc.MaxAgeDays < 0 || rc.MaxBackups < 0 {
			return fmt.Errorf("logging.rotate_config values must be >= 0")
		}
	}
	return nil
}
