package config

import (
	"fmt"

	"github.com/nabeel-hussain/ToDoApp/internal/application/components/logging"
	"github.com/nabeel-hussain/ToDoApp/internal/application/consts"
)

type Validator struct{}

func NewValidator() *Validator { return &Validator{} }

// ValidateAppConfig 同时补齐必需的默认项：缺少 logging 小节时启用 stdout 日志。
func (v *Validator) ValidateAppConfig(cfg *AppConfig) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if err := v.validateEnv(cfg.APPInfo.ENV); err != nil {
		return err
	}
	if cfg.Logging == nil {
		cfg.Logging = logging.DefaultConfig()
	}
	if cfg.Gorm != nil && cfg.Gorm.Enabled {
		for name, ds := range cfg.Gorm.DataSources {
			if ds == nil || ds.Driver == "" {
				return fmt.Errorf("gorm.data_sources.%s.driver is required", name)
			}
		}
	}
	if cfg.Telemetry != nil && cfg.Telemetry.Enabled && cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = cfg.APPInfo.APPName
	}
	if bv, ok := cfg.BizConfig.(BizValidator); ok {
		if err := bv.Validate(); err != nil {
			return fmt.Errorf("biz_config invalid: %w", err)
		}
	}
	return nil
}

func (v *Validator) validateConfigFilePath(path string) error {
	if path == "" {
		return fmt.Errorf("config file path cannot be empty")
	}
	if len(path) > 4096 {
		return fmt.Errorf("config file path is too long")
	}
	if !fileExists(path) {
		return fmt.Errorf("config file does not exist: %s", path)
	}
	return nil
}

func (v *Validator) validateEnv(env string) error {
	switch env {
	case consts.ENV_DEVELOPMENT, consts.ENV_PRODUCTION, consts.ENV_TEST:
		return nil
	}
	return fmt.Errorf("running environment is not valid: %q", env)
}
