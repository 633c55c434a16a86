package registry_ext

import (
	appconfig "github.com/nabeel-hussain/ToDoApp/internal/application/config"
	"github.com/nabeel-hussain/ToDoApp/internal/config"
)

// bizOf returns the decoded biz_config, or defaults when the app was booted without one.
func bizOf(cfg *appconfig.AppConfig) *config.TodoConfig {
	if cfg != nil {
		if tc, ok := cfg.BizConfig.(*config.TodoConfig); ok && tc != nil {
			return tc
		}
	}
	return config.Default()
}
