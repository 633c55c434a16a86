package registry

import (
	"github.com/nabeel-hussain/ToDoApp/internal/application/components/gormdb"
	"github.com/nabeel-hussain/ToDoApp/internal/application/components/http_server"
	"github.com/nabeel-hussain/ToDoApp/internal/application/components/logging"
	"github.com/nabeel-hussain/ToDoApp/internal/application/components/prometheus"
	"github.com/nabeel-hussain/ToDoApp/internal/application/components/redis"
	"github.com/nabeel-hussain/ToDoApp/internal/application/components/telemetry"
	"github.com/nabeel-hussain/ToDoApp/internal/application/config"
	"github.com/nabeel-hussain/ToDoApp/internal/application/consts"
	"github.com/nabeel-hussain/ToDoApp/internal/application/core"
)

func init() {
	Register(consts.COMPONENT_LOGGING, func(cfg *config.AppConfig, c *core.Container) (bool, core.Component, error) {
		if cfg.Logging == nil || !cfg.Logging.Enabled {
			return false, nil, nil
		}
		comp, err := logging.NewFromConfig(cfg.Logging)
		if err != nil {
			return true, nil, err
		}
		return true, comp, nil
	})

	RegisterWithDeps(consts.COMPONENT_TELEMETRY, []string{consts.COMPONENT_LOGGING}, func(cfg *config.AppConfig, c *core.Container) (bool, core.Component, error) {
		if cfg.Telemetry == nil || !cfg.Telemetry.Enabled {
			return false, nil, nil
		}
		return true, telemetry.NewTelemetryComponent(cfg.Telemetry, baseDeps(cfg)...), nil
	})

	RegisterWithDeps(consts.COMPONENT_PROMETHEUS, []string{consts.COMPONENT_LOGGING}, func(cfg *config.AppConfig, c *core.Container) (bool, core.Component, error) {
		if cfg.Prometheus == nil || !cfg.Prometheus.Enabled {
			return false, nil, nil
		}
		return true, prometheus.NewComponent(cfg.Prometheus, baseDeps(cfg)...), nil
	})

	RegisterWithDeps(consts.COMPONENT_GORM, []string{consts.COMPONENT_LOGGING}, func(cfg *config.AppConfig, c *core.Container) (bool, core.Component, error) {
		if cfg.Gorm == nil || !cfg.Gorm.Enabled {
			return false, nil, nil
		}
		return true, gormdb.NewGormComponent(cfg.Gorm, baseDeps(cfg)...), nil
	})

	RegisterWithDeps(consts.COMPONENT_REDIS, []string{consts.COMPONENT_LOGGING}, func(cfg *config.AppConfig, c *core.Container) (bool, core.Component, error) {
		if cfg.Redis == nil || !cfg.Redis.Enabled {
			return false, nil, nil
		}
		return true, redis.NewRedisComponent(cfg.Redis, baseDeps(cfg)...), nil
	})

	RegisterWithDeps(consts.COMPONENT_HTTP_SERVER, []string{consts.COMPONENT_LOGGING, consts.COMPONENT_TELEMETRY}, func(cfg *config.AppConfig, c *core.Container) (bool, core.Component, error) {
		if cfg.HTTPServer == nil || !cfg.HTTPServer.Enabled {
			return false, nil, nil
		}
		if cfg.HTTPServer.ServiceName == "" && cfg.APPInfo != nil {
			cfg.HTTPServer.ServiceName = cfg.APPInfo.APPName
		}
		deps := baseDeps(cfg)
		if cfg.Telemetry != nil && cfg.Telemetry.Enabled {
			deps = append(deps, consts.COMPONENT_TELEMETRY)
		}
		return true, http_server.NewHTTPServerComponent(cfg.HTTPServer, c, deps...), nil
	})
}

// baseDeps 日志组件被禁用时不声明依赖，避免缺失依赖导致启动失败。
func baseDeps(cfg *config.AppConfig) []string {
	if cfg.Logging != nil && cfg.Logging.Enabled {
		return []string{consts.COMPONENT_LOGGING}
	}
	return nil
}
