package config

import (
	"github.com/nabeel-hussain/ToDoApp/internal/application/components/gormdb"
	"github.com/nabeel-hussain/ToDoApp/internal/application/components/http_server"
	"github.com/nabeel-hussain/ToDoApp/internal/application/components/logging"
	"github.com/nabeel-hussain/ToDoApp/internal/application/components/prometheus"
	"github.com/nabeel-hussain/ToDoApp/internal/application/components/redis"
	"github.com/nabeel-hussain/ToDoApp/internal/application/components/telemetry"
)

// AppConfig 应用程序配置
type AppConfig struct {
	APPInfo    *APPInfo                      `yaml:"app_info" json:"app_info" toml:"app_info"`
	Logging    *logging.LoggingConfig        `yaml:"logging" json:"logging" toml:"logging"`
	HTTPServer *http_server.HTTPServerConfig `yaml:"http_server" json:"http_server" toml:"http_server"`
	Gorm       *gormdb.Config                `yaml:"gorm" json:"gorm" toml:"gorm"`
	Redis      *redis.Config                 `yaml:"redis" json:"redis" toml:"redis"`
	Prometheus *prometheus.Config            `yaml:"prometheus" json:"prometheus" toml:"prometheus"`
	Telemetry  *telemetry.Config             `yaml:"telemetry" json:"telemetry" toml:"telemetry"`

	// 业务配置：先解析为通用结构，再二次解码到调用方提供的指针
	BizConfig any `yaml:"biz_config" json:"biz_config" toml:"biz_config"`
}

type APPInfo struct {
	APPName string `yaml:"app_name" json:"app_name" toml:"app_name"`
	ENV     string `yaml:"env" json:"env" toml:"env"`
}

// BizValidator 业务配置可选实现，加载后由 Validator 调用。
type BizValidator interface {
	Validate() error
}
