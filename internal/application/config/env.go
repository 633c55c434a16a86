package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"

	"github.com/nabeel-hussain/ToDoApp/internal/application/components/gormdb"
	"github.com/nabeel-hussain/ToDoApp/internal/application/components/http_server"
	"github.com/nabeel-hussain/ToDoApp/internal/application/components/logging"
	"github.com/nabeel-hussain/ToDoApp/internal/application/components/redis"
	"github.com/nabeel-hussain/ToDoApp/internal/application/consts"
)

// LoadDotEnv 读取 .env 文件到进程环境；不存在的文件忽略，已存在的环境变量不覆盖。
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var existing []string
	for _, p := range paths {
		if fileExists(p) {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("load dotenv %v: %w", existing, err)
	}
	return nil
}

// 支持的覆盖项：
//
//	TODO_APP_NAME / TODO_ENV
//	TODO_HTTP_ADDRESS
//	TODO_LOG_LEVEL / TODO_LOG_FORMAT
//	TODO_DB_DRIVER / TODO_DB_DSN（作用于 gorm.data_sources.default）
//	TODO_REDIS_ADDRESSES（逗号分隔）/ TODO_REDIS_PASSWORD
func (l *Loader) mergeEnvVars(cfg *AppConfig) error {
	get := func(key string) (string, bool) {
		v, ok := l.lookupEnv(consts.ENV_PREFIX + key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get("APP_NAME"); ok {
		cfg.APPInfo.APPName = v
	}
	if v, ok := get("ENV"); ok {
		cfg.APPInfo.ENV = v
	}
	if v, ok := get("HTTP_ADDRESS"); ok {
		if cfg.HTTPServer == nil {
			cfg.HTTPServer = &http_server.HTTPServerConfig{Enabled: true}
		}
		cfg.HTTPServer.Address = v
	}
	if v, ok := get("LOG_LEVEL"); ok {
		if cfg.Logging == nil {
			cfg.Logging = logging.DefaultConfig()
		}
		cfg.Logging.Level = v
	}
	if v, ok := get("LOG_FORMAT"); ok {
		if cfg.Logging == nil {
			cfg.Logging = logging.DefaultConfig()
		}
		cfg.Logging.Format = v
	}

	driver, hasDriver := get("DB_DRIVER")
	dsn, hasDSN := get("DB_DSN")
	if hasDriver || hasDSN {
		if cfg.Gorm == nil {
			cfg.Gorm = &gormdb.Config{Enabled: true}
		}
		if cfg.Gorm.DataSources == nil {
			cfg.Gorm.DataSources = map[string]*gormdb.DataSourceConfig{}
		}
		ds := cfg.Gorm.DataSources["default"]
		if ds == nil {
			ds = &gormdb.DataSourceConfig{}
			cfg.Gorm.DataSources["default"] = ds
		}
		if hasDriver {
			ds.Driver = driver
		}
		if hasDSN {
			ds.DSN = dsn
		}
		if ds.Driver == "" {
			return fmt.Errorf("%sDB_DSN set without a driver", consts.ENV_PREFIX)
		}
	}

	if v, ok := get("REDIS_ADDRESSES"); ok {
		if cfg.Redis == nil {
			cfg.Redis = &redis.Config{Enabled: true}
		}
		var addrs []string
		for _, a := range strings.Split(v, ",") {
			if a = strings.TrimSpace(a); a != "" {
				addrs = append(addrs, a)
			}
		}
		cfg.Redis.Addresses = addrs
	}
	if v, ok := get("REDIS_PASSWORD"); ok && cfg.Redis != nil {
		cfg.Redis.Password = v
	}
	return nil
}
