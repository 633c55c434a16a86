package http_server

import "time"

type HTTPServerConfig struct {
	Enabled         bool          `yaml:"enabled" json:"enabled" toml:"enabled"`
	Address         string        `yaml:"address" json:"address" toml:"address"`
	ReadTimeout     time.Duration `yaml:"read_timeout" json:"read_timeout" toml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" json:"write_timeout" toml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" json:"idle_timeout" toml:"idle_timeout"`
	GracefulTimeout time.Duration `yaml:"graceful_timeout" json:"graceful_timeout" toml:"graceful_timeout"`
	RequestTimeout  time.Duration `yaml:"request_timeout" json:"request_timeout" toml:"request_timeout"`
	EnableHealth    bool          `yaml:"enable_health" json:"enable_health" toml:"enable_health"`
	// 允许的跨域来源，为空则不输出 CORS 头
	CORSOrigins []string `yaml:"cors_origins" json:"cors_origins" toml:"cors_origins"`
	// 由 app_info.app_name 注入
	ServiceName string `yaml:"-" json:"-" toml:"-"`
}

func (c *HTTPServerConfig) applyDefaults() {
	if c.Address == "" {
		c.Address = ":8080"
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 15 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 15 * time.Second
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 60 * time.Second
	}
	if c.GracefulTimeout == 0 {
		c.GracefulTimeout = 10 * time.Second
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = 30 * time.Second
	}
	if c.ServiceName == "" {
		c.ServiceName = "todo-api"
	}
}
