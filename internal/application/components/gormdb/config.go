package gormdb

import "time"

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Config 多数据源 gorm 配置，每个数据源可独立选择 mysql 或 postgres。
type Config struct {
	Enabled       bool                         `yaml:"enabled" json:"enabled" toml:"enabled"`
	DataSources   map[string]*DataSourceConfig `yaml:"data_sources" json:"data_sources" toml:"data_sources"`
	LogLevel      string                       `yaml:"log_level" json:"log_level" toml:"log_level"` // silent|error|warn|info
	SlowThreshold time.Duration                `yaml:"slow_threshold" json:"slow_threshold" toml:"slow_threshold"`
}

type DataSourceConfig struct {
	Driver string `yaml:"driver" json:"driver" toml:"driver"`
	DSN    string `yaml:"dsn" json:"dsn" toml:"dsn"`

	Host     string            `yaml:"host" json:"host" toml:"host"`
	Port     int               `yaml:"port" json:"port" toml:"port"`
	User     string            `yaml:"user" json:"user" toml:"user"`
	Password string            `yaml:"password" json:"password" toml:"password"`
	Database string            `yaml:"database" json:"database" toml:"database"`
	Params   map[string]string `yaml:"params" json:"params" toml:"params"`

	MaxOpenConns int           `yaml:"max_open_conns" json:"max_open_conns" toml:"max_open_conns"`
	MaxIdleConns int           `yaml:"max_idle_conns" json:"max_idle_conns" toml:"max_idle_conns"`
	ConnMaxLife  time.Duration `yaml:"conn_max_life" json:"conn_max_life" toml:"conn_max_life"`
	ConnMaxIdle  time.Duration `yaml:"conn_max_idle" json:"conn_max_idle" toml:"conn_max_idle"`
	PingOnStart  bool          `yaml:"ping_on_start" json:"ping_on_start" toml:"ping_on_start"`

	SkipDefaultTransaction bool `yaml:"skip_default_tx" json:"skip_default_tx" toml:"skip_default_tx"`
	PrepareStmt            bool `yaml:"prepare_stmt" json:"prepare_stmt" toml:"prepare_stmt"`

	// 启动时按文件名字典序执行目录下的 .sql 文件（不递归）
	MigrateEnabled bool   `yaml:"migrate_enabled" json:"migrate_enabled" toml:"migrate_enabled"`
	MigrateDir     string `yaml:"migrate_dir" json:"migrate_dir" toml:"migrate_dir"`
}
