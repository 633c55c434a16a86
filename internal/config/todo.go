// Package config holds the biz_config section of the to-do service.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/nabeel-hussain/ToDoApp/internal/consts"
)

type TodoConfig struct {
	Store           string        `yaml:"store" json:"store" toml:"store"`
	DataSource      string        `yaml:"data_source" json:"data_source" toml:"data_source"`
	DefaultPageSize int           `yaml:"default_page_size" json:"default_page_size" toml:"default_page_size"`
	MaxPageSize     int           `yaml:"max_page_size" json:"max_page_size" toml:"max_page_size"`
	CacheEnabled    bool          `yaml:"cache_enabled" json:"cache_enabled" toml:"cache_enabled"`
	CacheTTL        time.Duration `yaml:"cache_ttl" json:"cache_ttl" toml:"cache_ttl"`
	CacheKeyPrefix  string        `yaml:"cache_key_prefix" json:"cache_key_prefix" toml:"cache_key_prefix"`
}

// Default is used when the config file has no biz_config section.
func Default() *TodoConfig {
	return &TodoConfig{
		Store:           consts.STORE_MEMORY,
		DataSource:      "default",
		DefaultPageSize: 10,
		MaxPageSize:     100,
		CacheTTL:        30 * time.Second,
		CacheKeyPrefix:  "todo:tasks",
	}
}

func (c *TodoConfig) Validate() error {
	c.Store = strings.ToLower(strings.TrimSpace(c.Store))
	switch c.Store {
	case "":
		c.Store = consts.STORE_MEMORY
	case consts.STORE_MEMORY, consts.STORE_GORM:
	default:
		return fmt.Errorf("unknown store %q (want memory or gorm)", c.Store)
	}
	if c.Store == consts.STORE_GORM && strings.TrimSpace(c.DataSource) == "" {
		return fmt.Errorf("store=gorm requires data_source")
	}
	if c.MaxPageSize <= 0 {
		c.MaxPageSize = 100
	}
	if c.DefaultPageSize <= 0 {
		c.DefaultPageSize = 10
	}
	if c.DefaultPageSize > c.MaxPageSize {
		return fmt.Errorf("default_page_size %d exceeds max_page_size %d", c.DefaultPageSize, c.MaxPageSize)
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = 30 * time.Second
	}
	if c.CacheKeyPrefix == "" {
		c.CacheKeyPrefix = "todo:tasks"
	}
	return nil
}
