package registry_ext

import (
	appconfig "github.com/nabeel-hussain/ToDoApp/internal/application/config"
	"github.com/nabeel-hussain/ToDoApp/internal/application/core"
	"github.com/nabeel-hussain/ToDoApp/internal/application/registry"
	"github.com/nabeel-hussain/ToDoApp/internal/cache"
)

func init() {
	registry.RegisterAuto(func(cfg *appconfig.AppConfig, c *core.Container) (bool, core.Component, error) {
		biz := bizOf(cfg)
		if !biz.CacheEnabled || cfg.Redis == nil || !cfg.Redis.Enabled {
			return false, nil, nil
		}
		return true, cache.NewRedisPageCache(biz.CacheKeyPrefix, biz.CacheTTL), nil
	})
}
