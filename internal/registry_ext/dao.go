package registry_ext

import (
	"fmt"

	appconfig "github.com/nabeel-hussain/ToDoApp/internal/application/config"
	"github.com/nabeel-hussain/ToDoApp/internal/application/core"
	"github.com/nabeel-hussain/ToDoApp/internal/application/registry"
	bizConsts "github.com/nabeel-hussain/ToDoApp/internal/consts"
	"github.com/nabeel-hussain/ToDoApp/internal/dao"
)

func init() {
	registry.RegisterAuto(func(cfg *appconfig.AppConfig, c *core.Container) (bool, core.Component, error) {
		biz := bizOf(cfg)
		if biz.Store != bizConsts.STORE_GORM {
			return true, dao.NewMemoryTaskDao(), nil
		}
		if cfg.Gorm == nil || !cfg.Gorm.Enabled {
			return true, nil, fmt.Errorf("biz_config.store=gorm but gorm component is disabled")
		}
		// datasource name comes from config -> gorm.data_sources
		return true, dao.NewTaskDao(biz.DataSource), nil
	})
}
