package registry_ext

import (
	appconfig "github.com/nabeel-hussain/ToDoApp/internal/application/config"
	"github.com/nabeel-hussain/ToDoApp/internal/application/core"
	"github.com/nabeel-hussain/ToDoApp/internal/application/registry"
	"github.com/nabeel-hussain/ToDoApp/internal/service"
)

func init() {
	registry.RegisterAuto(func(cfg *appconfig.AppConfig, c *core.Container) (bool, core.Component, error) {
		return true, service.NewTaskService(bizOf(cfg)), nil
	})
}
