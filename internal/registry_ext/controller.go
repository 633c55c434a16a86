package registry_ext

import (
	appconfig "github.com/nabeel-hussain/ToDoApp/internal/application/config"
	"github.com/nabeel-hussain/ToDoApp/internal/application/consts"
	"github.com/nabeel-hussain/ToDoApp/internal/application/core"
	"github.com/nabeel-hussain/ToDoApp/internal/application/registry"
	bizConsts "github.com/nabeel-hussain/ToDoApp/internal/consts"
	"github.com/nabeel-hussain/ToDoApp/internal/controller"
)

func init() {
	registry.RegisterAuto(func(cfg *appconfig.AppConfig, c *core.Container) (bool, core.Component, error) {
		return true, controller.NewTaskController(bizOf(cfg)), nil
	})
	// routes resolve the controller while the server starts
	registry.ExtendRuntimeDependencies(consts.COMPONENT_HTTP_SERVER, bizConsts.COMP_CTRL_TASK)
}
