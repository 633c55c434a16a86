package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/nabeel-hussain/ToDoApp/internal/application/components/http_server"
	"github.com/nabeel-hussain/ToDoApp/internal/application/components/prometheus"
	"github.com/nabeel-hussain/ToDoApp/internal/application/consts"
	"github.com/nabeel-hussain/ToDoApp/internal/application/core"
	bizConsts "github.com/nabeel-hussain/ToDoApp/internal/consts"
	"github.com/nabeel-hussain/ToDoApp/internal/controller"
)

// Unified route registration for the to-do service.
func init() {
	http_server.RegisterRoutes(func(r chi.Router, c *core.Container) error {
		ctrl, err := core.ResolveAs[*controller.TaskController](c, bizConsts.COMP_CTRL_TASK)
		if err != nil {
			return err
		}
		Mount(r, ctrl)

		// scrape endpoint on the API port when prometheus has no listener of its own
		if pc, err := core.ResolveAs[*prometheus.Component](c, consts.COMPONENT_PROMETHEUS); err == nil && !pc.HasListener() {
			r.Handle(pc.Path(), pc.Handler())
		}
		return nil
	})
}

func Mount(r chi.Router, ctrl *controller.TaskController) {
	r.Route(bizConsts.API_PREFIX, func(r chi.Router) {
		r.Get("/Get", ctrl.List)
		r.Post("/Create", ctrl.Create)
		r.Put("/Update", ctrl.Update)
		r.Delete("/Delete", ctrl.Delete)
		r.Get("/GetById", ctrl.GetByID)
		r.Get("/GetAll", ctrl.GetAll)
	})
}
