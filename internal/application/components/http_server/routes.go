package http_server

import (
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/nabeel-hussain/ToDoApp/internal/application/core"
)

// RouteRegisterFunc 在服务启动时被调用，可从容器中取出业务组件挂载路由。
type RouteRegisterFunc func(r chi.Router, c *core.Container) error

var (
	routesMu   sync.Mutex
	registrars []RouteRegisterFunc
)

// RegisterRoutes 通常在业务 api 包的 init() 中调用。
func RegisterRoutes(fn RouteRegisterFunc) {
	if fn == nil {
		return
	}
	routesMu.Lock()
	registrars = append(registrars, fn)
	routesMu.Unlock()
}

func snapshot() []RouteRegisterFunc {
	routesMu.Lock()
	defer routesMu.Unlock()
	out := make([]RouteRegisterFunc, len(registrars))
	copy(out, registrars)
	return out
}
