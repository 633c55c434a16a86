package registry

import (
	"sync"

	"go.uber.org/zap"

	"github.com/nabeel-hussain/ToDoApp/internal/application/core"
)

var (
	runtimeDepExt   = map[string][]string{}
	runtimeDepExtMu sync.Mutex
)

// ExtendRuntimeDependencies 声明 target 在运行期额外依赖 deps（只影响启动/停止顺序）。
// 需在 BuildAndRegisterAll 之前调用，通常放在业务包的 init()。
func ExtendRuntimeDependencies(target string, deps ...string) {
	if target == "" || len(deps) == 0 {
		return
	}
	runtimeDepExtMu.Lock()
	runtimeDepExt[target] = append(runtimeDepExt[target], deps...)
	runtimeDepExtMu.Unlock()
}

// applyRuntimeDepExtensions 只追加已注册的依赖，未启用的组件不会造成缺失依赖。
func applyRuntimeDepExtensions(c *core.Container) {
	runtimeDepExtMu.Lock()
	defer runtimeDepExtMu.Unlock()
	for target, extra := range runtimeDepExt {
		comp, err := c.Resolve(target)
		if err != nil {
			zap.L().Debug("runtime dep extension target not registered", zap.String("target", target))
			continue
		}
		adder, ok := comp.(interface{ AddDependencies(...string) })
		if !ok {
			zap.L().Warn("component does not support AddDependencies", zap.String("target", target))
			continue
		}
		var present []string
		for _, d := range extra {
			if _, err := c.Resolve(d); err == nil {
				present = append(present, d)
			}
		}
		adder.AddDependencies(present...)
	}
}
