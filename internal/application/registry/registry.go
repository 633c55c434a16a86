package registry

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/nabeel-hussain/ToDoApp/internal/application/config"
	"github.com/nabeel-hussain/ToDoApp/internal/application/core"
)

// BuilderFunc 返回 (enabled, component, error)；enabled=false 表示跳过注册。
type BuilderFunc func(cfg *config.AppConfig, c *core.Container) (bool, core.Component, error)

type Builder struct {
	Name string
	Fn   BuilderFunc
	Auto bool     // 组件名与构建期依赖从实例推断
	Deps []string // 构建期依赖，只影响构建顺序

	prebuilt   core.Component
	preEnabled bool
}

var (
	mu       sync.Mutex
	builders []*Builder
)

func findBuilder(name string) *Builder {
	for _, b := range builders {
		if b.Name == name {
			return b
		}
	}
	return nil
}

// Register 显式命名的构建器
func Register(name string, fn BuilderFunc) {
	RegisterWithDeps(name, nil, fn)
}

// RegisterWithDeps 显式命名并声明构建期依赖
func RegisterWithDeps(name string, deps []string, fn BuilderFunc) {
	if name == "" {
		panic("registry: empty name in Register")
	}
	mu.Lock()
	defer mu.Unlock()
	if findBuilder(name) != nil {
		panic("registry: duplicate builder name " + name)
	}
	builders = append(builders, &Builder{Name: name, Fn: fn, Deps: deps})
}

// RegisterAuto 构建器产出的组件 Name() 必须稳定且非空；依赖由 `infra:"dep:<name>"` 标签推断。
func RegisterAuto(fn BuilderFunc) {
	mu.Lock()
	builders = append(builders, &Builder{Auto: true, Fn: fn})
	mu.Unlock()
}

// BuildAndRegisterAll
//  1. auto 构建器预构建一次，推断名字并缓存实例
//  2. 从结构体标签推断构建期依赖
//  3. 拓扑排序
//  4. 依次构建并注册到容器，最后应用运行期依赖扩展
func BuildAndRegisterAll(cfg *config.AppConfig, c *core.Container) error {
	mu.Lock()
	defer mu.Unlock()

	for _, b := range builders {
		if !b.Auto {
			continue
		}
		b.prebuilt, b.preEnabled = nil, false
		enabled, comp, err := b.Fn(cfg, c)
		if err != nil {
			return fmt.Errorf("auto builder failed: %w", err)
		}
		if !enabled || comp == nil {
			continue
		}
		name := comp.Name()
		if name == "" {
			return fmt.Errorf("auto builder produced unnamed component")
		}
		if existing := findBuilder(name); existing != nil && existing != b {
			return fmt.Errorf("duplicate inferred name: %s", name)
		}
		b.Name, b.prebuilt, b.preEnabled = name, comp, true
		b.Deps = inferTagDependencies(comp)
	}

	ordered, err := topoSortBuilders(builders)
	if err != nil {
		return err
	}
	for _, b := range ordered {
		var (
			enabled bool
			comp    core.Component
		)
		if b.Auto {
			enabled, comp = b.preEnabled, b.prebuilt
		} else {
			enabled, comp, err = b.Fn(cfg, c)
			if err != nil {
				return fmt.Errorf("build %s failed: %w", b.Name, err)
			}
		}
		if !enabled || comp == nil {
			continue
		}
		if err := c.Register(b.Name, comp); err != nil {
			return fmt.Errorf("register %s failed: %w", b.Name, err)
		}
	}
	applyRuntimeDepExtensions(c)
	return nil
}

func inferTagDependencies(comp core.Component) []string {
	v := reflect.ValueOf(comp)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	t := v.Type()
	seen := map[string]struct{}{}
	var out []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}
		tag := f.Tag.Get("infra")
		if !strings.HasPrefix(tag, "dep:") {
			continue
		}
		name := strings.TrimSuffix(strings.TrimSpace(strings.TrimPrefix(tag, "dep:")), "?")
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// topoSortBuilders Kahn 算法；未知依赖忽略，同层按名字排序保证稳定。
func topoSortBuilders(list []*Builder) ([]*Builder, error) {
	byName := map[string]*Builder{}
	inDeg := map[string]int{}
	adj := map[string][]string{}
	for _, b := range list {
		if b.Name != "" {
			byName[b.Name] = b
			inDeg[b.Name] = 0
		}
	}
	for _, b := range list {
		if b.Name == "" {
			continue
		}
		for _, d := range b.Deps {
			if _, ok := byName[d]; !ok {
				continue
			}
			adj[d] = append(adj[d], b.Name)
			inDeg[b.Name]++
		}
	}
	var ready []string
	for n, d := range inDeg {
		if d == 0 {
			ready = append(ready, n)
		}
	}
	sort.Strings(ready)
	var ordered []*Builder
	for len(ready) > 0 {
		n := ready[0]
		ready = ready[1:]
		ordered = append(ordered, byName[n])
		for _, next := range adj[n] {
			inDeg[next]--
			if inDeg[next] == 0 {
				ready = append(ready, next)
			}
		}
		sort.Strings(ready)
	}
	if len(ordered) != len(byName) {
		var cyc []string
		for n, d := range inDeg {
			if d > 0 {
				cyc = append(cyc, n)
			}
		}
		sort.Strings(cyc)
		return nil, fmt.Errorf("registry: cyclic builder deps: %v", cyc)
	}
	return ordered, nil
}
