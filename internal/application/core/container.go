package core

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Container 按名字保存组件实例，并负责依赖排序。
type Container struct {
	mu         sync.RWMutex
	components map[string]Component
	configs    map[string]any
}

func NewContainer() *Container {
	return &Container{
		components: make(map[string]Component),
		configs:    make(map[string]any),
	}
}

func (c *Container) Register(name string, component Component) error {
	if name == "" || component == nil {
		return fmt.Errorf("register: empty name or nil component")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.components[name]; exists {
		return fmt.Errorf("component %s already registered", name)
	}
	c.components[name] = component
	return nil
}

func (c *Container) Resolve(name string) (Component, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	comp, ok := c.components[name]
	if !ok {
		return nil, fmt.Errorf("component %s not found", name)
	}
	return comp, nil
}

// ResolveAs 取出组件并断言为期望类型。
func ResolveAs[T any](c *Container, name string) (T, error) {
	var zero T
	comp, err := c.Resolve(name)
	if err != nil {
		return zero, err
	}
	typed, ok := comp.(T)
	if !ok {
		return zero, fmt.Errorf("component %s has type %T", name, comp)
	}
	return typed, nil
}

// Replace 替换尚未启动的组件，测试中常用。
func (c *Container) Replace(name string, component Component) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	existing, ok := c.components[name]
	if !ok {
		return fmt.Errorf("component %s not registered", name)
	}
	if existing.IsActive() {
		return fmt.Errorf("component %s is active; cannot replace", name)
	}
	c.components[name] = component
	return nil
}

func (c *Container) ListRegistered() map[string]Component {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]Component, len(c.components))
	for k, v := range c.components {
		out[k] = v
	}
	return out
}

func (c *Container) SetConfig(name string, cfg any) {
	c.mu.Lock()
	c.configs[name] = cfg
	c.mu.Unlock()
}

func (c *Container) GetConfig(name string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.configs[name]
	return v, ok
}

// SortComponentsByDependencies 深度优先拓扑排序；名字先排序，保证结果稳定。
func (c *Container) SortComponentsByDependencies() ([]Component, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	const (
		unseen = iota
		visiting
		done
	)
	state := make(map[string]int, len(c.components))
	ordered := make([]Component, 0, len(c.components))

	var visit func(name string, path []string) error
	visit = func(name string, path []string) error {
		switch state[name] {
		case visiting:
			return fmt.Errorf("circular dependency: %s -> %s", strings.Join(path, " -> "), name)
		case done:
			return nil
		}
		comp, ok := c.components[name]
		if !ok {
			return fmt.Errorf("component %s not found (required by %s)", name, last(path))
		}
		state[name] = visiting
		for _, dep := range comp.Dependencies() {
			if err := visit(dep, append(path, name)); err != nil {
				return err
			}
		}
		state[name] = done
		ordered = append(ordered, comp)
		return nil
	}

	names := make([]string, 0, len(c.components))
	for n := range c.components {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		if err := visit(n, nil); err != nil {
			return nil, err
		}
	}
	return ordered, nil
}

// ValidateDependencies 先报告所有缺失依赖，再做环检测。
func (c *Container) ValidateDependencies() ([]Component, error) {
	c.mu.RLock()
	var missing []string
	for name, comp := range c.components {
		var lack []string
		for _, dep := range comp.Dependencies() {
			if _, ok := c.components[dep]; !ok {
				lack = append(lack, dep)
			}
		}
		if len(lack) > 0 {
			missing = append(missing, fmt.Sprintf("%s -> [%s]", name, strings.Join(lack, ",")))
		}
	}
	c.mu.RUnlock()
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("missing component dependencies: %s", strings.Join(missing, "; "))
	}
	return c.SortComponentsByDependencies()
}

func last(path []string) string {
	if len(path) == 0 {
		return "<root>"
	}
	return path[len(path)-1]
}
