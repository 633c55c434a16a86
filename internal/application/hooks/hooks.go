package hooks

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

type HookFunc func(ctx context.Context) error

// Phase 生命周期阶段
type Phase string

const (
	BeforeStart    Phase = "before_start"
	AfterStart     Phase = "after_start"
	BeforeShutdown Phase = "before_shutdown"
	AfterShutdown  Phase = "after_shutdown"
)

var validPhases = map[Phase]struct{}{
	BeforeStart:    {},
	AfterStart:     {},
	BeforeShutdown: {},
	AfterShutdown:  {},
}

type Hook struct {
	Name     string
	Phase    Phase
	Function HookFunc
	Priority int // 数值越小越先执行
}

// Manager 按阶段保存钩子；同优先级按注册顺序执行。
type Manager struct {
	mu    sync.RWMutex
	hooks map[Phase][]*Hook
}

func NewManager() *Manager {
	return &Manager{hooks: make(map[Phase][]*Hook)}
}

func (m *Manager) Register(h *Hook) error {
	if h == nil || h.Function == nil {
		return fmt.Errorf("hook and hook function must not be nil")
	}
	if _, ok := validPhases[h.Phase]; !ok {
		return fmt.Errorf("invalid hook phase: %s", h.Phase)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.hooks[h.Phase] {
		if existing.Name == h.Name {
			return fmt.Errorf("hook %s already registered for %s", h.Name, h.Phase)
		}
	}
	list := append(m.hooks[h.Phase], h)
	sort.SliceStable(list, func(i, j int) bool { return list[i].Priority < list[j].Priority })
	m.hooks[h.Phase] = list
	return nil
}

// Execute 依次执行某阶段全部钩子，遇错即停。
func (m *Manager) Execute(ctx context.Context, phase Phase) error {
	m.mu.RLock()
	list := make([]*Hook, len(m.hooks[phase]))
	copy(list, m.hooks[phase])
	m.mu.RUnlock()

	for _, h := range list {
		if err := h.Function(ctx); err != nil {
			return fmt.Errorf("hook %s failed: %w", h.Name, err)
		}
	}
	return nil
}

func (m *Manager) Count(phase Phase) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.hooks[phase])
}
