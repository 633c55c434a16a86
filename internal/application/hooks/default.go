package hooks

import (
	"context"

	"go.uber.org/zap"
)

var globalHookManager = NewManager()

func init() {
	defaults := []struct {
		name  string
		phase Phase
		msg   string
	}{
		{"log_startup", BeforeStart, "application is starting"},
		{"log_started", AfterStart, "application started"},
		{"log_shutdown", BeforeShutdown, "application is shutting down"},
		{"log_shutdown_complete", AfterShutdown, "application shutdown completed"},
	}
	for _, d := range defaults {
		msg := d.msg
		if err := RegisterHook(d.name, d.phase, func(ctx context.Context) error {
			zap.L().Info(msg)
			return nil
		}, 100); err != nil {
			zap.L().Warn("register default hook failed", zap.String("hook", d.name), zap.Error(err))
		}
	}
}

func RegisterHook(name string, phase Phase, fn HookFunc, priority int) error {
	return globalHookManager.Register(&Hook{Name: name, Phase: phase, Function: fn, Priority: priority})
}

func ExecuteHooks(ctx context.Context, phase Phase) error {
	return globalHookManager.Execute(ctx, phase)
}

func GetGlobalHookManager() *Manager { return globalHookManager }
