package application

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/nabeel-hussain/ToDoApp/internal/application/autowire"
	"github.com/nabeel-hussain/ToDoApp/internal/application/config"
	"github.com/nabeel-hussain/ToDoApp/internal/application/core"
	"github.com/nabeel-hussain/ToDoApp/internal/application/hooks"
	"github.com/nabeel-hussain/ToDoApp/internal/application/registry"
)

type App struct {
	container        *core.Container
	lifecycleManager *core.LifecycleManager
	configManager    *config.ConfigManager

	bootOnce sync.Once
	bootErr  error

	shutdownTimeout time.Duration
}

type Option func(*App)

// WithBizConfig 业务配置指针，biz_config 小节会解码到其中。
func WithBizConfig(biz any) Option {
	return func(a *App) { a.configManager.SetBizConfig(biz) }
}

func WithShutdownTimeout(d time.Duration) Option {
	return func(a *App) {
		if d > 0 {
			a.shutdownTimeout = d
		}
	}
}

func NewApp(env string, configPath string, opts ...Option) *App {
	if p, err := filepath.Abs(configPath); err == nil {
		configPath = p
	}
	container := core.NewContainer()
	app := &App{
		container:        container,
		lifecycleManager: core.NewLifecycleManagerWithManager(container, hooks.GetGlobalHookManager()),
		configManager:    config.NewConfigManager(env, configPath),
		shutdownTimeout:  30 * time.Second,
	}
	for _, opt := range opts {
		opt(app)
	}
	app.lifecycleManager.SetTimeout(app.shutdownTimeout)
	return app
}

// Boot 加载配置、构建并注入全部组件，只执行一次。
func (app *App) Boot() error {
	app.bootOnce.Do(func() {
		if err := app.configManager.LoadConfig(); err != nil {
			app.bootErr = fmt.Errorf("load config failed: %w", err)
			return
		}
		cfg := app.configManager.GetConfig()
		if err := registry.BuildAndRegisterAll(cfg, app.container); err != nil {
			app.bootErr = fmt.Errorf("register components failed: %w", err)
			return
		}
		if err := autowire.InjectAll(app.container); err != nil {
			app.bootErr = err
			return
		}
		if _, err := app.container.ValidateDependencies(); err != nil {
			app.bootErr = err
		}
	})
	return app.bootErr
}

func (app *App) Container() *core.Container { return app.container }

func (app *App) GetComponent(name string) (core.Component, error) {
	return app.container.Resolve(name)
}

func (app *App) GetConfig() *config.AppConfig { return app.configManager.GetConfig() }

func (app *App) BizConfig() any { return app.configManager.BizConfig() }

func (app *App) AddHook(name string, phase hooks.Phase, fn hooks.HookFunc, priority int) error {
	return app.lifecycleManager.AddHook(name, phase, fn, priority)
}

// Run 监听 SIGINT/SIGTERM；第二次信号直接退出进程。
func (app *App) Run() error {
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- app.RunWithContext(ctx) }()

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		zap.L().Info("signal received, shutting down", zap.String("signal", sig.String()), zap.Duration("timeout", app.shutdownTimeout))
		cancel()
	}

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		zap.L().Warn("second signal received, forcing exit")
		os.Exit(1)
	case <-time.After(app.shutdownTimeout):
		zap.L().Error("graceful shutdown timed out, forcing exit")
		os.Exit(1)
	}
	return nil
}

// RunWithContext 启动组件后阻塞直到 ctx 结束，然后优雅停止。
func (app *App) RunWithContext(ctx context.Context) error {
	if err := app.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	stopCtx, cancel := context.WithTimeout(context.Background(), app.shutdownTimeout)
	defer cancel()
	app.Shutdown(stopCtx)
	return nil
}

// Start 启动全部组件后立即返回，适合测试与嵌入式使用。
func (app *App) Start(ctx context.Context) error {
	if err := app.Boot(); err != nil {
		return err
	}
	return app.lifecycleManager.StartAll(ctx)
}

func (app *App) Shutdown(ctx context.Context) {
	app.lifecycleManager.StopAll(ctx)
}
