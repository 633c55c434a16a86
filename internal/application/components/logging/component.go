package logging

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/nabeel-hussain/ToDoApp/internal/application/consts"
	"github.com/nabeel-hussain/ToDoApp/internal/application/core"
)

// LoggerComponent 根据配置构建 zap logger，启动后替换全局 logger。
type LoggerComponent struct {
	*core.BaseComponent
	config *LoggingConfig
	logger *ctxLogger
	closer func() error
}

func NewLoggerComponent(cfg *LoggingConfig) *LoggerComponent {
	return &LoggerComponent{
		BaseComponent: core.NewBaseComponent(consts.COMPONENT_LOGGING),
		config:        cfg,
	}
}

func (lc *LoggerComponent) Start(ctx context.Context) error {
	level, err := parseLevel(lc.config.Level)
	if err != nil {
		return err
	}
	ws, closer, err := lc.buildWriteSyncer()
	if err != nil {
		return fmt.Errorf("failed to create write syncer: %w", err)
	}
	lc.closer = closer

	var enc zapcore.Encoder
	if strings.EqualFold(lc.config.Format, "console") {
		enc = zapcore.NewConsoleEncoder(encoderConfig())
	} else {
		enc = zapcore.NewJSONEncoder(encoderConfig())
	}
	z := zap.New(zapcore.NewCore(enc, ws, level),
		zap.AddCaller(),
		zap.AddCallerSkip(callerSkip),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	lc.logger = newCtxLogger(z)
	SetGlobalLogger(lc.logger)

	if err := lc.BaseComponent.Start(ctx); err != nil {
		return err
	}
	Info(ctx, "logger component started",
		zap.String("level", lc.config.Level),
		zap.String("format", lc.config.Format),
		zap.String("output", lc.config.Output),
	)
	return nil
}

func (lc *LoggerComponent) Stop(ctx context.Context) error {
	if lc.logger != nil {
		Info(ctx, "logger component stopping")
		_ = lc.logger.Sync()
		ResetGlobalLogger()
	}
	if lc.closer != nil {
		_ = lc.closer()
	}
	return lc.BaseComponent.Stop(ctx)
}

func (lc *LoggerComponent) HealthCheck() error {
	if err := lc.BaseComponent.HealthCheck(); err != nil {
		return err
	}
	if lc.logger == nil {
		return fmt.Errorf("logger is not initialized")
	}
	return nil
}

func (lc *LoggerComponent) Logger() Logger { return lc.logger }

func (lc *LoggerComponent) buildWriteSyncer() (zapcore.WriteSyncer, func() error, error) {
	switch strings.ToLower(lc.config.Output) {
	case "stdout", "":
		return zapcore.AddSync(os.Stdout), nil, nil
	case "stderr":
		return zapcore.AddSync(os.Stderr), nil, nil
	case "file":
		fc := lc.config.FileConfig
		if fc == nil {
			return nil, nil, fmt.Errorf("file_config is required when output is 'file'")
		}
		if err := os.MkdirAll(fc.Dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		return lc.fileSyncer(filepath.Join(fc.Dir, fc.Filename+".log"))
	default:
		// 非关键字当作文件路径
		return lc.fileSyncer(lc.config.Output)
	}
}

func (lc *LoggerComponent) fileSyncer(path string) (zapcore.WriteSyncer, func() error, error) {
	if rc := lc.config.RotateConfig; rc != nil && rc.Enabled {
		lj := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    rc.MaxSizeMB,
			MaxAge:     rc.MaxAgeDays,
			MaxBackups: rc.MaxBackups,
			Compress:   rc.Compress,
			LocalTime:  true,
		}
		return zapcore.AddSync(lj), lj.Close, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return zapcore.AddSync(f), f.Close, nil
}
