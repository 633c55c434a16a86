package logging

import (
	"context"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu           sync.RWMutex
	bootstrap    = newBootstrapLogger()
	globalLogger Logger = bootstrap
)

// 日志组件启动前使用的 stderr logger，保证框架早期日志不丢失。
func newBootstrapLogger() *ctxLogger {
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), zapcore.AddSync(os.Stderr), zapcore.InfoLevel)
	return newCtxLogger(zap.New(core, zap.AddCaller(), zap.AddCallerSkip(callerSkip)))
}

// SetGlobalLogger 同时替换 zap 全局 logger，框架内部的 zap.L() 调用也随之切换。
func SetGlobalLogger(l Logger) {
	if l == nil {
		return
	}
	mu.Lock()
	globalLogger = l
	mu.Unlock()
	zap.ReplaceGlobals(l.Zap().WithOptions(zap.AddCallerSkip(-callerSkip)))
}

func ResetGlobalLogger() { SetGlobalLogger(bootstrap) }

func L() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return globalLogger
}

func Debug(ctx context.Context, msg string, fields ...zap.Field) { L().Debug(ctx, msg, fields...) }
func Info(ctx context.Context, msg string, fields ...zap.Field)  { L().Info(ctx, msg, fields...) }
func Warn(ctx context.Context, msg string, fields ...zap.Field)  { L().Warn(ctx, msg, fields...) }
func Error(ctx context.Context, msg string, fields ...zap.Field) { L().Error(ctx, msg, fields...) }
func Fatal(ctx context.Context, msg string, fields ...zap.Field) { L().Fatal(ctx, msg, fields...) }

func Debugf(ctx context.Context, format string, args ...any) {
	L().Debug(ctx, fmt.Sprintf(format, args...))
}
func Infof(ctx context.Context, format string, args ...any) {
	L().Info(ctx, fmt.Sprintf(format, args...))
}
func Warnf(ctx context.Context, format string, args ...any) {
	L().Warn(ctx, fmt.Sprintf(format, args...))
}
func Errorf(ctx context.Context, format string, args ...any) {
	L().Error(ctx, fmt.Sprintf(format, args...))
}
