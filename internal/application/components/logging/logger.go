package logging

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nabeel-hussain/ToDoApp/internal/application/consts"
)

// 包级函数 -> ctxLogger 方法 -> log -> zap
const callerSkip = 3

// Logger 带 context 的结构化日志接口；context 中存在有效 span 时自动附带 trace_id/span_id。
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...zap.Field)
	Info(ctx context.Context, msg string, fields ...zap.Field)
	Warn(ctx context.Context, msg string, fields ...zap.Field)
	Error(ctx context.Context, msg string, fields ...zap.Field)
	Fatal(ctx context.Context, msg string, fields ...zap.Field)
	With(fields ...zap.Field) Logger
	Zap() *zap.Logger
	Sync() error
}

type ctxLogger struct {
	z *zap.Logger
}

func newCtxLogger(z *zap.Logger) *ctxLogger { return &ctxLogger{z: z} }

func (l *ctxLogger) Debug(ctx context.Context, msg string, fields ...zap.Field) {
	l.log(ctx, zapcore.DebugLevel, msg, fields)
}

func (l *ctxLogger) Info(ctx context.Context, msg string, fields ...zap.Field) {
	l.log(ctx, zapcore.InfoLevel, msg, fields)
}

func (l *ctxLogger) Warn(ctx context.Context, msg string, fields ...zap.Field) {
	l.log(ctx, zapcore.WarnLevel, msg, fields)
}

func (l *ctxLogger) Error(ctx context.Context, msg string, fields ...zap.Field) {
	l.log(ctx, zapcore.ErrorLevel, msg, fields)
}

// Fatal 写日志后由 zap 退出进程
func (l *ctxLogger) Fatal(ctx context.Context, msg string, fields ...zap.Field) {
	l.log(ctx, zapcore.FatalLevel, msg, fields)
}

func (l *ctxLogger) With(fields ...zap.Field) Logger {
	return &ctxLogger{z: l.z.With(fields...)}
}

func (l *ctxLogger) Zap() *zap.Logger { return l.z }

func (l *ctxLogger) Sync() error { return l.z.Sync() }

func (l *ctxLogger) log(ctx context.Context, level zapcore.Level, msg string, fields []zap.Field) {
	ce := l.z.Check(level, msg)
	if ce == nil {
		return
	}
	ce.Write(append(traceFields(ctx, fields), fields...)...)
}

func traceFields(ctx context.Context, existing []zap.Field) []zap.Field {
	if ctx == nil {
		return nil
	}
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return nil
	}
	for _, f := range existing {
		if f.Key == consts.KEY_TraceID {
			return nil
		}
	}
	return []zap.Field{
		zap.String(consts.KEY_TraceID, sc.TraceID().String()),
		zap.String(consts.KEY_SpanID, sc.SpanID().String()),
	}
}

func parseLevel(level string) (zapcore.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return zapcore.DebugLevel, nil
	case "INFO", "":
		return zapcore.InfoLevel, nil
	case "WARN", "WARNING":
		return zapcore.WarnLevel, nil
	case "ERROR":
		return zapcore.ErrorLevel, nil
	case "FATAL":
		return zapcore.FatalLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", level)
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}
