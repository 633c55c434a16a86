package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/nabeel-hussain/ToDoApp/internal/application/components/logging"
	"github.com/nabeel-hussain/ToDoApp/internal/application/consts"
	"github.com/nabeel-hussain/ToDoApp/internal/application/core"
)

// TelemetryComponent 初始化 OTel trace/metric provider 并设置为全局。
type TelemetryComponent struct {
	*core.BaseComponent
	cfg       *Config
	tp        *sdktrace.TracerProvider
	mp        *sdkmetric.MeterProvider
	shutdowns []func(context.Context) error
}

func NewTelemetryComponent(cfg *Config, deps ...string) *TelemetryComponent {
	cfg.applyDefaults()
	return &TelemetryComponent{
		BaseComponent: core.NewBaseComponent(consts.COMPONENT_TELEMETRY, deps...),
		cfg:           cfg,
	}
}

func (tc *TelemetryComponent) Start(ctx context.Context) error {
	if tc.cfg.ServiceName == "" {
		return errors.New("telemetry service_name must be set")
	}
	res, err := resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithProcess(),
		resource.WithHost(),
		resource.WithAttributes(semconv.ServiceName(tc.cfg.ServiceName)),
	)
	if err != nil {
		return fmt.Errorf("resource init: %w", err)
	}

	spanExp, metricExp, err := tc.exporters(ctx)
	if err != nil {
		tc.runShutdowns(ctx)
		return err
	}

	tpOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(tc.cfg.SampleRatio))),
		sdktrace.WithResource(res),
	}
	if spanExp != nil {
		tpOpts = append(tpOpts, sdktrace.WithBatcher(spanExp))
	}
	tc.tp = sdktrace.NewTracerProvider(tpOpts...)
	tc.shutdowns = append(tc.shutdowns, tc.tp.Shutdown)

	mpOpts := []sdkmetric.Option{sdkmetric.WithResource(res)}
	if metricExp != nil {
		mpOpts = append(mpOpts, sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExp, sdkmetric.WithInterval(tc.cfg.MetricInterval))))
	}
	tc.mp = sdkmetric.NewMeterProvider(mpOpts...)
	tc.shutdowns = append(tc.shutdowns, tc.mp.Shutdown)

	otel.SetTracerProvider(tc.tp)
	otel.SetMeterProvider(tc.mp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logging.Info(ctx, "telemetry component started",
		zap.String("exporter", string(tc.cfg.Exporter)),
		zap.Float64("sample_ratio", tc.cfg.SampleRatio),
		zap.String("service_name", tc.cfg.ServiceName),
	)
	return tc.BaseComponent.Start(ctx)
}

func (tc *TelemetryComponent) exporters(ctx context.Context) (sdktrace.SpanExporter, sdkmetric.Exporter, error) {
	switch tc.cfg.Exporter {
	case ExporterNone:
		return nil, nil, nil
	case ExporterStdout:
		w, err := tc.stdoutWriter()
		if err != nil {
			return nil, nil, err
		}
		traceOpts := []stdouttrace.Option{stdouttrace.WithWriter(w)}
		if tc.cfg.StdoutPretty {
			traceOpts = append(traceOpts, stdouttrace.WithPrettyPrint())
		}
		se, err := stdouttrace.New(traceOpts...)
		if err != nil {
			return nil, nil, fmt.Errorf("trace exporter init: %w", err)
		}
		me, err := stdoutmetric.New(stdoutmetric.WithWriter(w))
		if err != nil {
			return nil, nil, fmt.Errorf("metric exporter init: %w", err)
		}
		return se, me, nil
	case ExporterOTLP:
		o := tc.cfg.OTLP
		if o == nil || o.Endpoint == "" {
			return nil, nil, errors.New("otlp exporter selected but otlp.endpoint empty")
		}
		traceOpts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(o.Endpoint), otlptracegrpc.WithTimeout(o.Timeout)}
		metricOpts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(o.Endpoint), otlpmetricgrpc.WithTimeout(o.Timeout)}
		if o.Insecure {
			traceOpts = append(traceOpts, otlptracegrpc.WithInsecure())
			metricOpts = append(metricOpts, otlpmetricgrpc.WithInsecure())
		} else {
			traceOpts = append(traceOpts, otlptracegrpc.WithDialOption(grpc.WithBlock()))
			metricOpts = append(metricOpts, otlpmetricgrpc.WithDialOption(grpc.WithBlock()))
		}
		se, err := otlptracegrpc.New(ctx, traceOpts...)
		if err != nil {
			return nil, nil, fmt.Errorf("trace exporter init: %w", err)
		}
		me, err := otlpmetricgrpc.New(ctx, metricOpts...)
		if err != nil {
			_ = se.Shutdown(ctx)
			return nil, nil, fmt.Errorf("metric exporter init: %w", err)
		}
		return se, me, nil
	}
	return nil, nil, fmt.Errorf("unsupported exporter: %s", tc.cfg.Exporter)
}

func (tc *TelemetryComponent) stdoutWriter() (io.Writer, error) {
	if tc.cfg.StdoutFile == "" {
		return os.Stdout, nil
	}
	f, err := os.OpenFile(tc.cfg.StdoutFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open telemetry stdout file: %w", err)
	}
	// 文件最后关闭：shutdowns 逆序执行
	tc.shutdowns = append(tc.shutdowns, func(context.Context) error { return f.Close() })
	return f, nil
}

func (tc *TelemetryComponent) runShutdowns(ctx context.Context) error {
	var errs []error
	for i := len(tc.shutdowns) - 1; i >= 0; i-- {
		sctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := tc.shutdowns[i](sctx); err != nil {
			errs = append(errs, err)
		}
		cancel()
	}
	tc.shutdowns = nil
	return errors.Join(errs...)
}

func (tc *TelemetryComponent) Stop(ctx context.Context) error {
	defer tc.BaseComponent.Stop(ctx)
	if err := tc.runShutdowns(ctx); err != nil {
		logging.Warn(ctx, "telemetry shutdown error", zap.Error(err))
		return err
	}
	logging.Info(ctx, "telemetry stopped")
	return nil
}

func (tc *TelemetryComponent) HealthCheck() error {
	if err := tc.BaseComponent.HealthCheck(); err != nil {
		return err
	}
	if tc.tp == nil || tc.mp == nil {
		return errors.New("telemetry providers not initialized")
	}
	return nil
}

func (tc *TelemetryComponent) Tracer(name string) trace.Tracer {
	if tc.tp == nil {
		return otel.Tracer(name)
	}
	return tc.tp.Tracer(name)
}
