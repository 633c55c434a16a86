package telemetry

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
)

func TestStartWithoutExporterSetsGlobalProvider(t *testing.T) {
	tc := NewTelemetryComponent(&Config{Enabled: true, ServiceName: "todo-test", Exporter: ExporterNone})
	ctx := context.Background()
	if err := tc.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	_, span := otel.Tracer("test").Start(ctx, "op")
	if !span.SpanContext().IsValid() {
		t.Fatalf("expected a recording span from the sdk provider")
	}
	span.End()
	if err := tc.HealthCheck(); err != nil {
		t.Fatalf("health: %v", err)
	}
	if err := tc.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}
}

func TestConfigValidation(t *testing.T) {
	cases := []struct {
		name string
		cfg  *Config
	}{
		{"missing service name", &Config{Enabled: true, Exporter: ExporterNone}},
		{"otlp without endpoint", &Config{Enabled: true, ServiceName: "x", Exporter: ExporterOTLP}},
		{"unknown exporter", &Config{Enabled: true, ServiceName: "x", Exporter: "zipkin"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			comp := NewTelemetryComponent(tc.cfg)
			if err := comp.Start(context.Background()); err == nil {
				t.Fatalf("expected start error")
			}
		})
	}
}
