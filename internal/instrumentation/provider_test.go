package instrumentation

import (
	"context"
	"testing"
)

func testConfig(metricsExporter, tracingExporter string) Config {
	return Config{
		ServiceName:     "workspace-mcp-test",
		ServiceVersion:  "0.0.0-test",
		Enabled:         true,
		MetricsExporter: metricsExporter,
		TracingExporter: tracingExporter,
		SampleRatio:     0.1,
	}
}

func TestNewProviderDisabled(t *testing.T) {
	ctx := context.Background()

	p, err := NewProvider(ctx, Config{Enabled: false})
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}

	if p.Enabled() {
		t.Error("provider reports enabled for a disabled config")
	}
	if p.Metrics() == nil {
		t.Error("Metrics() must be non-nil even when disabled")
	}
	if p.Tracer("test") == nil {
		t.Error("Tracer() must hand out a no-op tracer when disabled")
	}
	if err := p.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown() of a disabled provider error = %v", err)
	}
}

func TestNewProviderPrometheus(t *testing.T) {
	ctx := context.Background()

	p, err := NewProvider(ctx, testConfig(ExporterPrometheus, ExporterNone))
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}
	defer func() { _ = p.Shutdown(ctx) }()

	if !p.Enabled() {
		t.Error("provider should be enabled")
	}
	if p.Metrics() == nil {
		t.Error("Metrics() = nil")
	}
	if p.Tracer("test") == nil {
		t.Error("Tracer() = nil")
	}
}

func TestNewProviderRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"unknown metrics exporter", testConfig("graphite", ExporterNone)},
		{"unknown tracing exporter", testConfig(ExporterPrometheus, "zipkin")},
		{"otlp metrics without endpoint", testConfig(ExporterOTLP, ExporterNone)},
		{"otlp tracing without endpoint", testConfig(ExporterPrometheus, ExporterOTLP)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewProvider(context.Background(), tt.cfg); err == nil {
				t.Error("NewProvider() accepted an invalid config")
			}
		})
	}
}

func TestProviderShutdownTwice(t *testing.T) {
	ctx := context.Background()

	p, err := NewProvider(ctx, testConfig(ExporterPrometheus, ExporterNone))
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}

	if err := p.Shutdown(ctx); err != nil {
		t.Errorf("first Shutdown() error = %v", err)
	}
	// The SDK reports nothing fatal on a second shutdown; it must not panic.
	_ = p.Shutdown(ctx)
}
