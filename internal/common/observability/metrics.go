package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Observability records saga-level measurements through an OpenTelemetry meter
// exported in Prometheus format.
type Observability struct {
	meterProvider *metric.MeterProvider
	meter         otelmetric.Meter
	runCounter    otelmetric.Int64Counter
	runDuration   otelmetric.Float64Histogram
	stepCounter   otelmetric.Int64Counter
}

func New(serviceName string) (*Observability, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return &Observability{}, err
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	runCounter, _ := meter.Int64Counter(
		"saga.runs",
		otelmetric.WithDescription("Number of orchestration runs"),
	)

	runDuration, _ := meter.Float64Histogram(
		"saga.duration",
		otelmetric.WithDescription("Orchestration run duration"),
		otelmetric.WithUnit("ms"),
	)

	stepCounter, _ := meter.Int64Counter(
		"saga.steps",
		otelmetric.WithDescription("Number of executed saga steps"),
	)

	return &Observability{
		meterProvider: provider,
		meter:         meter,
		runCounter:    runCounter,
		runDuration:   runDuration,
		stepCounter:   stepCounter,
	}, nil
}

// RecordRun implements saga.Recorder.
func (o *Observability) RecordRun(ctx context.Context, operation, outcome string, steps int, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := otelmetric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	)
	if o.runCounter != nil {
		o.runCounter.Add(ctx, 1, attrs)
	}
	if o.stepCounter != nil {
		o.stepCounter.Add(ctx, int64(steps), attrs)
	}
	if o.runDuration != nil {
		o.runDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
	}
}

func (o *Observability) Shutdown() {
	if o == nil || o.meterProvider == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = o.meterProvider.Shutdown(ctx)
}
