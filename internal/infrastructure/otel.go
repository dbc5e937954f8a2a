package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"idpflow/internal/config"
	"idpflow/pkg/contracts"
)

const (
	ServiceName = "idpflow"
	MeterName   = "idpflow"
)

// Telemetry holds the tracing and metrics providers for one run. Metrics
// are gathered into a private Prometheus registry and written to a textfile
// on Shutdown, the usual way to export metrics from a batch job.
type Telemetry struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Registry       *promclient.Registry
	Tracer         trace.Tracer
	Meter          metric.Meter
	Metrics        *PipelineMetrics

	metricsFile string
	logger      *slog.Logger
}

// InitializeTelemetry sets up tracing and metrics. Spans go to traceOut when
// the stdout exporter is selected.
func InitializeTelemetry(ctx context.Context, cfg config.ObservabilityConfig, logger *slog.Logger, traceOut io.Writer) (*Telemetry, error) {
	if logger == nil {
		logger = slog.Default()
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(contracts.Version),
	)

	t := &Telemetry{
		metricsFile: cfg.MetricsFile,
		logger:      logger,
	}

	if err := t.initializeTracing(cfg, res, traceOut); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	if err := t.initializeMetrics(res); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	logger.DebugContext(ctx, "Telemetry initialized",
		slog.String("trace_exporter", cfg.TraceExporter),
		slog.String("metrics_file", cfg.MetricsFile))

	return t, nil
}

// initializeTracing sets up OpenTelemetry tracing
func (t *Telemetry) initializeTracing(cfg config.ObservabilityConfig, res *resource.Resource, traceOut io.Writer) error {
	switch cfg.TraceExporter {
	case "stdout":
		if traceOut == nil {
			traceOut = os.Stderr
		}
		exporter, err := stdouttrace.New(
			stdouttrace.WithWriter(traceOut),
			stdouttrace.WithPrettyPrint(),
		)
		if err != nil {
			return fmt.Errorf("failed to create trace exporter: %w", err)
		}
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(res),
		)
		t.TracerProvider = tp
		t.Tracer = tp.Tracer(MeterName, trace.WithInstrumentationVersion(contracts.Version))
		otel.SetTracerProvider(tp)
	case "none", "":
		t.Tracer = noop.NewTracerProvider().Tracer(MeterName)
	default:
		return fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}
	return nil
}

// initializeMetrics sets up OpenTelemetry metrics backed by a Prometheus
// registry
func (t *Telemetry) initializeMetrics(res *resource.Resource) error {
	t.Registry = promclient.NewRegistry()

	exporter, err := prometheus.New(prometheus.WithRegisterer(t.Registry))
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	t.MeterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)
	t.Meter = t.MeterProvider.Meter(MeterName, metric.WithInstrumentationVersion(contracts.Version))

	t.Metrics, err = NewPipelineMetrics(t.Meter)
	return err
}

// Shutdown writes the metrics textfile, if configured, and flushes spans.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error

	if t.metricsFile != "" {
		if err := promclient.WriteToTextfile(t.metricsFile, t.Registry); err != nil {
			errs = append(errs, fmt.Errorf("failed to write metrics file: %w", err))
		} else {
			t.logger.DebugContext(ctx, "Metrics written", slog.String("path", t.metricsFile))
		}
	}
	if t.MeterProvider != nil {
		if err := t.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}
	if t.TracerProvider != nil {
		if err := t.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}

	return errors.Join(errs...)
}

// PipelineMetrics holds the row and run instruments shared by all procedures
type PipelineMetrics struct {
	RowsRead     metric.Int64Counter
	RowsWritten  metric.Int64Counter
	RowsRejected metric.Int64Counter
	Runs         metric.Int64Counter
	RunDuration  metric.Float64Histogram
}

// NewPipelineMetrics creates the procedure metrics on meter
func NewPipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	rowsRead, err := meter.Int64Counter(
		"idpflow.rows.read",
		metric.WithDescription("Rows read from procedure inputs"),
	)
	if err != nil {
		return nil, err
	}

	rowsWritten, err := meter.Int64Counter(
		"idpflow.rows.written",
		metric.WithDescription("Rows written to procedure outputs"),
	)
	if err != nil {
		return nil, err
	}

	rowsRejected, err := meter.Int64Counter(
		"idpflow.rows.rejected",
		metric.WithDescription("Rows dropped by cleaning or coercion"),
	)
	if err != nil {
		return nil, err
	}

	runs, err := meter.Int64Counter(
		"idpflow.runs",
		metric.WithDescription("Procedure runs by outcome"),
	)
	if err != nil {
		return nil, err
	}

	runDuration, err := meter.Float64Histogram(
		"idpflow.run.duration",
		metric.WithDescription("Procedure run duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &PipelineMetrics{
		RowsRead:     rowsRead,
		RowsWritten:  rowsWritten,
		RowsRejected: rowsRejected,
		Runs:         runs,
		RunDuration:  runDuration,
	}, nil
}

// RecordRows adds read/written counts for a procedure
func (m *PipelineMetrics) RecordRows(ctx context.Context, procedure string, read, written int) {
	attrs := metric.WithAttributes(attribute.String("procedure", procedure))
	m.RowsRead.Add(ctx, int64(read), attrs)
	m.RowsWritten.Add(ctx, int64(written), attrs)
}

// RecordRejected adds rejected row counts grouped by reason
func (m *PipelineMetrics) RecordRejected(ctx context.Context, procedure string, byReason map[string]int) {
	for reason, n := range byReason {
		m.RowsRejected.Add(ctx, int64(n), metric.WithAttributes(
			attribute.String("procedure", procedure),
			attribute.String("reason", reason)))
	}
}

// RecordRun records the outcome and duration of a procedure run
func (m *PipelineMetrics) RecordRun(ctx context.Context, procedure string, seconds float64, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	m.Runs.Add(ctx, 1, metric.WithAttributes(
		attribute.String("procedure", procedure),
		attribute.String("status", status)))
	m.RunDuration.Record(ctx, seconds, metric.WithAttributes(attribute.String("procedure", procedure)))
}
