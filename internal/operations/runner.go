package operations

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	apperrors "idpflow/internal/errors"
	"idpflow/internal/infrastructure"
	"idpflow/internal/validation"
	"idpflow/pkg/contracts/domain"
)

// Runner executes a single procedure with validation, tracing, metrics and
// logging around it. It never retries: a failed run is reported and left.
type Runner struct {
	logger    *slog.Logger
	validator *validation.FileValidator
	metrics   *infrastructure.PipelineMetrics
	tracer    trace.Tracer
}

// NewRunner creates a runner. metrics may be nil; a nil tracer uses the
// global provider.
func NewRunner(logger *slog.Logger, metrics *infrastructure.PipelineMetrics, tracer trace.Tracer) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = otel.Tracer(TracerName)
	}
	return &Runner{
		logger:    logger,
		validator: validation.NewFileValidator(infrastructure.WithComponent(logger, "validation")),
		metrics:   metrics,
		tracer:    tracer,
	}
}

// Run validates the procedure's files, executes it and returns the run
// record. The record is returned for failed runs too.
func (r *Runner) Run(ctx context.Context, p Procedure) (*domain.ProcedureRun, error) {
	ctx = infrastructure.EnsureRunID(ctx)
	run := &domain.ProcedureRun{
		ID:        infrastructure.GetRunID(ctx),
		Procedure: p.ID(),
		Status:    domain.RunStatusRunning,
		Inputs:    p.Inputs(),
		Output:    p.Output(),
		StartedAt: time.Now(),
	}

	ctx, span := startProcedureSpan(ctx, r.tracer, run.ID, p)
	defer span.End()

	logger := r.logger.With(slog.String("procedure", string(p.ID())))
	logger.InfoContext(ctx, "Procedure started",
		slog.String("name", p.Name()),
		slog.Any("inputs", p.Inputs()),
		slog.String("output", p.Output()))

	res, err := r.execute(ctx, p)

	completed := time.Now()
	run.CompletedAt = &completed
	if r.metrics != nil {
		r.metrics.RecordRun(ctx, string(p.ID()), run.Duration().Seconds(), err)
	}

	if err != nil {
		run.Status = domain.RunStatusFailed
		run.Error = err.Error()
		recordSpanError(span, err)
		logger.ErrorContext(ctx, "Procedure failed",
			slog.String("error", err.Error()),
			slog.String("error_type", errorType(err)),
			slog.Duration("duration", run.Duration()))
		return run, err
	}

	run.Status = domain.RunStatusCompleted
	run.RowsRead = res.RowsRead
	run.RowsWritten = res.RowsWritten
	run.Rejections = res.Rejections
	if res.OutputPath != "" {
		run.Output = res.OutputPath
	}

	byReason := domain.CountByReason(res.Rejections)
	if r.metrics != nil {
		r.metrics.RecordRows(ctx, string(p.ID()), res.RowsRead, res.RowsWritten)
		r.metrics.RecordRejected(ctx, string(p.ID()), byReason)
	}
	span.SetAttributes(
		attribute.Int("rows.read", res.RowsRead),
		attribute.Int("rows.written", res.RowsWritten),
		attribute.Int("rows.rejected", len(res.Rejections)),
	)

	logRejections(ctx, logger, res.Rejections)
	logger.InfoContext(ctx, "Procedure completed",
		slog.Int("rows_read", res.RowsRead),
		slog.Int("rows_written", res.RowsWritten),
		slog.Int("rows_rejected", len(res.Rejections)),
		slog.Any("rejected_by_reason", byReason),
		slog.String("output", run.Output),
		slog.Duration("duration", run.Duration()))
	return run, nil
}

func (r *Runner) execute(ctx context.Context, p Procedure) (*Result, error) {
	err := traceStep(ctx, "validate", func(context.Context) error {
		for _, in := range p.Inputs() {
			if err := r.validator.ValidateInput(in); err != nil {
				return err
			}
		}
		return r.validator.ValidateOutputDirectory(filepath.Dir(p.Output()))
	})
	if err != nil {
		return nil, err
	}
	return p.Execute(ctx)
}

// logRejections reports each dropped row at debug level
func logRejections(ctx context.Context, logger *slog.Logger, rejections []domain.Rejection) {
	if !logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	for _, rej := range rejections {
		reason := string(rej.Reason)
		if rej.Reason == domain.RejectNotNumeric {
			reason = apperrors.NewTypeCoercionError(rej.Column, rej.Value).Error()
		}
		logger.DebugContext(ctx, "Row rejected",
			slog.Int("row", rej.Row),
			slog.String("column", rej.Column),
			slog.String("reason", reason))
	}
}

func errorType(err error) string {
	for _, t := range []apperrors.ErrorType{
		apperrors.ErrTypeSchema,
		apperrors.ErrTypeDateParse,
		apperrors.ErrTypeNotFound,
		apperrors.ErrTypeParsing,
		apperrors.ErrTypeStorage,
		apperrors.ErrTypeValidation,
		apperrors.ErrTypeConfig,
	} {
		if apperrors.IsType(err, t) {
			return string(t)
		}
	}
	return "UNKNOWN"
}
