package operations

import (
	"context"
	"log/slog"
	"os"

	"idpflow/internal/config"
	"idpflow/internal/dataprocessing"
	"idpflow/internal/exporter"
	"idpflow/internal/infrastructure"
	"idpflow/pkg/contracts/domain"
)

// Env carries what every procedure needs to locate and write files
type Env struct {
	Paths        *config.Paths
	Writer       *exporter.CSVWriter
	Logger       *slog.Logger
	WriteRejects bool
	WriteBOM     bool
}

// NewEnv resolves directories from cfg and builds the shared writer
func NewEnv(cfg *config.Config, logger *slog.Logger) (*Env, error) {
	if logger == nil {
		logger = slog.Default()
	}
	paths, err := config.NewPaths(cfg.Paths)
	if err != nil {
		return nil, err
	}
	return &Env{
		Paths:        paths,
		Writer:       exporter.NewCSVWriter(paths, infrastructure.WithComponent(logger, "exporter")),
		Logger:       logger,
		WriteRejects: cfg.Pipeline.WriteRejects,
		WriteBOM:     cfg.Pipeline.WriteBOM,
	}, nil
}

// writeOutput writes t to path and, when enabled, the rejection report
// beside it.
func (e *Env) writeOutput(ctx context.Context, path string, t *dataprocessing.Table, rejections []domain.Rejection) (string, error) {
	var written string
	err := traceStep(ctx, "write", func(ctx context.Context) error {
		var err error
		written, err = e.Writer.WriteSimpleCSV(path, t.Columns, t.Records(), e.WriteBOM)
		if err != nil {
			return err
		}
		if !e.WriteRejects {
			return nil
		}
		rejectsPath, err := e.Writer.WriteRejections(written, rejections)
		if err != nil {
			// A failed run leaves no output behind.
			if rmErr := os.Remove(written); rmErr != nil && !os.IsNotExist(rmErr) {
				e.Logger.WarnContext(ctx, "Failed to remove output after rejection report error",
					slog.String("path", written),
					slog.String("error", rmErr.Error()))
			}
			written = ""
			return err
		}
		e.Logger.DebugContext(ctx, "Rejection report written",
			slog.String("path", rejectsPath),
			slog.Int("rejected", len(rejections)))
		return nil
	})
	return written, err
}

// readCSV loads a delimited input inside a traced step
func readCSV(ctx context.Context, path string, opts dataprocessing.CSVOptions) (*dataprocessing.Table, error) {
	var t *dataprocessing.Table
	err := traceStep(ctx, "read", func(context.Context) error {
		var err error
		t, err = dataprocessing.ReadCSV(path, opts)
		return err
	})
	return t, err
}
