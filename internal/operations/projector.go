package operations

import (
	"context"
	"log/slog"

	"idpflow/internal/dataprocessing"
	"idpflow/pkg/contracts/domain"
)

// ProjectorOptions configures the column projector
type ProjectorOptions struct {
	Input   string
	Output  string
	Sheet   string
	Columns []string
}

// ColumnProjector copies a fixed, ordered set of columns out of a workbook
// sheet into a CSV file.
type ColumnProjector struct {
	BaseProcedure
	env  *Env
	opts ProjectorOptions
}

// NewColumnProjector creates a column projector. Input resolves against the
// input directory, Output against the output directory.
func NewColumnProjector(env *Env, opts ProjectorOptions) *ColumnProjector {
	opts.Input = env.Paths.GetInputPath(opts.Input)
	opts.Output = env.Paths.GetOutputPath(opts.Output)
	return &ColumnProjector{
		BaseProcedure: NewBaseProcedure(domain.ProcedureSelectColumns, "Column Projector",
			[]string{opts.Input}, opts.Output),
		env:  env,
		opts: opts,
	}
}

// Execute reads the sheet, keeps the configured columns and writes them
func (p *ColumnProjector) Execute(ctx context.Context) (*Result, error) {
	var table *dataprocessing.Table
	err := traceStep(ctx, "read", func(context.Context) error {
		var err error
		table, err = dataprocessing.ReadWorkbook(p.opts.Input, p.opts.Sheet)
		return err
	})
	if err != nil {
		return nil, err
	}

	p.env.Logger.DebugContext(ctx, "Workbook sheet loaded",
		slog.String("sheet", p.opts.Sheet),
		slog.Int("columns", len(table.Columns)),
		slog.Int("rows", table.Len()))

	var projected *dataprocessing.Table
	err = traceStep(ctx, "transform", func(context.Context) error {
		projected, err = dataprocessing.SelectColumns(table, p.opts.Columns)
		return err
	})
	if err != nil {
		return nil, err
	}

	path, err := p.env.writeOutput(ctx, p.opts.Output, projected, nil)
	if err != nil {
		return nil, err
	}
	return &Result{
		RowsRead:    table.Len(),
		RowsWritten: projected.Len(),
		OutputPath:  path,
	}, nil
}
