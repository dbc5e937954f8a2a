package operations

import (
	"context"
	"log/slog"

	"idpflow/internal/dataprocessing"
	"idpflow/pkg/contracts/domain"
)

// MergeOptions configures the monthly merger. Both inputs are outputs of
// earlier procedures and resolve against the output directory.
type MergeOptions struct {
	Conflict string
	Province string
	Output   string
}

// MonthlyMerger joins normalized conflict rows with monthly IDP arrivals
type MonthlyMerger struct {
	BaseProcedure
	env  *Env
	opts MergeOptions
}

// NewMonthlyMerger creates a monthly merger
func NewMonthlyMerger(env *Env, opts MergeOptions) *MonthlyMerger {
	opts.Conflict = env.Paths.GetOutputPath(opts.Conflict)
	opts.Province = env.Paths.GetOutputPath(opts.Province)
	opts.Output = env.Paths.GetOutputPath(opts.Output)
	return &MonthlyMerger{
		BaseProcedure: NewBaseProcedure(domain.ProcedureMergeMonthly, "IDP Merger",
			[]string{opts.Conflict, opts.Province}, opts.Output),
		env:  env,
		opts: opts,
	}
}

// Execute left-joins every conflict row onto its month's arrivals
func (m *MonthlyMerger) Execute(ctx context.Context) (*Result, error) {
	conflict, err := readCSV(ctx, m.opts.Conflict, dataprocessing.CSVOptions{})
	if err != nil {
		return nil, err
	}
	province, err := readCSV(ctx, m.opts.Province, dataprocessing.CSVOptions{})
	if err != nil {
		return nil, err
	}

	var res *dataprocessing.MergeResult
	err = traceStep(ctx, "transform", func(context.Context) error {
		res, err = dataprocessing.MergeMonthly(conflict, province)
		return err
	})
	if err != nil {
		return nil, err
	}

	m.env.Logger.InfoContext(ctx, "Conflict rows joined",
		slog.Int("matched", res.Matched),
		slog.Int("unmatched", res.Table.Len()-res.Matched))

	path, err := m.env.writeOutput(ctx, m.opts.Output, res.Table, res.Rejections)
	if err != nil {
		return nil, err
	}
	return &Result{
		RowsRead:    conflict.Len() + province.Len(),
		RowsWritten: res.Table.Len(),
		Rejections:  res.Rejections,
		OutputPath:  path,
	}, nil
}
