package operations

import (
	"context"
	"log/slog"

	"idpflow/internal/dataprocessing"
	"idpflow/pkg/contracts/domain"
)

// ConflictOptions configures the conflict normalizer
type ConflictOptions struct {
	Input  string
	Output string
	// Policy decides which columns are zero-filled. Nil uses the default.
	Policy dataprocessing.FillPolicy
}

// ConflictNormalizer converts Year/Month conflict rows to dated rows
type ConflictNormalizer struct {
	BaseProcedure
	env  *Env
	opts ConflictOptions
}

// NewConflictNormalizer creates a conflict normalizer
func NewConflictNormalizer(env *Env, opts ConflictOptions) *ConflictNormalizer {
	opts.Input = env.Paths.GetInputPath(opts.Input)
	opts.Output = env.Paths.GetOutputPath(opts.Output)
	return &ConflictNormalizer{
		BaseProcedure: NewBaseProcedure(domain.ProcedureNormalizeConflict, "Conflict Normalizer",
			[]string{opts.Input}, opts.Output),
		env:  env,
		opts: opts,
	}
}

// Execute fills gaps, resolves month names and writes Date/Fatalities
func (n *ConflictNormalizer) Execute(ctx context.Context) (*Result, error) {
	table, err := readCSV(ctx, n.opts.Input, dataprocessing.CSVOptions{})
	if err != nil {
		return nil, err
	}

	var res *dataprocessing.ConflictResult
	err = traceStep(ctx, "transform", func(context.Context) error {
		res, err = dataprocessing.NormalizeConflict(table, n.opts.Policy)
		return err
	})
	if err != nil {
		return nil, err
	}

	for column, count := range res.Filled {
		n.env.Logger.InfoContext(ctx, "Missing values filled with zero",
			slog.String("column", column),
			slog.Int("cells", count))
	}

	path, err := n.env.writeOutput(ctx, n.opts.Output, res.Table, nil)
	if err != nil {
		return nil, err
	}
	return &Result{
		RowsRead:    table.Len(),
		RowsWritten: res.Table.Len(),
		OutputPath:  path,
	}, nil
}
