package operations

import (
	"context"
	"log/slog"

	"idpflow/internal/dataprocessing"
	"idpflow/pkg/contracts/domain"
)

// AggregateOptions configures the IDP aggregator
type AggregateOptions struct {
	Input  string
	Output string
	// DateColumn switches to the dated aggregate: the input is read with
	// its own header row and grouped by region and month of this column.
	DateColumn    string
	NormalizeKeys bool
}

// IDPAggregator sums settlement arrivals and departures per province
type IDPAggregator struct {
	BaseProcedure
	env  *Env
	opts AggregateOptions
}

// NewIDPAggregator creates an IDP aggregator
func NewIDPAggregator(env *Env, opts AggregateOptions) *IDPAggregator {
	opts.Input = env.Paths.GetInputPath(opts.Input)
	opts.Output = env.Paths.GetOutputPath(opts.Output)
	return &IDPAggregator{
		BaseProcedure: NewBaseProcedure(domain.ProcedureAggregateIDP, "IDP Aggregator",
			[]string{opts.Input}, opts.Output),
		env:  env,
		opts: opts,
	}
}

// Execute cleans settlement rows and writes the province aggregate
func (a *IDPAggregator) Execute(ctx context.Context) (*Result, error) {
	// The legacy export repeats its header on the first line; columns are
	// assigned by position.
	readOpts := dataprocessing.CSVOptions{SkipRows: 1, Names: dataprocessing.SettlementColumns}
	if a.opts.DateColumn != "" {
		readOpts = dataprocessing.CSVOptions{}
	}

	table, err := readCSV(ctx, a.opts.Input, readOpts)
	if err != nil {
		return nil, err
	}

	var res *dataprocessing.AggregateResult
	err = traceStep(ctx, "transform", func(context.Context) error {
		res, err = dataprocessing.AggregateIDP(table, dataprocessing.AggregateOptions{
			DateColumn: a.opts.DateColumn,
			Keys:       dataprocessing.NewKeyNormalizer(a.opts.NormalizeKeys),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	var net float64
	for _, r := range res.Records {
		net += r.NetDisplacement
	}
	a.env.Logger.DebugContext(ctx, "Settlement records aggregated",
		slog.Int("settlements", len(res.Records)),
		slog.Int("provinces", len(res.Provinces)),
		slog.Float64("net_displacement", net),
		slog.Bool("dated", a.opts.DateColumn != ""))

	path, err := a.env.writeOutput(ctx, a.opts.Output, res.Table, res.Rejections)
	if err != nil {
		return nil, err
	}
	return &Result{
		RowsRead:    table.Len(),
		RowsWritten: res.Table.Len(),
		Rejections:  res.Rejections,
		OutputPath:  path,
	}, nil
}
