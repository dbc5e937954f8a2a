package operations

import (
	"context"

	"idpflow/internal/dataprocessing"
	"idpflow/pkg/contracts/domain"
)

// CleanerOptions configures the demographic cleaner
type CleanerOptions struct {
	Input  string
	Output string
}

// DemographicCleaner drops every demographic record with a missing field
type DemographicCleaner struct {
	BaseProcedure
	env  *Env
	opts CleanerOptions
}

// NewDemographicCleaner creates a demographic cleaner
func NewDemographicCleaner(env *Env, opts CleanerOptions) *DemographicCleaner {
	opts.Input = env.Paths.GetInputPath(opts.Input)
	opts.Output = env.Paths.GetOutputPath(opts.Output)
	return &DemographicCleaner{
		BaseProcedure: NewBaseProcedure(domain.ProcedureCleanDemographics, "Demographic Cleaner",
			[]string{opts.Input}, opts.Output),
		env:  env,
		opts: opts,
	}
}

// Execute keeps complete records and writes them unchanged
func (c *DemographicCleaner) Execute(ctx context.Context) (*Result, error) {
	table, err := readCSV(ctx, c.opts.Input, dataprocessing.CSVOptions{})
	if err != nil {
		return nil, err
	}

	var cleaned *dataprocessing.CleanResult
	_ = traceStep(ctx, "transform", func(context.Context) error {
		cleaned = dataprocessing.DropIncomplete(table)
		return nil
	})

	path, err := c.env.writeOutput(ctx, c.opts.Output, cleaned.Table, cleaned.Rejections)
	if err != nil {
		return nil, err
	}
	return &Result{
		RowsRead:    table.Len(),
		RowsWritten: cleaned.Table.Len(),
		Rejections:  cleaned.Rejections,
		OutputPath:  path,
	}, nil
}
