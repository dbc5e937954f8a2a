package main

import (
	"github.com/spf13/cobra"

	"idpflow/internal/dataprocessing"
	"idpflow/internal/operations"
)

func newSelectColumnsCmd(root *rootOptions) *cobra.Command {
	var (
		in, out, sheet string
		columns        []string
	)

	cmd := &cobra.Command{
		Use:   "select-columns",
		Short: "Project the settlement workbook onto the IDP-by-date columns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return root.runProcedure(cmd, func(a *app) operations.Procedure {
				opts := operations.DefaultProjectorOptions(a.cfg)
				override(&opts.Input, in)
				override(&opts.Output, out)
				override(&opts.Sheet, sheet)
				if len(columns) > 0 {
					opts.Columns = columns
				}
				return operations.NewColumnProjector(a.env, opts)
			})
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "input workbook (default from config)")
	cmd.Flags().StringVar(&out, "out", "", "output CSV (default from config)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "worksheet to read (default from config)")
	cmd.Flags().StringSliceVar(&columns, "columns", nil, "columns to keep, in output order")
	return cmd
}

func newCleanDemographicsCmd(root *rootOptions) *cobra.Command {
	var in, out string

	cmd := &cobra.Command{
		Use:   "clean-demographics",
		Short: "Drop demographic rows with any missing value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return root.runProcedure(cmd, func(a *app) operations.Procedure {
				opts := operations.DefaultCleanerOptions(a.cfg)
				override(&opts.Input, in)
				override(&opts.Output, out)
				return operations.NewDemographicCleaner(a.env, opts)
			})
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "input CSV (default from config)")
	cmd.Flags().StringVar(&out, "out", "", "output CSV (default from config)")
	return cmd
}

func newNormalizeConflictCmd(root *rootOptions) *cobra.Command {
	var (
		in, out     string
		keepMissing []string
	)

	cmd := &cobra.Command{
		Use:   "normalize-conflict",
		Short: "Turn Year/Month conflict counts into dated rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return root.runProcedure(cmd, func(a *app) operations.Procedure {
				opts := operations.DefaultConflictOptions(a.cfg)
				override(&opts.Input, in)
				override(&opts.Output, out)
				if len(keepMissing) > 0 {
					opts.Policy = dataprocessing.DefaultFillPolicy()
					for _, c := range keepMissing {
						opts.Policy[c] = dataprocessing.FillNone
					}
				}
				return operations.NewConflictNormalizer(a.env, opts)
			})
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "input CSV (default from config)")
	cmd.Flags().StringVar(&out, "out", "", "output CSV (default from config)")
	cmd.Flags().StringSliceVar(&keepMissing, "keep-missing", nil, "columns whose gaps are left empty instead of zero-filled")
	return cmd
}

func newAggregateIDPCmd(root *rootOptions) *cobra.Command {
	var (
		in, out, dateColumn string
		foldKeys            bool
	)

	cmd := &cobra.Command{
		Use:   "aggregate-idp",
		Short: "Sum settlement arrivals and departures per province",
		Long: `Sum settlement arrivals and departures per province.

Without --date-column the legacy settlement export is read positionally and
one row per province is written. With --date-column the file's own header is
used and one row per province and month is written, including a Date column
that the merge command needs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return root.runProcedure(cmd, func(a *app) operations.Procedure {
				opts := operations.DefaultAggregateOptions(a.cfg)
				override(&opts.Input, in)
				override(&opts.Output, out)
				override(&opts.DateColumn, dateColumn)
				if foldKeys {
					opts.NormalizeKeys = true
				}
				return operations.NewIDPAggregator(a.env, opts)
			})
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "input CSV (default from config)")
	cmd.Flags().StringVar(&out, "out", "", "output CSV (default from config)")
	cmd.Flags().StringVar(&dateColumn, "date-column", "", "group by province and month of this column")
	cmd.Flags().BoolVar(&foldKeys, "fold-keys", false, "group province names ignoring case and surrounding or repeated whitespace")
	return cmd
}

func newMergeCmd(root *rootOptions) *cobra.Command {
	var conflict, province, out string

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Join monthly conflict rows with monthly IDP arrivals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return root.runProcedure(cmd, func(a *app) operations.Procedure {
				opts := operations.DefaultMergeOptions(a.cfg)
				override(&opts.Conflict, conflict)
				override(&opts.Province, province)
				override(&opts.Output, out)
				return operations.NewMonthlyMerger(a.env, opts)
			})
		},
	}

	cmd.Flags().StringVar(&conflict, "conflict", "", "normalized conflict CSV (default from config)")
	cmd.Flags().StringVar(&province, "province", "", "dated province aggregate CSV (default from config)")
	cmd.Flags().StringVar(&out, "out", "", "output CSV (default from config)")
	return cmd
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
