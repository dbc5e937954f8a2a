// Package dataprocessing implements the table transformations behind each
// idpflow procedure. It reads spreadsheets and delimited files into an
// in-memory Table and applies the column, null, date and aggregation rules
// that produce the output files.
//
// # Architecture
//
// The package is organized around a small tabular model:
//
// 1. Readers: ReadCSV and ReadWorkbook load files into a Table. Empty cells
// and the usual NA tokens become missing cells.
// 2. Transforms: SelectColumns, DropIncomplete, NormalizeConflict,
// AggregateIDP and MergeMonthly each take tables and return a new table
// plus the rows they dropped.
// 3. Rendering: numbers are written as integers while a column holds only
// whole values and as floats ("5.0") once it held a gap or a fraction.
//
// # Usage
//
// Aggregating the legacy settlement file:
//
//	t, err := dataprocessing.ReadCSV("afghan_idp_data.csv", dataprocessing.CSVOptions{
//	    SkipRows: 1,
//	    Names:    dataprocessing.SettlementColumns,
//	})
//	if err != nil {
//	    return err
//	}
//	res, err := dataprocessing.AggregateIDP(t, dataprocessing.AggregateOptions{
//	    Keys: dataprocessing.NewKeyNormalizer(true),
//	})
//
// Joining conflict rows with monthly arrivals:
//
//	res, err := dataprocessing.MergeMonthly(conflict, province)
//
// # Error Handling
//
// Structural problems (missing columns, unknown sheets) are schema errors
// and unreadable dates are date parse errors; both abort the procedure.
// Rows with missing or non-numeric values are dropped and reported as
// domain.Rejection values rather than errors.
package dataprocessing
