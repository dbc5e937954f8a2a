// Package exporter writes procedure results as CSV files.
//
// CSVWriter resolves relative names against the configured output directory
// and writes through a temporary file that is renamed into place once
// complete, so an aborted procedure never leaves a partial output. An
// optional UTF-8 BOM helps spreadsheet applications detect the encoding.
//
// Example usage:
//
//	writer := exporter.NewCSVWriter(paths, logger)
//	path, err := writer.WriteSimpleCSV("province_data.csv", table.Columns, table.Records(), false)
//
// Rows dropped by a procedure can be written next to its output:
//
//	writer.WriteRejections(path, rejections)
package exporter
