package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"idpflow/internal/config"
	apperrors "idpflow/internal/errors"
	"idpflow/pkg/contracts/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter writes procedure outputs. Files are written to a temporary
// sibling and renamed into place, so a failed write leaves no partial file.
type CSVWriter struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(paths *config.Paths, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{paths: paths, logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes headers and records to filePath and returns the resolved
// path. Relative paths resolve against the output directory.
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) (string, error) {
	fullPath := w.resolvePath(filePath)

	w.logger.Debug("Writing CSV file",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(options.Records)))

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", apperrors.NewStorageError("failed to create output directory", err).
			WithContext("path", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(fullPath)+".*.tmp")
	if err != nil {
		return "", apperrors.NewStorageError("failed to create temporary file", err).
			WithContext("path", fullPath)
	}
	tmpPath := tmp.Name()

	if err := writeRecords(tmp, options); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", apperrors.NewStorageError("failed to write CSV", err).
			WithContext("path", fullPath)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", apperrors.NewStorageError("failed to close CSV", err).
			WithContext("path", fullPath)
	}
	if err := os.Rename(tmpPath, fullPath); err != nil {
		os.Remove(tmpPath)
		return "", apperrors.NewStorageError("failed to move CSV into place", err).
			WithContext("path", fullPath)
	}
	return fullPath, nil
}

func writeRecords(file *os.File, options WriteOptions) error {
	if err := file.Chmod(0644); err != nil {
		return err
	}

	// Write BOM if requested (helps Excel recognize UTF-8)
	if options.BOMPrefix {
		if _, err := file.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}
	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	return file.Sync()
}

// WriteSimpleCSV writes a CSV file with headers and records
func (w *CSVWriter) WriteSimpleCSV(filePath string, headers []string, records [][]string, bom bool) (string, error) {
	return w.WriteCSV(filePath, WriteOptions{
		Headers:   headers,
		Records:   records,
		BOMPrefix: bom,
	})
}

// RejectionHeaders are the columns of a rejection report
var RejectionHeaders = []string{"row", "column", "value", "reason"}

// WriteRejections writes the rows a procedure dropped next to its output,
// as <name>.rejects.csv.
func (w *CSVWriter) WriteRejections(outputPath string, rejections []domain.Rejection) (string, error) {
	records := make([][]string, len(rejections))
	for i, r := range rejections {
		records[i] = []string{strconv.Itoa(r.Row), r.Column, r.Value, string(r.Reason)}
	}
	return w.WriteSimpleCSV(RejectsPath(outputPath), RejectionHeaders, records, false)
}

// RejectsPath derives the rejection report path for an output file
func RejectsPath(outputPath string) string {
	ext := filepath.Ext(outputPath)
	return strings.TrimSuffix(outputPath, ext) + ".rejects.csv"
}

// resolvePath resolves a path to the output directory
func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) || w.paths == nil {
		return filePath
	}
	return w.paths.GetOutputPath(filePath)
}
