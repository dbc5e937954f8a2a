package dataprocessing

import (
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	apperrors "idpflow/internal/errors"
)

// CSVOptions controls how a delimited file is read
type CSVOptions struct {
	// SkipRows discards leading lines before the header (or data, when
	// Names is set).
	SkipRows int
	// Names assigns column names positionally. The file then has no header
	// row of its own and every remaining line is data.
	Names []string
}

// ReadCSV loads a comma-separated file into a table. Missing values are
// recognized per IsMissing; a leading byte-order mark is removed.
func ReadCSV(path string, opts CSVOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewFileNotFoundError(path, err)
		}
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to open %s", path), err)
	}
	defer f.Close()

	t, err := ParseCSV(f, opts)
	if err != nil {
		var appErr *apperrors.AppError
		if stderrors.As(err, &appErr) {
			return nil, appErr.WithContext("path", path)
		}
		return nil, err
	}
	return t, nil
}

// ParseCSV reads delimited text from r
func ParseCSV(r io.Reader, opts CSVOptions) (*Table, error) {
	reader := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewParsingError("malformed CSV", err)
	}

	if opts.SkipRows > 0 {
		if opts.SkipRows >= len(records) {
			records = nil
		} else {
			records = records[opts.SkipRows:]
		}
	}

	var t *Table
	if len(opts.Names) > 0 {
		t = NewTable(opts.Names...)
	} else {
		if len(records) == 0 {
			return nil, apperrors.NewSchemaError("no header row", nil)
		}
		t = NewTable(normalizeHeader(records[0])...)
		records = records[1:]
	}

	firstLine := opts.SkipRows + 1
	if len(opts.Names) == 0 {
		firstLine++
	}
	for i, record := range records {
		if len(record) > len(t.Columns) {
			msg := fmt.Sprintf("record %d has %d fields, expected %d", firstLine+i, len(record), len(t.Columns))
			if len(opts.Names) > 0 {
				return nil, apperrors.NewSchemaError(msg, nil)
			}
			return nil, apperrors.NewParsingError(msg, nil)
		}
		t.Append(parseRow(record))
	}
	return t, nil
}

// ReadWorkbook loads one sheet of an xlsx workbook. The first non-empty
// row is the header.
func ReadWorkbook(path, sheet string) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewFileNotFoundError(path, err)
		}
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to stat %s", path), err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to open workbook %s", path), err).
			WithContext("path", path)
	}
	defer f.Close()

	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		return nil, apperrors.NewSchemaError(fmt.Sprintf("sheet %q not found", sheet), nil).
			WithContext("path", path).
			WithContext("available", f.GetSheetList())
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to read sheet %q", sheet), err).
			WithContext("path", path)
	}

	var t *Table
	for _, row := range rows {
		if blank(row) {
			continue
		}
		if t == nil {
			t = NewTable(normalizeHeader(row)...)
			continue
		}
		if len(row) > len(t.Columns) {
			return nil, apperrors.NewParsingError(
				fmt.Sprintf("sheet %q has a row wider than its header", sheet), nil).
				WithContext("path", path)
		}
		t.Append(parseRow(row))
	}
	if t == nil {
		return nil, apperrors.NewSchemaError(fmt.Sprintf("sheet %q has no header row", sheet), nil).
			WithContext("path", path)
	}
	return t, nil
}

func parseRow(record []string) []Cell {
	row := make([]Cell, len(record))
	for i, v := range record {
		row[i] = ParseCell(v)
	}
	return row
}

func blank(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}

// normalizeHeader names empty header cells "Unnamed: <pos>" and suffixes
// repeated names with ".1", ".2", ...
func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, name := range header {
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		out[i] = name
	}
	seen := make(map[string]int, len(out))
	taken := make(map[string]bool, len(out))
	for _, name := range out {
		taken[name] = true
	}
	for i, name := range out {
		n, dup := seen[name]
		if !dup {
			seen[name] = 1
			continue
		}
		for {
			candidate := name + "." + strconv.Itoa(n)
			n++
			if !taken[candidate] {
				out[i] = candidate
				taken[candidate] = true
				break
			}
		}
		seen[name] = n
	}
	return out
}
