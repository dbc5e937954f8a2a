package dataprocessing

import (
	apperrors "idpflow/internal/errors"
)

// Cell is a single table value. Missing cells have Valid == false.
type Cell struct {
	Value string
	Valid bool
}

// Text returns a present cell holding s
func Text(s string) Cell {
	return Cell{Value: s, Valid: true}
}

// Null returns a missing cell
func Null() Cell {
	return Cell{}
}

// Table is an in-memory tabular dataset. Row identity is row position.
type Table struct {
	Columns []string
	Rows    [][]Cell
}

// NewTable creates an empty table with the given header
func NewTable(columns ...string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// Append adds a row. Short rows are padded with missing cells.
func (t *Table) Append(row []Cell) {
	if len(row) < len(t.Columns) {
		padded := make([]Cell, len(t.Columns))
		copy(padded, row)
		row = padded
	}
	t.Rows = append(t.Rows, row)
}

// ColumnIndex returns the position of a column
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, c := range t.Columns {
		if c == name {
			return i, true
		}
	}
	return -1, false
}

// RequireColumns returns the positions of names, or a schema error naming
// the first absent column.
func (t *Table) RequireColumns(names ...string) ([]int, error) {
	idx := make([]int, len(names))
	for i, name := range names {
		j, ok := t.ColumnIndex(name)
		if !ok {
			return nil, apperrors.NewMissingColumnError(name, t.Columns)
		}
		idx[i] = j
	}
	return idx, nil
}

// Column returns the cells of the column at position i
func (t *Table) Column(i int) []Cell {
	cells := make([]Cell, len(t.Rows))
	for r, row := range t.Rows {
		cells[r] = row[i]
	}
	return cells
}

// Records renders the rows as strings; missing cells become empty fields.
func (t *Table) Records() [][]string {
	records := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		record := make([]string, len(row))
		for i, c := range row {
			if c.Valid {
				record[i] = c.Value
			}
		}
		records[r] = record
	}
	return records
}
