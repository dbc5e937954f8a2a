package dataprocessing

import (
	stderrors "errors"
	"fmt"

	apperrors "idpflow/internal/errors"
	"idpflow/pkg/contracts/domain"
)

// Conflict table columns
const (
	ColumnYear       = "Year"
	ColumnMonth      = "Month"
	ColumnFatalities = "Fatalities"
	ColumnDate       = "Date"
)

// DateLayout is the rendering of full dates in output files
const DateLayout = "2006-01-02"

// FillMode decides what happens to a missing cell in a column
type FillMode int

const (
	// FillZero replaces missing cells with zero
	FillZero FillMode = iota
	// FillNone leaves missing cells missing
	FillNone
)

// FillPolicy maps column names to fill modes. Unlisted columns use FillZero.
type FillPolicy map[string]FillMode

// DefaultFillPolicy zero-fills every column except the date parts
func DefaultFillPolicy() FillPolicy {
	return FillPolicy{
		ColumnYear:  FillNone,
		ColumnMonth: FillNone,
	}
}

// ModeFor returns the fill mode for a column
func (p FillPolicy) ModeFor(column string) FillMode {
	if m, ok := p[column]; ok {
		return m
	}
	return FillZero
}

// ConflictResult is the normalized conflict table
type ConflictResult struct {
	Table  *Table
	Events []domain.ConflictEvent
	// Filled counts zero-filled cells per column
	Filled map[string]int
}

// NormalizeConflict turns Year/Month/Fatalities rows into Date/Fatalities
// rows, one per input row. Date is the first day of the row's month. A
// month name that cannot be resolved aborts the whole table.
func NormalizeConflict(t *Table, policy FillPolicy) (*ConflictResult, error) {
	if policy == nil {
		policy = DefaultFillPolicy()
	}

	idx, err := t.RequireColumns(ColumnYear, ColumnMonth, ColumnFatalities)
	if err != nil {
		return nil, err
	}
	yearCol, monthCol, fatalCol := idx[0], idx[1], idx[2]

	rows, filled := fillMissing(t, policy)
	fatalities := renderNumericColumn(t.Column(fatalCol), rows, fatalCol, filled[t.Columns[fatalCol]] > 0)

	res := &ConflictResult{
		Table:  NewTable(ColumnDate, ColumnFatalities),
		Events: make([]domain.ConflictEvent, 0, len(rows)),
		Filled: filled,
	}
	for r, row := range rows {
		period, err := conflictDate(row[yearCol], row[monthCol])
		if err != nil {
			return nil, withRow(err, r)
		}
		date := period.FirstDay()
		res.Table.Rows = append(res.Table.Rows, []Cell{Text(date.Format(DateLayout)), fatalities[r]})
		res.Events = append(res.Events, domain.ConflictEvent{Date: date, Fatalities: fatalities[r].Value})
	}
	return res, nil
}

// fillMissing returns a copy of the rows with zero-fill applied, plus the
// number of cells filled per column.
func fillMissing(t *Table, policy FillPolicy) ([][]Cell, map[string]int) {
	filled := make(map[string]int)
	rows := make([][]Cell, len(t.Rows))
	for r, row := range t.Rows {
		out := make([]Cell, len(row))
		for i, c := range row {
			if !c.Valid && policy.ModeFor(t.Columns[i]) == FillZero {
				c = Text("0")
				filled[t.Columns[i]]++
			}
			out[i] = c
		}
		rows[r] = out
	}
	return rows, filled
}

// renderNumericColumn re-renders column col of rows. raw holds the cells as
// read, before any fill. Columns that are not entirely numeric are returned
// unchanged.
func renderNumericColumn(raw []Cell, rows [][]Cell, col int, hadGaps bool) []Cell {
	out := make([]Cell, len(rows))
	values := make([]float64, len(rows))
	numeric := true
	for r, row := range rows {
		out[r] = row[col]
		if !numeric || !row[col].Valid {
			numeric = false
			continue
		}
		values[r], numeric = ParseNumber(row[col].Value)
	}
	if !numeric {
		return out
	}

	asFloat := hadGaps || !integralColumn(raw)
	for r, v := range values {
		out[r] = Text(FormatNumber(v, asFloat))
	}
	return out
}

func conflictDate(year, month Cell) (domain.MonthPeriod, error) {
	if !year.Valid {
		return domain.MonthPeriod{}, apperrors.NewDateParseError("missing year", nil)
	}
	if !month.Valid {
		return domain.MonthPeriod{}, apperrors.NewDateParseError("missing month", nil)
	}
	y, err := ParseYear(year.Value)
	if err != nil {
		return domain.MonthPeriod{}, err
	}
	m, err := ParseMonthName(month.Value)
	if err != nil {
		return domain.MonthPeriod{}, err
	}
	return domain.MonthPeriod{Year: y, Month: m}, nil
}

// withRow annotates an application error with the data row it came from
func withRow(err error, row int) error {
	var appErr *apperrors.AppError
	if stderrors.As(err, &appErr) {
		appErr.Message = fmt.Sprintf("row %d: %s", row, appErr.Message)
		return appErr.WithContext("row", row)
	}
	return fmt.Errorf("row %d: %w", row, err)
}
