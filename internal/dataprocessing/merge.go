package dataprocessing

import (
	stderrors "errors"

	apperrors "idpflow/internal/errors"
	"idpflow/pkg/contracts/domain"
)

// MergeResult is the conflict table joined with monthly arrivals
type MergeResult struct {
	Table      *Table
	Records    []domain.MergedMonthlyRecord
	Rejections []domain.Rejection
	// Matched counts conflict rows that found arrivals for their month
	Matched int
}

// MergeMonthly left-joins conflict rows onto arrivals summed per month.
// Every conflict row appears exactly once and in input order; rows whose
// month has no province data carry a missing arrival count.
func MergeMonthly(conflict, province *Table) (*MergeResult, error) {
	cidx, err := conflict.RequireColumns(ColumnDate, ColumnFatalities)
	if err != nil {
		return nil, err
	}
	pidx, err := province.RequireColumns(ColumnDate, ColumnArrivals)
	if err != nil {
		var missing *apperrors.MissingColumnError
		if stderrors.As(err, &missing) {
			return nil, apperrors.NewSchemaError(
				"province table has no "+missing.Column+" column; merging needs a dated province aggregate (aggregate-idp --date-column)",
				missing).WithContext("column", missing.Column)
		}
		return nil, err
	}

	res := &MergeResult{}
	sums, arrivalsFloat, err := monthlyArrivals(province, pidx[0], pidx[1], res)
	if err != nil {
		return nil, err
	}

	type joined struct {
		period     domain.MonthPeriod
		fatalities Cell
		arrivals   *float64
	}
	rows := make([]joined, 0, conflict.Len())
	for r, row := range conflict.Rows {
		dateCell := row[cidx[0]]
		if !dateCell.Valid {
			return nil, withRow(apperrors.NewDateParseError("missing conflict date", nil), r)
		}
		date, err := ParseDate(dateCell.Value)
		if err != nil {
			return nil, withRow(err, r)
		}

		j := joined{period: domain.PeriodOf(date), fatalities: row[cidx[1]]}
		if sum, ok := sums[j.period]; ok {
			v := sum
			j.arrivals = &v
			res.Matched++
		} else {
			arrivalsFloat = true
		}
		rows = append(rows, j)
	}

	res.Table = NewTable(ColumnDate, ColumnFatalities, ColumnArrivals)
	res.Records = make([]domain.MergedMonthlyRecord, 0, len(rows))
	for _, j := range rows {
		arrivals := Null()
		if j.arrivals != nil {
			arrivals = Text(FormatNumber(*j.arrivals, arrivalsFloat))
		}
		res.Table.Rows = append(res.Table.Rows, []Cell{Text(j.period.String()), j.fatalities, arrivals})
		res.Records = append(res.Records, domain.MergedMonthlyRecord{
			Period:     j.period,
			Fatalities: j.fatalities.Value,
			Arrivals:   j.arrivals,
		})
	}
	return res, nil
}

// monthlyArrivals sums arrivals per month. Rows without a date are
// rejected; a missing arrival count adds nothing but still registers the
// month. asFloat reports whether sums must be rendered as floats.
func monthlyArrivals(t *Table, dateCol, arrivalsCol int, res *MergeResult) (map[domain.MonthPeriod]float64, bool, error) {
	sums := make(map[domain.MonthPeriod]float64)
	asFloat := false
	for r, row := range t.Rows {
		if !row[dateCol].Valid {
			res.Rejections = append(res.Rejections, domain.Rejection{
				Row:    r,
				Column: ColumnDate,
				Reason: domain.RejectMissingDate,
			})
			continue
		}
		date, err := ParseDate(row[dateCol].Value)
		if err != nil {
			return nil, false, withRow(err, r)
		}
		period := domain.PeriodOf(date)

		cell := row[arrivalsCol]
		if !cell.Valid {
			sums[period] += 0
			asFloat = true
			continue
		}
		v, ok := ParseNumber(cell.Value)
		if !ok {
			res.Rejections = append(res.Rejections, domain.Rejection{
				Row:    r,
				Column: ColumnArrivals,
				Value:  cell.Value,
				Reason: domain.RejectNotNumeric,
			})
			continue
		}
		if !isIntegerLiteral(cell.Value) {
			asFloat = true
		}
		sums[period] += v
	}
	return sums, asFloat, nil
}
