package dataprocessing

import (
	"sort"

	"idpflow/pkg/contracts/domain"
)

// Settlement table columns
const (
	ColumnRegion              = "ADM1NameEnglish"
	ColumnSubRegion           = "ADM2NameEnglish"
	ColumnSettlementCode      = "SettlementCode"
	ColumnArrivals            = "Arrival IDPs"
	ColumnDepartures          = "Fled IDPs"
	ColumnReturns             = "Returned IDPs"
	ColumnOutMigrants         = "Outmigrants"
	ColumnReturneesFromAbroad = "Returnees from Abroad"
)

// SettlementColumns are the positional names of the legacy settlement CSV
var SettlementColumns = []string{
	ColumnRegion,
	ColumnSubRegion,
	ColumnSettlementCode,
	ColumnArrivals,
	ColumnDepartures,
	ColumnReturns,
	ColumnOutMigrants,
	ColumnReturneesFromAbroad,
}

// countColumns are coerced to numbers; rows where any fails are dropped
var countColumns = []string{
	ColumnArrivals,
	ColumnDepartures,
	ColumnReturns,
	ColumnOutMigrants,
	ColumnReturneesFromAbroad,
}

// AggregateOptions controls IDP aggregation
type AggregateOptions struct {
	// DateColumn, when set, groups by region and month of this column and
	// emits a Date column.
	DateColumn string
	// Keys maps region names to grouping keys. Nil groups exactly.
	Keys *KeyNormalizer
}

// AggregateResult holds the province aggregate and its intermediates
type AggregateResult struct {
	Table      *Table
	Provinces  []domain.ProvinceAggregate
	Records    []domain.NetDisplacementRecord
	Rejections []domain.Rejection
}

type groupKey struct {
	region string
	period domain.MonthPeriod
}

// AggregateIDP cleans settlement rows and sums arrivals and departures per
// region. Rows with a missing cell are dropped, then rows whose counts are
// not numeric. Net displacement is derived for every surviving row but is
// not part of the output table.
func AggregateIDP(t *Table, opts AggregateOptions) (*AggregateResult, error) {
	keys := opts.Keys
	if keys == nil {
		keys = NewKeyNormalizer(false)
	}

	required := append([]string(nil), SettlementColumns...)
	if opts.DateColumn != "" {
		required = append(required, opts.DateColumn)
	}
	idx, err := t.RequireColumns(required...)
	if err != nil {
		return nil, err
	}
	regionCol := idx[0]
	countIdx := idx[3:8]

	res := &AggregateResult{}

	// Drop rows with any missing required cell.
	complete := make([]int, 0, t.Len())
	for r, row := range t.Rows {
		if j, ok := firstMissingAt(row, idx); ok {
			res.Rejections = append(res.Rejections, domain.Rejection{
				Row:    r,
				Column: t.Columns[j],
				Reason: domain.RejectMissingValue,
			})
			continue
		}
		complete = append(complete, r)
	}

	// A count column sums as floats once any row left it empty, or any
	// complete row holds a non-integer entry.
	arrivalsFloat := hasMissing(t, countIdx[0]) || !integralRows(t, complete, countIdx[0])
	departuresFloat := hasMissing(t, countIdx[1]) || !integralRows(t, complete, countIdx[1])

	groups := make(map[groupKey]*domain.ProvinceAggregate)
	for _, r := range complete {
		row := t.Rows[r]

		var counts [5]float64
		rejected := false
		for i, j := range countIdx {
			v, ok := ParseNumber(row[j].Value)
			if !ok {
				res.Rejections = append(res.Rejections, domain.Rejection{
					Row:    r,
					Column: t.Columns[j],
					Value:  row[j].Value,
					Reason: domain.RejectNotNumeric,
				})
				rejected = true
				break
			}
			counts[i] = v
		}
		if rejected {
			continue
		}

		rec := domain.SettlementRecord{
			Region:              row[regionCol].Value,
			SubRegion:           row[idx[1]].Value,
			SettlementCode:      row[idx[2]].Value,
			Arrivals:            counts[0],
			Departures:          counts[1],
			Returns:             counts[2],
			OutMigrants:         counts[3],
			ReturneesFromAbroad: counts[4],
		}

		key := groupKey{region: keys.Key(rec.Region)}
		if opts.DateColumn != "" {
			date, err := ParseDate(row[idx[8]].Value)
			if err != nil {
				return nil, withRow(err, r)
			}
			rec.Period = date
			key.period = domain.PeriodOf(date)
		}
		res.Records = append(res.Records, domain.NewNetDisplacementRecord(rec))

		agg, ok := groups[key]
		if !ok {
			agg = &domain.ProvinceAggregate{Region: keys.Display(rec.Region)}
			if opts.DateColumn != "" {
				agg.Period = key.period.FirstDay()
			}
			groups[key] = agg
		}
		agg.Arrivals += rec.Arrivals
		agg.Departures += rec.Departures
		agg.Settlements++
	}

	ordered := make([]groupKey, 0, len(groups))
	for k := range groups {
		ordered = append(ordered, k)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].region != ordered[j].region {
			return ordered[i].region < ordered[j].region
		}
		return ordered[i].period.Before(ordered[j].period)
	})

	if opts.DateColumn != "" {
		res.Table = NewTable(ColumnRegion, ColumnDate, ColumnArrivals, ColumnDepartures)
	} else {
		res.Table = NewTable(ColumnRegion, ColumnArrivals, ColumnDepartures)
	}
	res.Provinces = make([]domain.ProvinceAggregate, 0, len(ordered))
	for _, k := range ordered {
		agg := groups[k]
		res.Provinces = append(res.Provinces, *agg)

		row := []Cell{Text(agg.Region)}
		if agg.Dated() {
			row = append(row, Text(agg.Period.Format(DateLayout)))
		}
		row = append(row,
			Text(FormatNumber(agg.Arrivals, arrivalsFloat)),
			Text(FormatNumber(agg.Departures, departuresFloat)),
		)
		res.Table.Rows = append(res.Table.Rows, row)
	}
	return res, nil
}

func firstMissingAt(row []Cell, idx []int) (int, bool) {
	for _, j := range idx {
		if !row[j].Valid {
			return j, true
		}
	}
	return -1, false
}

func hasMissing(t *Table, col int) bool {
	for _, row := range t.Rows {
		if !row[col].Valid {
			return true
		}
	}
	return false
}

func integralRows(t *Table, rows []int, col int) bool {
	for _, r := range rows {
		if !isIntegerLiteral(t.Rows[r][col].Value) {
			return false
		}
	}
	return true
}
