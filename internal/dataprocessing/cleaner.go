package dataprocessing

import (
	"idpflow/pkg/contracts/domain"
)

// CleanResult is a filtered table plus the rows that were dropped
type CleanResult struct {
	Table      *Table
	Rejections []domain.Rejection
}

// DropIncomplete keeps only rows in which every column is present. Each
// dropped row is reported once, against its first missing column.
func DropIncomplete(t *Table) *CleanResult {
	res := &CleanResult{Table: NewTable(t.Columns...)}
	for r, row := range t.Rows {
		if col, ok := firstMissing(row); ok {
			res.Rejections = append(res.Rejections, domain.Rejection{
				Row:    r,
				Column: t.Columns[col],
				Reason: domain.RejectMissingValue,
			})
			continue
		}
		res.Table.Rows = append(res.Table.Rows, row)
	}
	return res
}

func firstMissing(row []Cell) (int, bool) {
	for i, c := range row {
		if !c.Valid {
			return i, true
		}
	}
	return -1, false
}
