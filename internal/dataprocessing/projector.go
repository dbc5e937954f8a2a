package dataprocessing

// SelectColumns projects t onto columns, in the requested order. Row order
// and row count are preserved and cell text is carried unchanged.
func SelectColumns(t *Table, columns []string) (*Table, error) {
	idx, err := t.RequireColumns(columns...)
	if err != nil {
		return nil, err
	}

	out := NewTable(columns...)
	out.Rows = make([][]Cell, 0, t.Len())
	for _, row := range t.Rows {
		projected := make([]Cell, len(idx))
		for i, j := range idx {
			projected[i] = row[j]
		}
		out.Rows = append(out.Rows, projected)
	}
	return out, nil
}
