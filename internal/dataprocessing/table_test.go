package dataprocessing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "idpflow/internal/errors"
)

// parseTable builds a table from CSV text with a header row
func parseTable(t *testing.T, text string) *Table {
	t.Helper()
	table, err := ParseCSV(strings.NewReader(text), CSVOptions{})
	require.NoError(t, err)
	return table
}

func TestTable_Append(t *testing.T) {
	table := NewTable("a", "b", "c")
	table.Append([]Cell{Text("1")})

	require.Equal(t, 1, table.Len())
	assert.Len(t, table.Rows[0], 3)
	assert.Equal(t, Text("1"), table.Rows[0][0])
	assert.False(t, table.Rows[0][2].Valid)
}

func TestTable_RequireColumns(t *testing.T) {
	table := NewTable("Date", "Fatalities")

	idx, err := table.RequireColumns("Fatalities", "Date")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, idx)

	_, err = table.RequireColumns("Date", "Arrival IDPs")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeSchema))

	var missing *apperrors.MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "Arrival IDPs", missing.Column)
	assert.Equal(t, []string{"Date", "Fatalities"}, missing.Available)
}

func TestTable_Records(t *testing.T) {
	table := parseTable(t, "a,b\n1,\nNA,x\n")

	assert.Equal(t, [][]string{{"1", ""}, {"", "x"}}, table.Records())
	assert.Equal(t, []Cell{Text("1"), Null()}, table.Column(0))
}
