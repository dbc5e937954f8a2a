package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "idpflow/internal/errors"
)

func TestSelectColumns(t *testing.T) {
	table := parseTable(t, "ADM1NameEnglish,ADM2NameEnglish,ArrivalIDPs2019,FledIDPs2019\n"+
		"Kabul,Paghman,10,2\n"+
		"Herat,,7.5,\n"+
		"Kabul,Bagrami,3,1\n")

	out, err := SelectColumns(table, []string{"FledIDPs2019", "ADM1NameEnglish", "ArrivalIDPs2019"})
	require.NoError(t, err)

	assert.Equal(t, []string{"FledIDPs2019", "ADM1NameEnglish", "ArrivalIDPs2019"}, out.Columns)
	require.Equal(t, table.Len(), out.Len())
	assert.Equal(t, [][]string{
		{"2", "Kabul", "10"},
		{"", "Herat", "7.5"},
		{"1", "Kabul", "3"},
	}, out.Records())
}

func TestSelectColumns_MissingColumn(t *testing.T) {
	table := parseTable(t, "ADM1NameEnglish,ArrivalIDPs2019\nKabul,1\n")

	_, err := SelectColumns(table, []string{"ADM1NameEnglish", "ArrivalIDPs2022"})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeSchema))

	var missing *apperrors.MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "ArrivalIDPs2022", missing.Column)
}

func TestSelectColumns_EmptyTable(t *testing.T) {
	table := parseTable(t, "a,b\n")

	out, err := SelectColumns(table, []string{"b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, out.Columns)
	assert.Equal(t, 0, out.Len())
}
