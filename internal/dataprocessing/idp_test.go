package dataprocessing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "idpflow/internal/errors"
	"idpflow/pkg/contracts/domain"
)

const settlementFixture = "Province,District,Code,Arrivals,Fled,Returned,Outmigrants,Returnees\n" +
	"Kabul,Paghman,S1,10,2,1,0,0\n" +
	"Kabul,Bagrami,S2,5,1,0,0,1\n" +
	"Herat,Injil,S3,7,3,0,0,0\n" +
	"Herat,Guzara,,7,3,0,0,0\n" +
	"Balkh,Dehdadi,S5,abc,1,0,0,0\n"

func legacyTable(t *testing.T, text string) *Table {
	t.Helper()
	table, err := ParseCSV(strings.NewReader(text), CSVOptions{SkipRows: 1, Names: SettlementColumns})
	require.NoError(t, err)
	return table
}

func TestAggregateIDP(t *testing.T) {
	res, err := AggregateIDP(legacyTable(t, settlementFixture), AggregateOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"ADM1NameEnglish", "Arrival IDPs", "Fled IDPs"}, res.Table.Columns)
	// The coerced "abc" widens arrivals to floats; departures stay integral.
	assert.Equal(t, [][]string{
		{"Herat", "7.0", "3"},
		{"Kabul", "15.0", "3"},
	}, res.Table.Records())

	assert.Equal(t, []domain.Rejection{
		{Row: 3, Column: "SettlementCode", Reason: domain.RejectMissingValue},
		{Row: 4, Column: "Arrival IDPs", Value: "abc", Reason: domain.RejectNotNumeric},
	}, res.Rejections)

	require.Len(t, res.Records, 3)
	assert.Equal(t, float64(9), res.Records[0].NetDisplacement)
	assert.Equal(t, float64(5), res.Records[1].NetDisplacement)
	assert.Equal(t, float64(4), res.Records[2].NetDisplacement)

	require.Len(t, res.Provinces, 2)
	assert.Equal(t, domain.ProvinceAggregate{Region: "Kabul", Arrivals: 15, Departures: 3, Settlements: 2}, res.Provinces[1])
}

func TestAggregateIDP_IntegralOutput(t *testing.T) {
	res, err := AggregateIDP(legacyTable(t, "skip\nKabul,A,S1,10,2,0,0,0\nKabul,B,S2,5,1,0,0,0\n"), AggregateOptions{})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Kabul", "15", "3"}}, res.Table.Records())
}

func TestAggregateIDP_BlankCountWidensColumn(t *testing.T) {
	res, err := AggregateIDP(legacyTable(t, "skip\n"+
		"Kabul,A,S1,10,2,0,0,0\n"+
		"Kabul,B,S2,,1,0,0,0\n"+
		"Kabul,C,S3,5,1,0,0,0\n"), AggregateOptions{})
	require.NoError(t, err)

	// The blank row is dropped, but its gap still makes arrivals float.
	assert.Equal(t, [][]string{{"Kabul", "15.0", "3"}}, res.Table.Records())
	assert.Equal(t, []domain.Rejection{
		{Row: 1, Column: "Arrival IDPs", Reason: domain.RejectMissingValue},
	}, res.Rejections)
}

func TestAggregateIDP_PermutationInvariant(t *testing.T) {
	lines := strings.Split(strings.TrimSuffix(settlementFixture, "\n"), "\n")
	header, rows := lines[0], lines[1:]
	reversed := make([]string, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		reversed = append(reversed, rows[i])
	}

	want, err := AggregateIDP(legacyTable(t, settlementFixture), AggregateOptions{})
	require.NoError(t, err)
	got, err := AggregateIDP(legacyTable(t, header+"\n"+strings.Join(reversed, "\n")+"\n"), AggregateOptions{})
	require.NoError(t, err)

	assert.Equal(t, want.Table.Records(), got.Table.Records())
}

func TestAggregateIDP_OutputKeysAreDistinctRegions(t *testing.T) {
	res, err := AggregateIDP(legacyTable(t, settlementFixture), AggregateOptions{})
	require.NoError(t, err)

	cleaned := make(map[string]bool)
	for _, r := range res.Records {
		cleaned[r.Region] = true
	}
	seen := make(map[string]bool)
	for _, rec := range res.Table.Records() {
		assert.False(t, seen[rec[0]], "duplicate region %s", rec[0])
		seen[rec[0]] = true
	}
	assert.Equal(t, cleaned, seen)
	assert.NotContains(t, res.Table.Columns, "Net_IDPs")
}

func TestAggregateIDP_KeyNormalization(t *testing.T) {
	input := "skip\n" +
		"Kabul,A,S1,1,0,0,0,0\n" +
		" kabul ,B,S2,2,0,0,0,0\n" +
		"KABUL,C,S3,3,0,0,0,0\n"

	folded, err := AggregateIDP(legacyTable(t, input), AggregateOptions{Keys: NewKeyNormalizer(true)})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Kabul", "6", "0"}}, folded.Table.Records())

	exact, err := AggregateIDP(legacyTable(t, input), AggregateOptions{Keys: NewKeyNormalizer(false)})
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{" kabul ", "2", "0"},
		{"KABUL", "3", "0"},
		{"Kabul", "1", "0"},
	}, exact.Table.Records())
}

func TestAggregateIDP_Dated(t *testing.T) {
	table := parseTable(t, strings.Join(SettlementColumns, ",")+",Date\n"+
		"Kabul,D1,S1,10,1,0,0,0,2020-01-05\n"+
		"Kabul,D2,S2,5,1,0,0,0,15/01/2020\n"+
		"Kabul,D3,S3,3,0,0,0,0,2020-02-01\n"+
		"Herat,D4,S4,4,0,0,0,0,2020-01-20\n"+
		"Herat,D5,S5,4,0,0,0,0,\n")

	res, err := AggregateIDP(table, AggregateOptions{DateColumn: "Date", Keys: NewKeyNormalizer(true)})
	require.NoError(t, err)

	assert.Equal(t, []string{"ADM1NameEnglish", "Date", "Arrival IDPs", "Fled IDPs"}, res.Table.Columns)
	assert.Equal(t, [][]string{
		{"Herat", "2020-01-01", "4", "0"},
		{"Kabul", "2020-01-01", "15", "2"},
		{"Kabul", "2020-02-01", "3", "0"},
	}, res.Table.Records())
	require.Len(t, res.Rejections, 1)
	assert.Equal(t, "Date", res.Rejections[0].Column)
}

func TestAggregateIDP_Errors(t *testing.T) {
	_, err := AggregateIDP(parseTable(t, "ADM1NameEnglish,Arrival IDPs\nKabul,1\n"), AggregateOptions{})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeSchema))

	_, err = AggregateIDP(legacyTable(t, settlementFixture), AggregateOptions{DateColumn: "Date"})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeSchema))

	dated := parseTable(t, strings.Join(SettlementColumns, ",")+",Date\nKabul,D,S,1,0,0,0,0,someday\n")
	_, err = AggregateIDP(dated, AggregateOptions{DateColumn: "Date"})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeDateParse))
}
