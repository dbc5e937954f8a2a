package operations

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"idpflow/internal/config"
	apperrors "idpflow/internal/errors"
	"idpflow/internal/exporter"
	"idpflow/pkg/contracts/domain"
)

func TestColumnProjector(t *testing.T) {
	env, cfg, _ := newTestEnv(t, func(c *config.Config) {
		c.Pipeline.ProjectorColumns = []string{"ADM1NameEnglish", "ArrivalIDPs2019"}
	})

	f := excelize.NewFile()
	defer f.Close()
	sheet := cfg.Pipeline.ProjectorSheet
	require.NoError(t, f.SetSheetName(f.GetSheetName(0), sheet))
	rows := [][]interface{}{
		{"ADM1NameEnglish", "ADM2NameEnglish", "ArrivalIDPs2019", "FledIDPs2019"},
		{"Kabul", "Paghman", 10, 2},
		{"Herat", "Injil", 7, 3},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}
	require.NoError(t, f.SaveAs(env.Paths.GetInputPath(cfg.Files.SettlementWorkbook)))

	p := NewColumnProjector(env, DefaultProjectorOptions(cfg))
	assert.Equal(t, domain.ProcedureSelectColumns, p.ID())

	res, err := p.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, res.RowsRead)
	assert.Equal(t, 2, res.RowsWritten)
	assert.Equal(t, env.Paths.GetOutputPath(config.IDPByDateFile), res.OutputPath)
	assert.Equal(t, "ADM1NameEnglish,ArrivalIDPs2019\nKabul,10\nHerat,7\n", readOutput(t, res.OutputPath))
}

func TestColumnProjector_MissingColumn(t *testing.T) {
	env, cfg, _ := newTestEnv(t, nil)

	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName(f.GetSheetName(0), cfg.Pipeline.ProjectorSheet))
	require.NoError(t, f.SetCellValue(cfg.Pipeline.ProjectorSheet, "A1", "ADM1NameEnglish"))
	require.NoError(t, f.SaveAs(env.Paths.GetInputPath(cfg.Files.SettlementWorkbook)))

	p := NewColumnProjector(env, DefaultProjectorOptions(cfg))
	_, err := p.Execute(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeSchema))

	_, statErr := os.Stat(p.Output())
	assert.True(t, os.IsNotExist(statErr), "no output on schema failure")
}

func TestDemographicCleaner(t *testing.T) {
	env, cfg, _ := newTestEnv(t, func(c *config.Config) {
		c.Pipeline.WriteRejects = true
	})
	writeInput(t, env, cfg.Files.Demographics, "Province,Male,Female\nKabul,100,120\nHerat,,80\nKunar,05,6.0\n")

	res, err := NewDemographicCleaner(env, DefaultCleanerOptions(cfg)).Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, res.RowsRead)
	assert.Equal(t, 2, res.RowsWritten)
	assert.Equal(t, "Province,Male,Female\nKabul,100,120\nKunar,05,6.0\n", readOutput(t, res.OutputPath))
	assert.Equal(t, "row,column,value,reason\n1,Male,,missing_value\n",
		readOutput(t, filepath.Join(filepath.Dir(res.OutputPath), "cleaned_demographics_residing_afg.rejects.csv")))
}

func TestDemographicCleaner_RejectsReportFailure(t *testing.T) {
	env, cfg, _ := newTestEnv(t, func(c *config.Config) {
		c.Pipeline.WriteRejects = true
	})
	writeInput(t, env, cfg.Files.Demographics, "Province,Male\nKabul,1\nHerat,\n")

	c := NewDemographicCleaner(env, DefaultCleanerOptions(cfg))
	// A directory in the report's place makes the final rename fail.
	require.NoError(t, os.MkdirAll(exporter.RejectsPath(c.Output()), 0755))

	_, err := c.Execute(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))

	_, statErr := os.Stat(c.Output())
	assert.True(t, os.IsNotExist(statErr), "no output when the rejection report fails")
}

func TestConflictNormalizer(t *testing.T) {
	env, cfg, logs := newTestEnv(t, nil)
	writeInput(t, env, cfg.Files.ConflictSource,
		"Year,Month,Fatalities\n2020,January,5\n2020,January,\n2020,February,2\n")

	res, err := NewConflictNormalizer(env, DefaultConflictOptions(cfg)).Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Date,Fatalities\n2020-01-01,5.0\n2020-01-01,0.0\n2020-02-01,2.0\n", readOutput(t, res.OutputPath))
	assert.Contains(t, logs.String(), "Missing values filled with zero")
}

func TestConflictNormalizer_BadMonth(t *testing.T) {
	env, cfg, _ := newTestEnv(t, nil)
	writeInput(t, env, cfg.Files.ConflictSource, "Year,Month,Fatalities\n2020,Smarch,5\n")

	n := NewConflictNormalizer(env, DefaultConflictOptions(cfg))
	_, err := n.Execute(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeDateParse))

	_, statErr := os.Stat(n.Output())
	assert.True(t, os.IsNotExist(statErr))
}

const settlementInput = "Province,District,Code,Arrivals,Fled,Returned,Outmigrants,Returnees\n" +
	"Kabul,Paghman,S1,10,2,1,0,0\n" +
	"kabul ,Bagrami,S2,5,1,0,0,1\n" +
	"Herat,Injil,S3,7,3,0,0,0\n" +
	"Herat,Guzara,,7,3,0,0,0\n"

func TestIDPAggregator(t *testing.T) {
	tests := []struct {
		name     string
		foldKeys bool
		want     string
	}{
		{
			name: "default groups regions exactly",
			want: "ADM1NameEnglish,Arrival IDPs,Fled IDPs\nHerat,7,3\nKabul,10,2\nkabul ,5,1\n",
		},
		{
			name:     "folded keys",
			foldKeys: true,
			want:     "ADM1NameEnglish,Arrival IDPs,Fled IDPs\nHerat,7,3\nKabul,15,3\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, cfg, _ := newTestEnv(t, func(c *config.Config) {
				c.Pipeline.NormalizeKeys = tt.foldKeys
			})
			writeInput(t, env, cfg.Files.SettlementCSV, settlementInput)

			res, err := NewIDPAggregator(env, DefaultAggregateOptions(cfg)).Execute(context.Background())
			require.NoError(t, err)

			assert.Equal(t, 4, res.RowsRead)
			require.Len(t, res.Rejections, 1)
			assert.Equal(t, tt.want, readOutput(t, res.OutputPath))
		})
	}
}

func TestPipeline_NormalizeAggregateMerge(t *testing.T) {
	env, cfg, _ := newTestEnv(t, func(c *config.Config) {
		c.Pipeline.IDPDateColumn = "Date"
	})
	ctx := context.Background()

	writeInput(t, env, cfg.Files.ConflictSource,
		"Year,Month,Fatalities\n2020,January,5\n2020,January,3\n2020,February,2\n")
	writeInput(t, env, cfg.Files.SettlementCSV,
		"ADM1NameEnglish,ADM2NameEnglish,SettlementCode,Arrival IDPs,Fled IDPs,Returned IDPs,Outmigrants,Returnees from Abroad,Date\n"+
			"Kabul,Paghman,S1,100,1,0,0,0,2020-01-03\n"+
			"Herat,Injil,S2,50,2,0,0,0,21/01/2020\n")

	_, err := NewConflictNormalizer(env, DefaultConflictOptions(cfg)).Execute(ctx)
	require.NoError(t, err)

	agg, err := NewIDPAggregator(env, DefaultAggregateOptions(cfg)).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t,
		"ADM1NameEnglish,Date,Arrival IDPs,Fled IDPs\nHerat,2020-01-01,50,2\nKabul,2020-01-01,100,1\n",
		readOutput(t, agg.OutputPath))

	merged, err := NewMonthlyMerger(env, DefaultMergeOptions(cfg)).Execute(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, merged.RowsWritten)
	assert.Equal(t,
		"Date,Fatalities,Arrival IDPs\n2020-01,5,150.0\n2020-01,3,150.0\n2020-02,2,\n",
		readOutput(t, merged.OutputPath))
}

func TestMonthlyMerger_RegionOnlyProvince(t *testing.T) {
	env, cfg, _ := newTestEnv(t, nil)
	writeOutputFixture(t, env, cfg.Files.ConflictNormalized, "Date,Fatalities\n2020-01-01,5\n")
	writeOutputFixture(t, env, cfg.Files.ProvinceAggregate, "ADM1NameEnglish,Arrival IDPs,Fled IDPs\nKabul,15,3\n")

	m := NewMonthlyMerger(env, DefaultMergeOptions(cfg))
	_, err := m.Execute(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeSchema))
	assert.Contains(t, err.Error(), "dated province aggregate")

	_, statErr := os.Stat(m.Output())
	assert.True(t, os.IsNotExist(statErr))
}
