package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idpflow/internal/config"
	apperrors "idpflow/internal/errors"
	"idpflow/pkg/contracts/domain"
)

// Setup test environment
func setupTestEnv(t *testing.T) (*CSVWriter, string) {
	t.Helper()

	tempDir := t.TempDir()
	paths, err := config.NewPaths(config.PathsConfig{
		DataDir:   tempDir,
		OutputDir: filepath.Join(tempDir, "out"),
	})
	require.NoError(t, err)

	return NewCSVWriter(paths, nil), tempDir
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	data = bytes.TrimPrefix(data, utf8BOM)
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestCSVWriter_WriteCSV(t *testing.T) {
	writer, tempDir := setupTestEnv(t)

	tests := []struct {
		name     string
		filePath string
		options  WriteOptions
		wantPath string
		wantBOM  bool
	}{
		{
			name:     "relative path resolves to output dir",
			filePath: "province_data.csv",
			options: WriteOptions{
				Headers: []string{"ADM1NameEnglish", "Arrival IDPs", "Fled IDPs"},
				Records: [][]string{{"Kabul", "15", "3"}, {"Herat", "7", "3"}},
			},
			wantPath: filepath.Join(tempDir, "out", "province_data.csv"),
		},
		{
			name:     "absolute path with BOM",
			filePath: filepath.Join(tempDir, "abs", "merged_data.csv"),
			options: WriteOptions{
				Headers:   []string{"Date", "Fatalities", "Arrival IDPs"},
				Records:   [][]string{{"2020-01", "5", ""}},
				BOMPrefix: true,
			},
			wantPath: filepath.Join(tempDir, "abs", "merged_data.csv"),
			wantBOM:  true,
		},
		{
			name:     "header only",
			filePath: "empty.csv",
			options:  WriteOptions{Headers: []string{"Date", "Fatalities"}},
			wantPath: filepath.Join(tempDir, "out", "empty.csv"),
		},
		{
			name:     "quoting",
			filePath: "quoted.csv",
			options: WriteOptions{
				Headers: []string{"Province", "Note"},
				Records: [][]string{{"Kabul", "a, b"}, {"Herat", `say "hi"`}},
			},
			wantPath: filepath.Join(tempDir, "out", "quoted.csv"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := writer.WriteCSV(tt.filePath, tt.options)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, got)

			data, err := os.ReadFile(got)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBOM, bytes.HasPrefix(data, utf8BOM))

			want := append([][]string{tt.options.Headers}, tt.options.Records...)
			assert.Equal(t, want, readCSV(t, got))
		})
	}
}

func TestCSVWriter_WriteCSV_Replaces(t *testing.T) {
	writer, _ := setupTestEnv(t)

	path, err := writer.WriteSimpleCSV("out.csv", []string{"a"}, [][]string{{"1"}, {"2"}}, false)
	require.NoError(t, err)
	_, err = writer.WriteSimpleCSV("out.csv", []string{"a"}, [][]string{{"3"}}, false)
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"a"}, {"3"}}, readCSV(t, path))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestCSVWriter_WriteCSV_Failure(t *testing.T) {
	writer, tempDir := setupTestEnv(t)

	blocker := filepath.Join(tempDir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	_, err := writer.WriteCSV(filepath.Join(blocker, "out.csv"), WriteOptions{Headers: []string{"a"}})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))
}

func TestCSVWriter_WriteRejections(t *testing.T) {
	writer, tempDir := setupTestEnv(t)

	path, err := writer.WriteRejections("province_data.csv", []domain.Rejection{
		{Row: 3, Column: "SettlementCode", Reason: domain.RejectMissingValue},
		{Row: 4, Column: "Arrival IDPs", Value: "abc", Reason: domain.RejectNotNumeric},
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tempDir, "out", "province_data.rejects.csv"), path)
	assert.Equal(t, [][]string{
		{"row", "column", "value", "reason"},
		{"3", "SettlementCode", "", "missing_value"},
		{"4", "Arrival IDPs", "abc", "not_numeric"},
	}, readCSV(t, path))
}

func TestRejectsPath(t *testing.T) {
	assert.Equal(t, "/data/merged_data.rejects.csv", RejectsPath("/data/merged_data.csv"))
	assert.Equal(t, "report.rejects.csv", RejectsPath("report"))
}
