package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Small datasets shaped like the published inputs
const (
	// ConflictCSV is a monthly conflict export with a fatalities gap
	ConflictCSV = "Year,Month,Fatalities\n2020,January,5\n2020,February,\n"

	// DemographicsCSV has one incomplete row
	DemographicsCSV = "Province,Male,Female\nKabul,10,12\nHerat,,7\nBalkh,4,5\n"

	// LegacySettlementCSV repeats its header on the first line, as the
	// legacy export does
	LegacySettlementCSV = "Province,District,Code,Arrived,Fled,Returned,Out,Abroad\n" +
		"Kabul,Kabul,K1,100,10,0,0,0\n" +
		"Herat,Herat,H1,40,4,0,0,0\n" +
		"Kabul,Paghman,K2,50,5,0,0,0\n"

	// DatedSettlementCSV carries a survey date per settlement
	DatedSettlementCSV = "ADM1NameEnglish,ADM2NameEnglish,SettlementCode,Arrival IDPs,Fled IDPs," +
		"Returned IDPs,Outmigrants,Returnees from Abroad,Survey Date\n" +
		"Kabul,Kabul,K1,100,10,0,0,0,2020-01-15\n" +
		"Kabul,Paghman,K2,50,5,0,0,0,2020-01-20\n"

	// DatedSettlementDateColumn is the date column of DatedSettlementCSV
	DatedSettlementDateColumn = "Survey Date"
)

// DatasetFixtures writes fixture files into a directory
type DatasetFixtures struct {
	t   *testing.T
	Dir string
}

// NewDatasetFixtures creates a fixtures writer rooted at dir
func NewDatasetFixtures(t *testing.T, dir string) *DatasetFixtures {
	return &DatasetFixtures{t: t, Dir: dir}
}

// Write stores content under name and returns the full path
func (f *DatasetFixtures) Write(name, content string) string {
	f.t.Helper()

	path := filepath.Join(f.Dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		f.t.Fatalf("create fixture dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		f.t.Fatalf("write fixture %s: %v", name, err)
	}
	return path
}

// WriteConflict writes ConflictCSV
func (f *DatasetFixtures) WriteConflict(name string) string {
	f.t.Helper()
	return f.Write(name, ConflictCSV)
}

// WriteDemographics writes DemographicsCSV
func (f *DatasetFixtures) WriteDemographics(name string) string {
	f.t.Helper()
	return f.Write(name, DemographicsCSV)
}

// WriteSettlements writes DatedSettlementCSV when dated is true and
// LegacySettlementCSV otherwise
func (f *DatasetFixtures) WriteSettlements(name string, dated bool) string {
	f.t.Helper()
	if dated {
		return f.Write(name, DatedSettlementCSV)
	}
	return f.Write(name, LegacySettlementCSV)
}

// Read returns the contents of name
func (f *DatasetFixtures) Read(name string) string {
	f.t.Helper()

	data, err := os.ReadFile(filepath.Join(f.Dir, name))
	if err != nil {
		f.t.Fatalf("read %s: %v", name, err)
	}
	return string(data)
}
