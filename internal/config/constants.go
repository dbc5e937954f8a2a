package config

// Application constants
const (
	AppName = "idpflow"

	// EnvPrefix namespaces every environment variable, e.g.
	// IDPFLOW_LOGGING_LEVEL or IDPFLOW_PIPELINE_NORMALIZE_KEYS.
	EnvPrefix = "IDPFLOW"

	DefaultConfigFile = "idpflow.yaml"
	DefaultDataDir    = "."
	DefaultLogFile    = "logs/idpflow.log"
)

// Source and output file names
const (
	SettlementWorkbookFile  = "afghan_idp_data.xlsx"
	SettlementSheet         = "14107_Settlements"
	IDPByDateFile           = "idp_19_22.csv"
	DemographicsFile        = "demographics_residing_afg.csv"
	CleanedDemographicsFile = "cleaned_demographics_residing_afg.csv"
	ConflictSourceFile      = "afghan_violence_data.csv"
	ConflictNormalizedFile  = "preprocessed_conflict_data.csv"
	SettlementCSVFile       = "afghan_idp_data.csv"
	ProvinceAggregateFile   = "province_data.csv"
	MergedFile              = "merged_data.csv"
)

// IDPByDateColumns is the yearly arrival/departure selection taken from the
// settlement workbook.
var IDPByDateColumns = []string{
	"ADM1NameEnglish",
	"ArrivalIDPs2012_18",
	"ArrivalIDPs2019",
	"ArrivalIDPs2020",
	"ArrivalIDPs2021",
	"ArrivalIDPs2022",
	"FledIDPs2012_18",
	"FledIDPs2019",
	"FledIDPs2020",
	"FledIDPs2021",
	"FledIDPs2022",
}
