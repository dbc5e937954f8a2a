package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging       LoggingConfig       `yaml:"logging" envconfig:"LOGGING"`
	Paths         PathsConfig         `yaml:"paths" envconfig:"PATHS"`
	Files         FilesConfig         `yaml:"files" envconfig:"FILES"`
	Pipeline      PipelineConfig      `yaml:"pipeline" envconfig:"PIPELINE"`
	Observability ObservabilityConfig `yaml:"observability" envconfig:"OBSERVABILITY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
}

// PathsConfig contains the directories procedures read from and write to.
// Empty input/output directories fall back to DataDir.
type PathsConfig struct {
	DataDir   string `yaml:"data_dir" envconfig:"DATA_DIR" validate:"required"`
	InputDir  string `yaml:"input_dir" envconfig:"INPUT_DIR"`
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
}

// FilesConfig names every file the procedures hand to each other. The
// defaults are the names the datasets are published under.
type FilesConfig struct {
	SettlementWorkbook  string `yaml:"settlement_workbook" envconfig:"SETTLEMENT_WORKBOOK" validate:"required"`
	IDPByDate           string `yaml:"idp_by_date" envconfig:"IDP_BY_DATE" validate:"required"`
	Demographics        string `yaml:"demographics" envconfig:"DEMOGRAPHICS" validate:"required"`
	CleanedDemographics string `yaml:"cleaned_demographics" envconfig:"CLEANED_DEMOGRAPHICS" validate:"required"`
	ConflictSource      string `yaml:"conflict_source" envconfig:"CONFLICT_SOURCE" validate:"required"`
	ConflictNormalized  string `yaml:"conflict_normalized" envconfig:"CONFLICT_NORMALIZED" validate:"required"`
	SettlementCSV       string `yaml:"settlement_csv" envconfig:"SETTLEMENT_CSV" validate:"required"`
	ProvinceAggregate   string `yaml:"province_aggregate" envconfig:"PROVINCE_AGGREGATE" validate:"required"`
	Merged              string `yaml:"merged" envconfig:"MERGED" validate:"required"`
}

// PipelineConfig tunes transformation behavior
type PipelineConfig struct {
	ProjectorSheet   string   `yaml:"projector_sheet" envconfig:"PROJECTOR_SHEET" validate:"required"`
	ProjectorColumns []string `yaml:"projector_columns" envconfig:"PROJECTOR_COLUMNS" validate:"min=1,dive,required"`
	// IDPDateColumn, when set, makes the IDP aggregation group by
	// (region, month) and emit a Date column usable by the merge.
	IDPDateColumn string `yaml:"idp_date_column" envconfig:"IDP_DATE_COLUMN"`
	// NormalizeKeys folds case and whitespace in region names before
	// grouping. Off by default: region names are grouped exactly as written.
	NormalizeKeys bool   `yaml:"normalize_keys" envconfig:"NORMALIZE_KEYS"`
	WriteRejects  bool   `yaml:"write_rejects" envconfig:"WRITE_REJECTS"`
	WriteBOM      bool   `yaml:"write_bom" envconfig:"WRITE_BOM"`
}

// ObservabilityConfig controls run metrics and tracing
type ObservabilityConfig struct {
	// MetricsFile is a Prometheus textfile written at the end of each run.
	// Empty disables metrics export.
	MetricsFile   string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
	TraceExporter string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=none stdout"`
}

// Default returns the configuration used when neither a file nor the
// environment overrides anything.
func Default() Config {
	return Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: DefaultLogFile,
		},
		Paths: PathsConfig{
			DataDir: DefaultDataDir,
		},
		Files: FilesConfig{
			SettlementWorkbook:  SettlementWorkbookFile,
			IDPByDate:           IDPByDateFile,
			Demographics:        DemographicsFile,
			CleanedDemographics: CleanedDemographicsFile,
			ConflictSource:      ConflictSourceFile,
			ConflictNormalized:  ConflictNormalizedFile,
			SettlementCSV:       SettlementCSVFile,
			ProvinceAggregate:   ProvinceAggregateFile,
			Merged:              MergedFile,
		},
		Pipeline: PipelineConfig{
			ProjectorSheet:   SettlementSheet,
			ProjectorColumns: append([]string(nil), IDPByDateColumns...),
		},
		Observability: ObservabilityConfig{
			TraceExporter: "none",
		},
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (or the default location when path is empty), then environment variables.
// Later sources take precedence.
func Load(path string) (*Config, error) {
	cfg := Default()

	configFile := getConfigFilePath(path)
	if _, err := os.Stat(configFile); err == nil {
		if err := loadFromFile(configFile, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	} else if path != "" {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile overlays the YAML file at filePath onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// getConfigFilePath resolves which config file to read. An explicit path
// wins, then IDPFLOW_CONFIG_FILE, then the default file name.
func getConfigFilePath(path string) string {
	if path != "" {
		return path
	}
	if env := os.Getenv(EnvPrefix + "_CONFIG_FILE"); env != "" {
		return env
	}
	return DefaultConfigFile
}

// Validate checks struct constraints
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}
