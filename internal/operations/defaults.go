package operations

import (
	"idpflow/internal/config"
)

// DefaultProjectorOptions reads projector settings from cfg
func DefaultProjectorOptions(cfg *config.Config) ProjectorOptions {
	return ProjectorOptions{
		Input:   cfg.Files.SettlementWorkbook,
		Output:  cfg.Files.IDPByDate,
		Sheet:   cfg.Pipeline.ProjectorSheet,
		Columns: append([]string(nil), cfg.Pipeline.ProjectorColumns...),
	}
}

// DefaultCleanerOptions reads cleaner settings from cfg
func DefaultCleanerOptions(cfg *config.Config) CleanerOptions {
	return CleanerOptions{
		Input:  cfg.Files.Demographics,
		Output: cfg.Files.CleanedDemographics,
	}
}

// DefaultConflictOptions reads conflict normalizer settings from cfg
func DefaultConflictOptions(cfg *config.Config) ConflictOptions {
	return ConflictOptions{
		Input:  cfg.Files.ConflictSource,
		Output: cfg.Files.ConflictNormalized,
	}
}

// DefaultAggregateOptions reads IDP aggregator settings from cfg
func DefaultAggregateOptions(cfg *config.Config) AggregateOptions {
	return AggregateOptions{
		Input:         cfg.Files.SettlementCSV,
		Output:        cfg.Files.ProvinceAggregate,
		DateColumn:    cfg.Pipeline.IDPDateColumn,
		NormalizeKeys: cfg.Pipeline.NormalizeKeys,
	}
}

// DefaultMergeOptions reads merger settings from cfg
func DefaultMergeOptions(cfg *config.Config) MergeOptions {
	return MergeOptions{
		Conflict: cfg.Files.ConflictNormalized,
		Province: cfg.Files.ProvinceAggregate,
		Output:   cfg.Files.Merged,
	}
}
