// Package config provides centralized configuration for the idpflow
// procedures.
//
// # Configuration Sources
//
// Configuration is assembled from the following sources, later ones taking
// precedence:
//
//	1. Built-in defaults (Default)
//	2. A YAML file (--config, IDPFLOW_CONFIG_FILE, or ./idpflow.yaml)
//	3. Environment variables
//
// # Environment Variables
//
// All environment variables follow the pattern IDPFLOW_<SECTION>_<FIELD>:
//
//	IDPFLOW_LOGGING_LEVEL=debug
//	IDPFLOW_PATHS_DATA_DIR=/srv/afg
//	IDPFLOW_PIPELINE_NORMALIZE_KEYS=false
//	IDPFLOW_PIPELINE_PROJECTOR_COLUMNS=ADM1NameEnglish,ArrivalIDPs2019
//	IDPFLOW_OBSERVABILITY_METRICS_FILE=/var/lib/node_exporter/idpflow.prom
//
// # File Names
//
// Each procedure's output file is the next procedure's input. The defaults in
// constants.go chain the procedures together; override them under the files
// section when datasets are published under other names.
//
// # Path Management
//
// Paths resolves the data, input and output directories once per run:
//
//	paths, err := config.NewPaths(cfg.Paths)
//	src := paths.GetInputPath(cfg.Files.ConflictSource)
//	dst := paths.GetOutputPath(cfg.Files.ConflictNormalized)
package config
