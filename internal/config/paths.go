package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains the resolved directories for a run.
// This is the single source of truth for where procedures read and write.
type Paths struct {
	DataDir   string
	InputDir  string
	OutputDir string
}

// NewPaths resolves cfg into absolute directories. Relative paths are taken
// relative to the current working directory.
func NewPaths(cfg PathsConfig) (*Paths, error) {
	dataDir, err := filepath.Abs(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory: %w", err)
	}

	resolve := func(dir string) (string, error) {
		if dir == "" {
			return dataDir, nil
		}
		if filepath.IsAbs(dir) {
			return filepath.Clean(dir), nil
		}
		return filepath.Abs(dir)
	}

	inputDir, err := resolve(cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve input directory: %w", err)
	}
	outputDir, err := resolve(cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output directory: %w", err)
	}

	return &Paths{
		DataDir:   dataDir,
		InputDir:  inputDir,
		OutputDir: outputDir,
	}, nil
}

// GetInputPath returns the full path for a source file. Absolute names are
// returned unchanged.
func (p *Paths) GetInputPath(filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(p.InputDir, filename)
}

// GetOutputPath returns the full path for a produced file. Absolute names
// are returned unchanged.
func (p *Paths) GetOutputPath(filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(p.OutputDir, filename)
}

// EnsureDirectories creates the output directory if needed
func (p *Paths) EnsureDirectories() error {
	if err := os.MkdirAll(p.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", p.OutputDir, err)
	}
	return nil
}

// LogPathResolution logs the resolved directories
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	logger.Debug("Path resolution",
		slog.String("data_dir", p.DataDir),
		slog.String("input_dir", p.InputDir),
		slog.String("output_dir", p.OutputDir))
}
