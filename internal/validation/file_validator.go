package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "idpflow/internal/errors"
)

// FileValidator checks procedure inputs and outputs before any data is read
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateOutputDirectory ensures output directory exists or can be created
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("failed to create output directory %s", dir), err)
	}

	// Verify it's writable by creating a test file
	file, err := os.CreateTemp(dir, ".write_test*")
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("output directory %s is not writable", dir), err)
	}
	file.Close()
	os.Remove(file.Name())

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir))
	return nil
}

// ValidateFile checks if a specific file exists and is readable
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("File does not exist",
			slog.String("file", path))
		return apperrors.NewFileNotFoundError(path, err)
	}
	if err != nil {
		v.logger.Error("Failed to stat file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("failed to stat file %s", path), err)
	}
	if info.IsDir() {
		v.logger.Error("Path is a directory, not a file",
			slog.String("path", path))
		return apperrors.NewAppValidationError(fmt.Sprintf("%s is a directory, not a file", path))
	}

	// Check if file is readable by opening it
	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("File is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("file %s is not readable", path), err)
	}
	file.Close()

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateExcelFile checks if a file is a readable xlsx workbook
func (v *FileValidator) ValidateExcelFile(path string) error {
	if err := v.ValidateFile(path); err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".xlsx" && ext != ".xlsm" {
		v.logger.Error("File is not an Excel workbook",
			slog.String("file", path),
			slog.String("extension", ext))
		return apperrors.NewAppValidationError(fmt.Sprintf("file %s is not an xlsx workbook (extension: %s)", path, ext))
	}

	// Office lock files share the workbook's extension
	if strings.HasPrefix(filepath.Base(path), "~$") {
		v.logger.Warn("Refusing temporary Excel file",
			slog.String("file", path))
		return apperrors.NewAppValidationError(fmt.Sprintf("file %s is a temporary Excel file", path))
	}

	return nil
}

// ValidateCSVFile checks if a file is a readable CSV file
func (v *FileValidator) ValidateCSVFile(path string) error {
	if err := v.ValidateFile(path); err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".csv" && ext != ".txt" {
		v.logger.Error("File is not a CSV file",
			slog.String("file", path),
			slog.String("extension", ext))
		return apperrors.NewAppValidationError(fmt.Sprintf("file %s is not a CSV file (extension: %s)", path, ext))
	}

	return nil
}

// ValidateInput dispatches on the file extension
func (v *FileValidator) ValidateInput(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return v.ValidateExcelFile(path)
	default:
		return v.ValidateCSVFile(path)
	}
}
