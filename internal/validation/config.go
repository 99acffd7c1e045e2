package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jeeftor/wordgrid/internal/config"
	"github.com/jeeftor/wordgrid/internal/constants"
	"github.com/jeeftor/wordgrid/internal/crop"
	"github.com/jeeftor/wordgrid/internal/logging"
	"github.com/jeeftor/wordgrid/internal/recognize"
)

// ValidationError represents a configuration validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Rule    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s (value: %v)", e.Field, e.Message, e.Value)
}

// ValidationResult holds the results of configuration validation
type ValidationResult struct {
	Valid    bool
	Errors   []ValidationError
	Warnings []string
}

// AddError adds a validation error
func (vr *ValidationResult) AddError(field string, value interface{}, rule string, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Value:   value,
		Rule:    rule,
		Message: message,
	})
}

// AddWarning adds a validation warning
func (vr *ValidationResult) AddWarning(message string) {
	vr.Warnings = append(vr.Warnings, message)
}

// Err returns the result as an error, or nil when valid
func (vr *ValidationResult) Err() error {
	if vr.Valid {
		return nil
	}
	return fmt.Errorf("%s", strings.TrimSpace(FormatValidationErrors(vr)))
}

// knownImageExts are the extensions the decoders understand
var knownImageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".bmp": true, ".tif": true, ".tiff": true, ".webp": true,
	".ppm": true, ".pgm": true, ".pbm": true, ".pam": true, ".pnm": true,
}

// ConfigValidator checks a resolved configuration before a run
type ConfigValidator struct{}

// NewConfigValidator creates a new configuration validator
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

// ValidateConfig performs validation of the whole configuration
func (cv *ConfigValidator) ValidateConfig(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{Valid: true}

	cv.validateLogLevel(cfg, result)
	cv.validateDetect(cfg, result)
	cv.validateOCR(cfg, result)

	logging.Debug("Configuration validation",
		"valid", result.Valid,
		"errors", len(result.Errors),
		"warnings", len(result.Warnings))

	return result
}

func (cv *ConfigValidator) validateLogLevel(cfg *config.Config, result *ValidationResult) {
	switch strings.ToLower(cfg.LogLevel) {
	case "", "trace", "debug", "info", "warn", "warning", "error":
	default:
		result.AddWarning(fmt.Sprintf("unknown log level %q, using info", cfg.LogLevel))
	}
}

func (cv *ConfigValidator) validateDetect(cfg *config.Config, result *ValidationResult) {
	d := cfg.Detect
	if d.CellSize <= 0 {
		result.AddError(config.KeyCellSize, d.CellSize, "positive_integer", "scan cell size must be a positive integer")
	} else if d.CellSize > 50 {
		result.AddWarning(fmt.Sprintf("large scan cell size (%dpx) may merge tiles with the background", d.CellSize))
	}

	if d.CornerSize <= 0 {
		result.AddError(config.KeyCornerSize, d.CornerSize, "positive_integer", "corner sample size must be a positive integer")
	}

	if d.Padding < 0 {
		result.AddError(config.KeyPadding, d.Padding, "non_negative", "padding must not be negative")
	}

	if d.CellMargin < 0 {
		result.AddError(config.KeyCellMargin, d.CellMargin, "non_negative", "cell margin must not be negative")
	}
}

func (cv *ConfigValidator) validateOCR(cfg *config.Config, result *ValidationResult) {
	o := cfg.OCR
	if _, err := recognize.ParseMode(o.Mode); err != nil {
		result.AddError(config.KeyOCRMode, o.Mode, "valid_mode", err.Error())
	}

	if strings.TrimSpace(o.Language) == "" {
		result.AddError(config.KeyOCRLanguage, o.Language, "required", "recognition language is required")
	}

	if o.CellTimeout <= 0 {
		result.AddError(config.KeyOCRCellTimeout, o.CellTimeout, "positive_duration",
			"per-cell timeout must be positive so one stuck cell cannot stall the grid")
	}
	if o.Timeout <= 0 {
		result.AddError(config.KeyOCRTimeout, o.Timeout, "positive_duration", "region timeout must be positive")
	}

	if o.Concurrency < 1 || o.Concurrency > constants.MaxConcurrency {
		result.AddWarning(fmt.Sprintf("concurrency %d is outside 1..%d and will be clamped",
			o.Concurrency, constants.MaxConcurrency))
	}

	if o.MinConfidence < 0 || o.MinConfidence > 1 {
		result.AddError(config.KeyOCRMinConfidence, o.MinConfidence, "unit_range", "minimum confidence must be between 0 and 1")
	}

	if o.TessConfig != "" {
		if info, err := os.Stat(o.TessConfig); err != nil || info.IsDir() {
			result.AddError(config.KeyOCRTessConfig, o.TessConfig, "file_exists", "tesseract config file not found")
		}
	}

	if o.Scale < 1 || o.Scale > crop.MaxScale {
		result.AddWarning(fmt.Sprintf("crop scale %.2f is outside 1..%.0f and will be clamped", o.Scale, crop.MaxScale))
	}
}

// ValidateImagePath checks that an input image exists and looks decodable
func (cv *ConfigValidator) ValidateImagePath(path string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if path == "" {
		result.AddError("image", path, "required", "an image file is required")
		return result
	}

	info, err := os.Stat(path)
	switch {
	case err != nil:
		result.AddError("image", path, "exists", fmt.Sprintf("cannot access image: %v", err))
		return result
	case info.IsDir():
		result.AddError("image", path, "regular_file", "image path is a directory")
		return result
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !knownImageExts[ext] {
		result.AddWarning(fmt.Sprintf("unrecognized image extension %q, decoding by content", ext))
	}

	return result
}

// FormatValidationErrors formats validation errors for user display
func FormatValidationErrors(result *ValidationResult) string {
	if result.Valid {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Configuration validation failed:\n")

	for _, err := range result.Errors {
		sb.WriteString(fmt.Sprintf("  • %s\n", err.Error()))
	}

	if len(result.Warnings) > 0 {
		sb.WriteString("\nWarnings:\n")
		for _, warning := range result.Warnings {
			sb.WriteString(fmt.Sprintf("  ⚠ %s\n", warning))
		}
	}

	return sb.String()
}
