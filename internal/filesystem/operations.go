package filesystem

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/jeeftor/wordgrid/internal/logging"
)

// EnsureDirectory creates a directory and all necessary parent directories
func EnsureDirectory(path string) error {
	if path == "." || path == "" {
		return nil // Current directory always exists
	}

	return os.MkdirAll(path, 0755)
}

// EnsureDirectoryForFile creates the parent directory for a given file path
func EnsureDirectoryForFile(filePath string) error {
	return EnsureDirectory(filepath.Dir(filePath))
}

// CheckFileExists verifies that a file exists and is readable
func CheckFileExists(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file '%s' does not exist", path)
		}
		return fmt.Errorf("cannot access file '%s': %w", path, err)
	}
	return nil
}

// WriteFileWithDirectory writes content to a file, creating directories as needed
func WriteFileWithDirectory(filePath string, content []byte, perm os.FileMode) error {
	if err := EnsureDirectoryForFile(filePath); err != nil {
		return fmt.Errorf("failed to create directory for file '%s': %w", filePath, err)
	}

	start := time.Now()
	if err := os.WriteFile(filePath, content, perm); err != nil {
		return fmt.Errorf("failed to write '%s': %w", filePath, err)
	}

	logging.Debug("File written",
		"path", filePath,
		"size_bytes", len(content),
		"duration", time.Since(start))
	return nil
}

// WritePNG encodes img as PNG and writes it to filePath
func WritePNG(filePath string, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("failed to encode '%s': %w", filePath, err)
	}
	return WriteFileWithDirectory(filePath, buf.Bytes(), 0644)
}

// ValidateOutputFile validates that an output file path is valid and writable
func ValidateOutputFile(outputFile string, paramName string) error {
	if outputFile == "" {
		return fmt.Errorf("%s is required", paramName)
	}

	if err := EnsureDirectoryForFile(outputFile); err != nil {
		return fmt.Errorf("cannot create directory for %s '%s': %w", paramName, outputFile, err)
	}

	info, err := os.Stat(outputFile)
	switch {
	case err == nil && info.IsDir():
		return fmt.Errorf("%s '%s' is a directory", paramName, outputFile)
	case err == nil:
		file, err := os.OpenFile(outputFile, os.O_WRONLY, 0)
		if err != nil {
			return fmt.Errorf("%s '%s' exists but is not writable: %w", paramName, outputFile, err)
		}
		file.Close()
	case !os.IsNotExist(err):
		return fmt.Errorf("cannot access %s '%s': %w", paramName, outputFile, err)
	}
	// If file doesn't exist, that's okay - we'll create it

	return nil
}
