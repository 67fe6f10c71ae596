package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// FileExists reports whether path names a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// EnsureDir creates directory if it doesn't exist
func EnsureDir(dirPath string) error {
	return os.MkdirAll(dirPath, 0755)
}

// SaveTOMLFile encodes data into filePath. The file is written next to its
// destination and renamed into place; a failed encode leaves filePath untouched.
func SaveTOMLFile(data any, filePath string) error {
	tmp, err := os.CreateTemp(filepath.Dir(filePath), ".wordcheck-*.toml")
	if err != nil {
		log.Errorf("Failed to create file: %v", err)
		return err
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(data); err != nil {
		tmp.Close()
		return fmt.Errorf("encoding %s: %w", filePath, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filePath)
}

// GetAbsolutePath returns the absolute form of path, or path itself when it cannot be resolved.
func GetAbsolutePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if absPath, err := filepath.Abs(path); err == nil {
		return absPath
	}
	return path
}

// GetExecutableDir returns the directory of the current executable
func GetExecutableDir() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(execPath), nil
}

// WritableDir creates dirPath when missing and reports whether files can be written in it.
func WritableDir(dirPath string) bool {
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		log.Warnf("Cannot create directory %s: %v", dirPath, err)
		return false
	}
	probe, err := os.CreateTemp(dirPath, ".write_test")
	if err != nil {
		log.Warnf("Cannot write to directory %s: %v", dirPath, err)
		return false
	}
	probe.Close()
	os.Remove(probe.Name())
	return true
}
