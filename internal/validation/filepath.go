package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FilePathValidator checks the file paths named in the config: the cache
// database, the log file and the copy overrides.
type FilePathValidator struct {
	// AllowHomeExpansion permits a leading "~/".
	AllowHomeExpansion bool
	MaxPathLength      int
}

func NewFilePathValidator() *FilePathValidator {
	return &FilePathValidator{
		AllowHomeExpansion: true,
		MaxPathLength:      4096,
	}
}

// ValidateAndSanitize rejects unsafe paths and returns the cleaned absolute
// form of the rest.
func (v *FilePathValidator) ValidateAndSanitize(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}
	if len(path) > v.MaxPathLength {
		return "", fmt.Errorf("path too long (max %d characters)", v.MaxPathLength)
	}
	if err := validateCharacters(path); err != nil {
		return "", err
	}
	if err := validateTraversal(path); err != nil {
		return "", err
	}
	return v.normalizePath(path)
}

// ValidateFile is ValidateAndSanitize for paths that must name a file.
func (v *FilePathValidator) ValidateFile(path string) (string, error) {
	clean, err := v.ValidateAndSanitize(path)
	if err != nil {
		return "", err
	}
	if info, err := os.Stat(clean); err == nil && info.IsDir() {
		return "", fmt.Errorf("path is a directory, not a file: %s", clean)
	}
	return clean, nil
}

func validateCharacters(path string) error {
	if strings.Contains(path, "\x00") {
		return fmt.Errorf("path contains null bytes")
	}
	for _, char := range path {
		if char < 32 && char != '\t' {
			return fmt.Errorf("path contains control characters")
		}
	}
	return nil
}

func validateTraversal(path string) error {
	for _, component := range strings.Split(filepath.ToSlash(path), "/") {
		if component == ".." {
			return fmt.Errorf("directory traversal not allowed")
		}
	}
	return nil
}

func (v *FilePathValidator) normalizePath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		if !v.AllowHomeExpansion || !strings.HasPrefix(path, "~/") {
			return "", fmt.Errorf("tilde expansion not allowed or invalid tilde usage")
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("cannot make path absolute: %w", err)
	}
	return abs, nil
}
