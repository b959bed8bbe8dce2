// Package storage keeps copies of generated archives on local disk so an
// export can be re-downloaded after the HTTP response is gone.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// ArchiveStore writes export archives under a base directory.
type ArchiveStore struct {
	baseDir string
	logger  *zap.Logger
}

// NewArchiveStore creates a new archive store
func NewArchiveStore(baseDir string, logger *zap.Logger) *ArchiveStore {
	return &ArchiveStore{
		baseDir: baseDir,
		logger:  logger,
	}
}

// Save writes one archive under the base directory and returns its path.
// The name is sanitized so a crafted archive name cannot escape the base.
func (s *ArchiveStore) Save(name string, content []byte) (string, error) {
	safeName := SanitizeName(name)
	if safeName == "" {
		return "", fmt.Errorf("cannot save archive: empty name")
	}

	fullPath := filepath.Join(s.baseDir, safeName)
	if err := s.validatePath(fullPath); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		s.logger.Error("Failed to write archive",
			zap.String("path", fullPath),
			zap.Error(err))
		return "", fmt.Errorf("failed to write archive: %w", err)
	}

	s.logger.Debug("Archive saved",
		zap.String("path", fullPath),
		zap.Int("size", len(content)))

	return fullPath, nil
}

// validatePath checks that the path stays within baseDir.
func (s *ArchiveStore) validatePath(fullPath string) error {
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	absBase, err := filepath.Abs(s.baseDir)
	if err != nil {
		return fmt.Errorf("failed to resolve base path: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) && absPath != absBase {
		return fmt.Errorf("path escapes archive directory: %s", fullPath)
	}
	return nil
}

// SanitizeName reduces a filename to a safe character set.
func SanitizeName(name string) string {
	name = strings.TrimSpace(name)
	name = unsafeNameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	return name
}
