package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/casetree/pkg/domain"
)

// Ext is the extension of stored case files.
const Ext = ".xml"

// Store implements ports.CaseStore using the local filesystem.
// It stores each case as <BasePath>/<name>.xml.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".casetree/cases".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".casetree", "cases")
	}
	return &Store{BasePath: basePath}
}

// sanitizeName ensures a case name maps to a single file directly under BasePath.
func sanitizeName(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("case name cannot be empty")
	}
	if strings.Contains(name, "..") {
		return "", fmt.Errorf("invalid case name %q: contains '..'", name)
	}
	if filepath.IsAbs(name) || strings.HasPrefix(name, "/") {
		return "", fmt.Errorf("invalid case name %q: absolute path", name)
	}
	if strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid case name %q: contains a path separator", name)
	}
	return strings.TrimSuffix(name, Ext), nil
}

// Path returns the file a case name maps to.
func (s *Store) Path(name string) (string, error) {
	clean, err := sanitizeName(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.BasePath, clean+Ext), nil
}

// Save persists the case atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Store) Save(ctx context.Context, name string, data []byte) error {
	destPath, err := s.Path(name)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure case directory: %w", err)
	}

	// Same directory as the destination so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-*"+Ext+".part")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}

	// Cannot rename an open file on Windows.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// On Windows, os.Rename fails if dest exists.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing case file for overwrite: %w", err)
		}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to case file: %w", err)
	}

	return nil
}

// Load reads the case file.
func (s *Store) Load(ctx context.Context, name string) ([]byte, error) {
	filePath, err := s.Path(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrCaseNotFound
		}
		return nil, fmt.Errorf("failed to read case file: %w", err)
	}
	return data, nil
}

// Delete removes the case file.
func (s *Store) Delete(ctx context.Context, name string) error {
	filePath, err := s.Path(name)
	if err != nil {
		return err
	}

	err = os.Remove(filePath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete case file: %w", err)
	}
	return nil
}

// List returns the names of all case files, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == Ext {
			names = append(names, strings.TrimSuffix(entry.Name(), Ext))
		}
	}
	slices.Sort(names)
	return names, nil
}
