package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalFileStorage implements the Storage interface for local filesystem
type LocalFileStorage struct {
	outputDir string
	tempDir   string
}

var _ Storage = (*LocalFileStorage)(nil)

// NewLocalFileStorage creates a new local file storage instance
func NewLocalFileStorage(outputDir, tempDir string) (*LocalFileStorage, error) {
	// Ensure directories exist
	for _, dir := range []string{outputDir, tempDir} {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return &LocalFileStorage{
		outputDir: outputDir,
		tempDir:   tempDir,
	}, nil
}

// GetReader returns a reader for the specified file
func (s *LocalFileStorage) GetReader(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	return f, err
}

// GetWriter returns a writer for the specified file, creating parent
// directories as needed
func (s *LocalFileStorage) GetWriter(path string) (io.WriteCloser, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return os.Create(path)
}

// FileExists checks if a file exists
func (s *LocalFileStorage) FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ListFiles lists files in a directory whose names start with pattern
func (s *LocalFileStorage) ListFiles(dir string, pattern string) ([]string, error) {
	// If dir is empty, use the output directory
	if dir == "" {
		dir = s.outputDir
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var results []string
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		if pattern != "" && !strings.HasPrefix(file.Name(), pattern) {
			continue
		}

		results = append(results, filepath.Join(dir, file.Name()))
	}

	return results, nil
}

func (s *LocalFileStorage) Close() error {
	return nil
}
