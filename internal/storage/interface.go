package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jaki95/tracksim/config"
)

// ErrFileNotFound is returned by GetReader when path does not exist.
var ErrFileNotFound = errors.New("file not found")

// Storage defines the interface for reading and writing tables and tracks.
type Storage interface {
	GetReader(path string) (io.ReadCloser, error)

	GetWriter(path string) (io.WriteCloser, error)

	FileExists(path string) bool

	ListFiles(dir string, pattern string) ([]string, error)

	Close() error
}

// Uploader is implemented by remote backends that can take a local file.
type Uploader interface {
	UploadFile(localPath, objectName string) (string, error)
}

// New builds the storage backend selected by cfg.
func New(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	switch cfg.Type {
	case "", "local":
		return NewLocalFileStorage(cfg.OutputDir, cfg.TempDir)
	case "gcs":
		return NewGCSStorage(ctx, cfg.Bucket, cfg.ObjectPrefix, cfg.TempDir, cfg.CredentialsFile)
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}

// CopyFile copies from to to, both resolved by s.
func CopyFile(s Storage, from, to string) error {
	r, err := s.GetReader(from)
	if err != nil {
		return err
	}
	defer r.Close()

	w, err := s.GetWriter(to)
	if err != nil {
		return err
	}

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return fmt.Errorf("failed to copy %s to %s: %w", from, to, err)
	}
	return w.Close()
}
