// Package downloader fetches audio files listed in a sources table.
package downloader

import (
	"context"
	"errors"
)

var (
	ErrEmptyDownload = errors.New("downloaded file is empty")
	ErrBadStatus     = errors.New("unexpected response status")
	ErrNotAudio      = errors.New("downloaded file is not audio")
	ErrInvalidName   = errors.New("invalid file name")
)

// Downloader fetches one URL into outputDir under the given base name.
type Downloader interface {
	// Download returns the path of the written file.
	Download(ctx context.Context, url, outputDir, name string) (string, error)
}
