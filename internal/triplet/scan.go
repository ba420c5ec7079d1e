package triplet

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jaki95/tracksim/internal/annotation"
	"github.com/jaki95/tracksim/internal/domain"
	"github.com/jaki95/tracksim/internal/logging"
	"github.com/jaki95/tracksim/internal/progress"
)

// Scan reads the class comment of every file in dir, in file name order.
// Files whose tags cannot be read are kept without a comment.
func Scan(ctx context.Context, dir string, reader annotation.CommentReader, bar progress.Bar) ([]domain.TaggedTrack, error) {
	names, err := trackFiles(dir)
	if err != nil {
		return nil, err
	}

	tracks := make([]domain.TaggedTrack, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := filepath.Join(dir, name)
		track := domain.TaggedTrack{ID: path}

		comments, err := reader.ReadComments(path)
		if err != nil {
			logging.Warn().Err(err).Str("track", path).Msg("Failed to read tags")
		} else {
			track.Comment, track.HasComment = annotation.FindClassComment(comments)
		}

		tracks = append(tracks, track)
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	return tracks, nil
}

// CountFiles returns the number of files Scan reads in dir, for sizing a bar.
func CountFiles(dir string) (int, error) {
	names, err := trackFiles(dir)
	return len(names), err
}

func trackFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read tracks folder: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}
