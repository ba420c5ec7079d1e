// Package export copies labelled tracks next to their match table so the
// dataset can be moved as one folder.
package export

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/jaki95/tracksim/internal/domain"
	"github.com/jaki95/tracksim/internal/logging"
	"github.com/jaki95/tracksim/internal/storage"
)

// ErrNameCollision is returned when two different tracks share a file name.
var ErrNameCollision = errors.New("tracks share a file name")

// Labelled copies every track referenced by matches into destDir, once each,
// and returns matches with paths relative to destDir's parent.
func Labelled(ctx context.Context, src storage.Storage, matches []domain.MatchPair, destDir string) ([]domain.MatchPair, error) {
	relDir := filepath.Base(filepath.Clean(destDir))

	copied := make(map[string]string)
	relocate := func(path string) (string, error) {
		name := filepath.Base(path)
		if prev, ok := copied[name]; ok {
			if prev != path {
				return "", fmt.Errorf("%w: %s and %s", ErrNameCollision, prev, path)
			}
			return filepath.Join(relDir, name), nil
		}

		if err := storage.CopyFile(src, path, filepath.Join(destDir, name)); err != nil {
			return "", fmt.Errorf("failed to copy %s: %w", path, err)
		}
		copied[name] = path
		logging.Debug().Str("track", path).Str("dest", destDir).Msg("Copied track")
		return filepath.Join(relDir, name), nil
	}

	out := make([]domain.MatchPair, 0, len(matches))
	for _, m := range matches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		left, err := relocate(m.Left)
		if err != nil {
			return nil, err
		}
		right, err := relocate(m.Right)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.MatchPair{Left: left, Right: right, Match: m.Match})
	}

	logging.Info().Int("tracks", len(copied)).Int("pairs", len(out)).Str("dest", destDir).Msg("Exported labelled tracks")
	return out, nil
}
