package pairmatch

import (
	"context"
	"fmt"

	"github.com/jaki95/tracksim/config"
	"github.com/jaki95/tracksim/internal/storage"
)

// Repository persists a Matrix.
type Repository interface {
	// Load returns the stored labels. Nothing stored yet is an empty matrix.
	Load(ctx context.Context) (*Matrix, error)
	// Save replaces the stored labels with m.
	Save(ctx context.Context, m *Matrix) error
	Close() error
}

// Open returns the repository selected by cfg.Backend.
func Open(cfg config.LabellingConfig, store storage.Storage) (Repository, error) {
	switch cfg.Backend {
	case "", "csv":
		return NewCSVRepository(store, cfg.MatchesFile), nil
	case "badger":
		return NewBadgerRepository(BadgerOptions{Dir: cfg.BadgerDir})
	default:
		return nil, fmt.Errorf("unknown match table backend %q", cfg.Backend)
	}
}
