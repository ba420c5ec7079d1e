package pairmatch

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/jaki95/tracksim/internal/domain"
	"github.com/jaki95/tracksim/internal/logging"
	"github.com/jaki95/tracksim/internal/storage"
)

var csvHeader = []string{"left", "right", "match"}

// CSVRepository keeps the matrix as a left,right,match CSV file.
type CSVRepository struct {
	store storage.Storage
	path  string
}

var _ Repository = (*CSVRepository)(nil)

func NewCSVRepository(store storage.Storage, path string) *CSVRepository {
	return &CSVRepository{store: store, path: path}
}

func (r *CSVRepository) Load(_ context.Context) (*Matrix, error) {
	f, err := r.store.GetReader(r.path)
	if errors.Is(err, storage.ErrFileNotFound) {
		logging.Info().Str("path", r.path).Msg("No match table yet, starting empty")
		return NewMatrix(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open match table: %w", err)
	}
	defer f.Close()

	pairs, err := ReadPairs(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.path, err)
	}

	m := NewMatrix()
	for _, p := range pairs {
		m.Set(p.Left, p.Right, p.Match)
	}
	return m, nil
}

func (r *CSVRepository) Save(_ context.Context, m *Matrix) error {
	w, err := r.store.GetWriter(r.path)
	if err != nil {
		return fmt.Errorf("failed to create match table: %w", err)
	}
	if err := WritePairs(w, m.Entries()); err != nil {
		w.Close()
		return fmt.Errorf("failed to write match table: %w", err)
	}
	return w.Close()
}

func (r *CSVRepository) Close() error {
	return nil
}

// ReadPairs reads a left,right,match table. Match values accept any form
// strconv.ParseBool does, including True and False.
func ReadPairs(r io.Reader) ([]domain.MatchPair, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	head, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	for i, name := range csvHeader {
		if head[i] != name {
			return nil, fmt.Errorf("invalid match table header: column %d is %q, want %q", i+1, head[i], name)
		}
	}

	var pairs []domain.MatchPair
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		match, err := strconv.ParseBool(rec[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid match value %q", line, rec[2])
		}
		pairs = append(pairs, domain.MatchPair{Left: rec[0], Right: rec[1], Match: match})
	}
	return pairs, nil
}

// WritePairs writes pairs with match as True or False.
func WritePairs(w io.Writer, pairs []domain.MatchPair) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, p := range pairs {
		match := "False"
		if p.Match {
			match = "True"
		}
		if err := cw.Write([]string{p.Left, p.Right, match}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
