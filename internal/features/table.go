// Package features reads and writes per-track feature tables: an id column,
// one boolean column per genre class, then numeric feature columns.
package features

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/jaki95/tracksim/internal/domain"
)

const IDColumn = "audio"

var ErrInvalidTable = errors.New("invalid feature table")

type Table struct {
	FeatureNames []string
	Rows         []domain.FeatureRow
}

// Vectors returns the feature vectors of every row, in table order.
func (t *Table) Vectors() [][]float64 {
	out := make([][]float64, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Vector
	}
	return out
}

// Find returns the row with the given id.
func (t *Table) Find(id string) (domain.FeatureRow, bool) {
	for _, r := range t.Rows {
		if r.ID == id {
			return r, true
		}
	}
	return domain.FeatureRow{}, false
}

func header(featureNames []string) []string {
	h := make([]string, 0, 1+len(domain.Genres)+len(featureNames))
	h = append(h, IDColumn)
	for _, g := range domain.Genres {
		h = append(h, g.String())
	}
	return append(h, featureNames...)
}

func ReadTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)

	head, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: missing header", ErrInvalidTable)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	classCols := len(domain.Genres)
	if len(head) < 1+classCols {
		return nil, fmt.Errorf("%w: header has %d columns, want at least %d", ErrInvalidTable, len(head), 1+classCols)
	}
	for i, g := range domain.Genres {
		if head[1+i] != g.String() {
			return nil, fmt.Errorf("%w: column %d is %q, want class %q", ErrInvalidTable, 2+i, head[1+i], g)
		}
	}

	t := &Table{FeatureNames: append([]string(nil), head[1+classCols:]...)}
	// header is line 1
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read line %d: %w", line, err)
		}

		row := domain.FeatureRow{
			ID:      rec[0],
			Classes: make([]bool, classCols),
			Vector:  make([]float64, len(t.FeatureNames)),
		}
		for i := range classCols {
			v, err := strconv.ParseBool(rec[1+i])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d column %d: %v", ErrInvalidTable, line, 2+i, err)
			}
			row.Classes[i] = v
		}
		for i := range t.FeatureNames {
			col := 1 + classCols + i
			v, err := strconv.ParseFloat(rec[col], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d column %d: %v", ErrInvalidTable, line, col+1, err)
			}
			row.Vector[i] = v
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

func (t *Table) Write(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header(t.FeatureNames)); err != nil {
		return err
	}

	for _, row := range t.Rows {
		if len(row.Vector) != len(t.FeatureNames) {
			return fmt.Errorf("%w: row %q has %d features, want %d", ErrInvalidTable, row.ID, len(row.Vector), len(t.FeatureNames))
		}
		rec := make([]string, 0, 1+len(domain.Genres)+len(row.Vector))
		rec = append(rec, row.ID)
		for i := range domain.Genres {
			rec = append(rec, formatBool(i < len(row.Classes) && row.Classes[i]))
		}
		for _, v := range row.Vector {
			rec = append(rec, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
