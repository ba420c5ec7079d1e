package triplet

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jaki95/tracksim/internal/domain"
)

var (
	tripletHeader = []string{"anchor", "positive", "negative"}
	pairHeader    = []string{"left", "right", "similar"}
)

// WriteTriplets writes an anchor,positive,negative table.
func WriteTriplets(w io.Writer, triplets []domain.Triplet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(tripletHeader); err != nil {
		return err
	}
	for _, t := range triplets {
		if err := cw.Write([]string{t.Anchor, t.Positive, t.Negative}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadTriplets reads a table written by WriteTriplets.
func ReadTriplets(r io.Reader) ([]domain.Triplet, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(tripletHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read triplets: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("failed to read triplets: missing header")
	}

	header := records[0]
	for i, name := range tripletHeader {
		if header[i] != name {
			return nil, fmt.Errorf("invalid triplets header: column %d is %q, want %q", i, header[i], name)
		}
	}

	triplets := make([]domain.Triplet, 0, len(records)-1)
	for _, rec := range records[1:] {
		triplets = append(triplets, domain.Triplet{Anchor: rec[0], Positive: rec[1], Negative: rec[2]})
	}
	return triplets, nil
}

// WriteTrainingPairs writes pairs with similar encoded as 1 or 0.
func WriteTrainingPairs(w io.Writer, pairs []domain.TrainingPair) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(pairHeader); err != nil {
		return err
	}
	for _, p := range pairs {
		similar := "0"
		if p.Similar {
			similar = "1"
		}
		if err := cw.Write([]string{p.Left, p.Right, similar}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
