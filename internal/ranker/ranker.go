// Package ranker finds the feature rows closest to a query in standardized
// Euclidean space.
package ranker

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/jaki95/tracksim/internal/domain"
)

var ErrDimensionMismatch = errors.New("feature dimension mismatch")

type Neighbor struct {
	ID       string  `json:"id"`
	Distance float64 `json:"distance"`
}

// Rank returns up to topK rows nearest to query, closest first. Ties keep
// table order.
//
// The query itself is never returned: a row with the query's ID is skipped,
// or, when the query has no ID in the table, the first row with an identical
// vector.
func Rank(rows []domain.FeatureRow, query domain.FeatureRow, topK int) ([]Neighbor, error) {
	vectors := make([][]float64, len(rows))
	for i, r := range rows {
		vectors[i] = r.Vector
	}

	scaler, err := Fit(vectors)
	if err != nil {
		return nil, err
	}
	q, err := scaler.Transform(query.Vector)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	if topK <= 0 {
		return []Neighbor{}, nil
	}

	skip := selfIndex(rows, query)

	neighbors := make([]Neighbor, 0, len(rows))
	for i, r := range rows {
		if i == skip {
			continue
		}
		v, err := scaler.Transform(r.Vector)
		if err != nil {
			return nil, err
		}
		neighbors = append(neighbors, Neighbor{ID: r.ID, Distance: floats.Distance(q, v, 2)})
	}

	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Distance < neighbors[j].Distance
	})

	if len(neighbors) > topK {
		neighbors = neighbors[:topK]
	}
	return neighbors, nil
}

func selfIndex(rows []domain.FeatureRow, query domain.FeatureRow) int {
	if query.ID != "" {
		if i := slices.IndexFunc(rows, func(r domain.FeatureRow) bool { return r.ID == query.ID }); i >= 0 {
			return i
		}
	}
	return slices.IndexFunc(rows, func(r domain.FeatureRow) bool { return slices.Equal(r.Vector, query.Vector) })
}
