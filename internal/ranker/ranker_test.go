package ranker

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaki95/tracksim/internal/domain"
)

func row(id string, v ...float64) domain.FeatureRow {
	return domain.FeatureRow{ID: id, Vector: v}
}

func ids(ns []Neighbor) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = n.ID
	}
	return out
}

func TestScaler(t *testing.T) {
	s, err := Fit([][]float64{
		{1, 5, 10},
		{3, 5, 20},
		{5, 5, 30},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, s.Dim())

	got, err := s.Transform([]float64{3, 7, 30})
	require.NoError(t, err)

	// population std of {10,20,30} is sqrt(200/3)
	assert.InDelta(t, 0, got[0], 1e-12)
	assert.Equal(t, 0.0, got[1])
	assert.InDelta(t, 10/math.Sqrt(200.0/3), got[2], 1e-12)

	_, err = s.Transform([]float64{1, 2})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestScalerNearlyConstantColumn(t *testing.T) {
	a, b := 0.1, 0.2
	sum := a + b // 0.30000000000000004

	s, err := Fit([][]float64{
		{0.3, 1},
		{sum, 2},
		{0.3, 3},
	})
	require.NoError(t, err)

	for _, x := range []float64{0.3, sum} {
		got, err := s.Transform([]float64{x, 2})
		require.NoError(t, err)
		assert.Equal(t, 0.0, got[0])
	}
}

func TestRankOrthogonalRows(t *testing.T) {
	rows := []domain.FeatureRow{row("one", 1, 0), row("two", 0, 1)}

	got, err := Rank(rows, domain.FeatureRow{Vector: []float64{1, 0}}, 5)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "two", got[0].ID)
	// standardized rows are (1,-1) and (-1,1)
	assert.InDelta(t, math.Sqrt(8), got[0].Distance, 1e-12)
}

func TestRank(t *testing.T) {
	rows := []domain.FeatureRow{
		row("a", 0, 0),
		row("b", 1, 0),
		row("c", 3, 0),
		row("d", 7, 0),
		row("e", 1, 0),
	}

	tests := []struct {
		name     string
		query    domain.FeatureRow
		topK     int
		expected []string
	}{
		{
			name:     "query by id excludes itself",
			query:    row("c", 3, 0),
			topK:     10,
			expected: []string{"b", "e", "a", "d"},
		},
		{
			name:     "id match wins over vector match",
			query:    row("e", 1, 0),
			topK:     10,
			expected: []string{"b", "a", "c", "d"},
		},
		{
			name:     "unknown id falls back to first equal vector",
			query:    row("zzz", 1, 0),
			topK:     10,
			expected: []string{"e", "a", "c", "d"},
		},
		{
			name:     "query outside the table keeps every row",
			query:    row("", 6, 0),
			topK:     10,
			expected: []string{"d", "c", "b", "e", "a"},
		},
		{
			name:     "top k truncates",
			query:    row("a", 0, 0),
			topK:     2,
			expected: []string{"b", "e"},
		},
		{
			name:     "zero k",
			query:    row("a", 0, 0),
			topK:     0,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Rank(rows, tt.query, tt.topK)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ids(got))
			for i := 1; i < len(got); i++ {
				assert.LessOrEqual(t, got[i-1].Distance, got[i].Distance)
			}
		})
	}
}

func TestRankIsDeterministic(t *testing.T) {
	rows := []domain.FeatureRow{
		row("a", 0.3, 1.2, -4),
		row("b", 0.1, 0.2, 3),
		row("c", 2.5, 1.1, 0),
		row("d", 0.3, 1.2, -4),
		row("e", -1, 7, 2),
	}
	query := row("", 0.2, 1, 1)

	first, err := Rank(rows, query, 4)
	require.NoError(t, err)
	second, err := Rank(rows, query, 4)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRankDimensionMismatch(t *testing.T) {
	tests := []struct {
		name  string
		rows  []domain.FeatureRow
		query domain.FeatureRow
	}{
		{name: "no rows", rows: nil, query: row("", 1)},
		{name: "ragged rows", rows: []domain.FeatureRow{row("a", 1, 2), row("b", 1)}, query: row("", 1, 2)},
		{name: "short query", rows: []domain.FeatureRow{row("a", 1, 2)}, query: row("", 1)},
		{name: "empty vectors", rows: []domain.FeatureRow{row("a")}, query: row("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Rank(tt.rows, tt.query, 3)
			assert.ErrorIs(t, err, ErrDimensionMismatch)
		})
	}
}
