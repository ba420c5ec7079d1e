package triplet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaki95/tracksim/internal/annotation"
	"github.com/jaki95/tracksim/internal/domain"
	"github.com/jaki95/tracksim/internal/similarity"
)

func seed(v uint64) *uint64 {
	return &v
}

func library(t *testing.T) []domain.Annotation {
	t.Helper()
	comments := map[string]string{
		"a.mp3": "2,e;d",
		"b.mp3": "2,e;d",
		"c.mp3": "2,e",
		"d.mp3": "3,h;o",
		"e.mp3": "1,t;g",
		"f.mp3": "2,d;h",
	}
	ids := []string{"a.mp3", "b.mp3", "c.mp3", "d.mp3", "e.mp3", "f.mp3"}

	anns := make([]domain.Annotation, 0, len(ids))
	for _, id := range ids {
		a, err := annotation.Parse(id, comments[id])
		require.NoError(t, err)
		anns = append(anns, a)
	}
	return anns
}

func byID(anns []domain.Annotation) map[string]domain.Annotation {
	m := make(map[string]domain.Annotation, len(anns))
	for _, a := range anns {
		m[a.TrackID] = a
	}
	return m
}

func TestGenerateAnnotationsProperties(t *testing.T) {
	anns := library(t)
	index := byID(anns)

	for _, n := range []int{1, 2, 3, 5} {
		sampler := NewSampler(Options{PerAnchor: n, Seed: seed(7)})
		triplets := sampler.GenerateAnnotations(anns)

		require.Len(t, triplets, len(anns)*n)

		for i, tr := range triplets {
			// anchors are grouped in input order
			assert.Equal(t, anns[i/n].TrackID, tr.Anchor)
			assert.NotEqual(t, tr.Anchor, tr.Positive)
			assert.NotEqual(t, tr.Anchor, tr.Negative)

			anchor := index[tr.Anchor]
			var group []candidate
			for _, other := range anns {
				if other.TrackID != anchor.TrackID {
					group = append(group, candidate{id: other.TrackID, score: similarity.Score(anchor, other)})
				}
			}
			values := distinctScores(group)
			top := values[:min(n, len(values))]
			bottom := values[max(len(values)-n, 0):]

			assert.Contains(t, top, similarity.Score(anchor, index[tr.Positive]))
			assert.Contains(t, bottom, similarity.Score(anchor, index[tr.Negative]))
		}
	}
}

func TestGenerateAnnotationsPositiveBeatsNegativeWithSinglePool(t *testing.T) {
	anns := library(t)
	index := byID(anns)

	triplets := NewSampler(Options{PerAnchor: 1, Seed: seed(1)}).GenerateAnnotations(anns)

	for _, tr := range triplets {
		anchor := index[tr.Anchor]
		assert.GreaterOrEqual(t,
			similarity.Score(anchor, index[tr.Positive]),
			similarity.Score(anchor, index[tr.Negative]),
		)
	}
}

func TestGenerateAnnotationsIsReproducible(t *testing.T) {
	anns := library(t)

	first := NewSampler(Options{PerAnchor: 3, Seed: seed(42)}).GenerateAnnotations(anns)
	second := NewSampler(Options{PerAnchor: 3, Seed: seed(42)}).GenerateAnnotations(anns)

	assert.Equal(t, first, second)
}

func TestGenerateAnnotationsEdgeCases(t *testing.T) {
	single := []domain.Annotation{{TrackID: "only.mp3", Energy: 2, Genres: []domain.Genre{"e"}}}
	pair := []domain.Annotation{
		{TrackID: "x.mp3", Energy: 2, Genres: []domain.Genre{"e"}},
		{TrackID: "y.mp3", Energy: 3, Genres: []domain.Genre{"h"}},
	}

	tests := []struct {
		name     string
		anns     []domain.Annotation
		opts     Options
		expected []domain.Triplet
	}{
		{
			name:     "no tracks",
			anns:     nil,
			opts:     Options{PerAnchor: 3},
			expected: []domain.Triplet{},
		},
		{
			name:     "single track without self pairs yields nothing",
			anns:     single,
			opts:     Options{PerAnchor: 3},
			expected: []domain.Triplet{},
		},
		{
			name: "single track with self pairs pairs with itself",
			anns: single,
			opts: Options{PerAnchor: 2, AllowSame: true},
			expected: []domain.Triplet{
				{Anchor: "only.mp3", Positive: "only.mp3", Negative: "only.mp3"},
				{Anchor: "only.mp3", Positive: "only.mp3", Negative: "only.mp3"},
			},
		},
		{
			name: "fewer distinct scores than per anchor",
			anns: pair,
			opts: Options{PerAnchor: 2},
			expected: []domain.Triplet{
				{Anchor: "x.mp3", Positive: "y.mp3", Negative: "y.mp3"},
				{Anchor: "x.mp3", Positive: "y.mp3", Negative: "y.mp3"},
				{Anchor: "y.mp3", Positive: "x.mp3", Negative: "x.mp3"},
				{Anchor: "y.mp3", Positive: "x.mp3", Negative: "x.mp3"},
			},
		},
		{
			name:     "zero per anchor",
			anns:     pair,
			opts:     Options{PerAnchor: 0},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Seed = seed(3)
			got := NewSampler(tt.opts).GenerateAnnotations(tt.anns)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestGenerateAllowSameKeepsSelfCandidate(t *testing.T) {
	anns := library(t)

	triplets := NewSampler(Options{PerAnchor: 1, AllowSame: true, Seed: seed(9)}).GenerateAnnotations(anns)

	// a track always scores highest against itself, so it is in every positive pool
	require.Len(t, triplets, len(anns))
	index := byID(anns)
	for _, tr := range triplets {
		anchor := index[tr.Anchor]
		assert.Equal(t, similarity.Score(anchor, anchor), similarity.Score(anchor, index[tr.Positive]))
	}
}

func TestPoolUsesDistinctValues(t *testing.T) {
	group := []candidate{
		{id: "a", score: 3},
		{id: "b", score: 3},
		{id: "c", score: 3},
		{id: "d", score: 1},
		{id: "e", score: 0},
	}

	values := distinctScores(group)
	require.Equal(t, []int{3, 1, 0}, values)

	// the two best distinct values reach past the tied rows to "d"
	top := pool(group, values[:2])
	assert.Equal(t, []candidate{{"a", 3}, {"b", 3}, {"c", 3}, {"d", 1}}, top)

	bottom := pool(group, values[len(values)-2:])
	assert.Equal(t, []candidate{{"d", 1}, {"e", 0}}, bottom)
}

func TestGenerateSkipsUnannotatedTracks(t *testing.T) {
	tracks := []domain.TaggedTrack{
		{ID: "a.mp3", Comment: "2,e", HasComment: true},
		{ID: "b.mp3"},
		{ID: "c.mp3", Comment: "2;e;d", HasComment: true},
		{ID: "d.mp3", Comment: "3,h", HasComment: true},
	}

	triplets := NewSampler(Options{PerAnchor: 1, Seed: seed(5)}).Generate(tracks)

	assert.Equal(t, []domain.Triplet{
		{Anchor: "a.mp3", Positive: "d.mp3", Negative: "d.mp3"},
		{Anchor: "d.mp3", Positive: "a.mp3", Negative: "a.mp3"},
	}, triplets)
}

func TestTrainingPairs(t *testing.T) {
	triplets := []domain.Triplet{
		{Anchor: "a", Positive: "b", Negative: "c"},
		{Anchor: "d", Positive: "e", Negative: "f"},
	}

	pairs := TrainingPairs(triplets)

	assert.Equal(t, []domain.TrainingPair{
		{Left: "a", Right: "b", Similar: true},
		{Left: "a", Right: "c", Similar: false},
		{Left: "d", Right: "e", Similar: true},
		{Left: "d", Right: "f", Similar: false},
	}, pairs)
}
