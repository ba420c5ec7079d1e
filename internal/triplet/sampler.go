// Package triplet generates anchor/positive/negative training triplets from
// the class comments of a track library.
package triplet

import (
	"math/rand/v2"
	"sort"

	"github.com/jaki95/tracksim/internal/annotation"
	"github.com/jaki95/tracksim/internal/domain"
	"github.com/jaki95/tracksim/internal/logging"
	"github.com/jaki95/tracksim/internal/similarity"
)

// Options configures a Sampler.
type Options struct {
	// PerAnchor is both the number of triplets emitted per anchor and the
	// number of distinct top and bottom score values sampled from.
	PerAnchor int

	// AllowSame keeps (track, track) pairs as candidates.
	AllowSame bool

	// Seed makes sampling reproducible. A nil seed draws a random one.
	Seed *uint64
}

// Sampler draws triplets from a seeded random source. It is not safe for
// concurrent use.
type Sampler struct {
	opts Options
	rng  *rand.Rand
}

// NewSampler returns a Sampler seeded from opts.Seed.
func NewSampler(opts Options) *Sampler {
	var seed uint64
	if opts.Seed != nil {
		seed = *opts.Seed
	} else {
		seed = rand.Uint64()
	}

	return &Sampler{
		opts: opts,
		rng:  rand.New(rand.NewPCG(seed, seed)),
	}
}

// candidate is the right member of a scored pair.
type candidate struct {
	id    string
	score int
}

// Generate parses the tracks' comments, dropping tracks without a valid
// class comment, and samples triplets from the remaining ones.
func (s *Sampler) Generate(tracks []domain.TaggedTrack) []domain.Triplet {
	anns := make([]domain.Annotation, 0, len(tracks))
	for _, t := range tracks {
		if !t.HasComment {
			logging.Debug().Str("track", t.ID).Msg("No class comment, skipping")
			continue
		}
		a, err := annotation.Parse(t.ID, t.Comment)
		if err != nil {
			logging.Debug().Err(err).Str("track", t.ID).Msg("Invalid class comment, skipping")
			continue
		}
		anns = append(anns, a)
	}

	return s.GenerateAnnotations(anns)
}

// GenerateAnnotations samples triplets from parsed annotations. Anchors are
// emitted in input order.
//
// Every pair of tracks is scored, so cost grows with the square of the
// library size.
func (s *Sampler) GenerateAnnotations(anns []domain.Annotation) []domain.Triplet {
	if s.opts.PerAnchor <= 0 {
		return nil
	}

	anchors := make([]string, 0, len(anns))
	groups := make(map[string][]candidate, len(anns))
	for _, left := range anns {
		if _, seen := groups[left.TrackID]; !seen {
			anchors = append(anchors, left.TrackID)
		}
		group := groups[left.TrackID]
		for _, right := range anns {
			if !s.opts.AllowSame && left.TrackID == right.TrackID {
				continue
			}
			group = append(group, candidate{id: right.TrackID, score: similarity.Score(left, right)})
		}
		groups[left.TrackID] = group
	}

	triplets := make([]domain.Triplet, 0, len(anchors)*s.opts.PerAnchor)
	for _, anchor := range anchors {
		triplets = append(triplets, s.sampleGroup(anchor, groups[anchor])...)
	}

	return triplets
}

func (s *Sampler) sampleGroup(anchor string, group []candidate) []domain.Triplet {
	if len(group) == 0 {
		logging.Debug().Str("anchor", anchor).Msg("No candidates for anchor")
		return nil
	}

	n := s.opts.PerAnchor
	values := distinctScores(group)

	positives := pool(group, values[:min(n, len(values))])
	negatives := pool(group, values[max(len(values)-n, 0):])

	logging.Debug().
		Str("anchor", anchor).
		Int("positives", len(positives)).
		Int("negatives", len(negatives)).
		Msg("Sampling pools")

	out := make([]domain.Triplet, 0, n)
	for range n {
		out = append(out, domain.Triplet{
			Anchor:   anchor,
			Positive: positives[s.rng.IntN(len(positives))].id,
			Negative: negatives[s.rng.IntN(len(negatives))].id,
		})
	}
	return out
}

// distinctScores returns the distinct scores of group, highest first.
func distinctScores(group []candidate) []int {
	seen := make(map[int]struct{})
	values := make([]int, 0)
	for _, c := range group {
		if _, ok := seen[c.score]; !ok {
			seen[c.score] = struct{}{}
			values = append(values, c.score)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(values)))
	return values
}

// pool keeps the candidates whose score is one of values, in group order.
func pool(group []candidate, values []int) []candidate {
	keep := make(map[int]struct{}, len(values))
	for _, v := range values {
		keep[v] = struct{}{}
	}

	out := make([]candidate, 0, len(group))
	for _, c := range group {
		if _, ok := keep[c.score]; ok {
			out = append(out, c)
		}
	}
	return out
}

// TrainingPairs expands each triplet into a similar (anchor, positive) pair
// and a dissimilar (anchor, negative) pair.
func TrainingPairs(triplets []domain.Triplet) []domain.TrainingPair {
	pairs := make([]domain.TrainingPair, 0, 2*len(triplets))
	for _, t := range triplets {
		pairs = append(pairs,
			domain.TrainingPair{Left: t.Anchor, Right: t.Positive, Similar: true},
			domain.TrainingPair{Left: t.Anchor, Right: t.Negative, Similar: false},
		)
	}
	return pairs
}
