// Package pairmatch stores human match/no-match labels for unordered pairs of
// tracks.
package pairmatch

import (
	"sort"

	"github.com/jaki95/tracksim/internal/domain"
)

type pairKey struct {
	left, right string
}

func keyOf(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{left: a, right: b}
}

// Matrix holds at most one label per unordered pair. The zero value is not
// usable; call NewMatrix.
type Matrix struct {
	labels map[pairKey]bool
}

func NewMatrix() *Matrix {
	return &Matrix{labels: make(map[pairKey]bool)}
}

func (m *Matrix) Set(a, b string, match bool) {
	m.labels[keyOf(a, b)] = match
}

// Remove deletes the label of the pair, if any.
func (m *Matrix) Remove(a, b string) {
	delete(m.labels, keyOf(a, b))
}

// Get returns the label of the pair; ok is false when it was never labelled.
func (m *Matrix) Get(a, b string) (match bool, ok bool) {
	match, ok = m.labels[keyOf(a, b)]
	return match, ok
}

func (m *Matrix) Exists(a, b string) bool {
	_, ok := m.labels[keyOf(a, b)]
	return ok
}

func (m *Matrix) Len() int {
	return len(m.labels)
}

// Entries returns every label with Left <= Right, sorted by Left then Right.
func (m *Matrix) Entries() []domain.MatchPair {
	out := make([]domain.MatchPair, 0, len(m.labels))
	for k, match := range m.labels {
		out = append(out, domain.MatchPair{Left: k.left, Right: k.right, Match: match})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Left != out[j].Left {
			return out[i].Left < out[j].Left
		}
		return out[i].Right < out[j].Right
	})
	return out
}
