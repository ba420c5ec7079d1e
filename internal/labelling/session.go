// Package labelling walks a user through unlabelled pairs of tracks and
// records their match answers.
package labelling

import (
	"math/rand/v2"

	"github.com/jaki95/tracksim/internal/pairmatch"
)

type pair struct {
	left, right string
}

// Session is a queue of the pairs the matrix has no label for yet, in a
// seeded random order.
type Session struct {
	matrix   *pairmatch.Matrix
	queue    []pair
	pos      int
	labelled int
}

func NewSession(candidates []string, matrix *pairmatch.Matrix, seed uint64) *Session {
	rng := rand.New(rand.NewPCG(seed, seed))

	shuffled := append([]string(nil), candidates...)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	seen := make(map[pair]struct{})
	var all []pair
	for i, a := range shuffled {
		for _, b := range shuffled[i+1:] {
			if a == b {
				continue
			}
			p := pair{left: a, right: b}
			if b < a {
				p = pair{left: b, right: a}
			}
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			all = append(all, p)
		}
	}
	rng.Shuffle(len(all), func(i, j int) {
		all[i], all[j] = all[j], all[i]
	})

	queue := make([]pair, 0, len(all))
	for _, p := range all {
		if !matrix.Exists(p.left, p.right) {
			queue = append(queue, p)
		}
	}

	return &Session{matrix: matrix, queue: queue}
}

// Next returns the current pair without consuming it. ok is false once the
// queue is exhausted.
func (s *Session) Next() (left, right string, ok bool) {
	if s.pos >= len(s.queue) {
		return "", "", false
	}
	p := s.queue[s.pos]
	return p.left, p.right, true
}

// Answer records match for the pair and moves past it when it is the
// current one.
func (s *Session) Answer(left, right string, match bool) {
	s.matrix.Set(left, right, match)
	s.labelled++

	if l, r, ok := s.Next(); ok && ((l == left && r == right) || (l == right && r == left)) {
		s.pos++
	}
}

// Skip moves past the current pair without labelling it.
func (s *Session) Skip() {
	if s.pos < len(s.queue) {
		s.pos++
	}
}

func (s *Session) Remaining() int {
	return len(s.queue) - s.pos
}

// Labelled returns the number of answers given in this session.
func (s *Session) Labelled() int {
	return s.labelled
}

func (s *Session) Matrix() *pairmatch.Matrix {
	return s.matrix
}
