// Package similarity scores how close two tracks are from their annotations.
package similarity

import "github.com/jaki95/tracksim/internal/domain"

// MaxScore is the highest score two annotations can reach.
var MaxScore = 1 + len(domain.Genres)

// Score counts one for a matching energy level plus one for every genre of a
// that b is also tagged with. Genres are compared as sets, so the score is
// symmetric and repeated tags count once.
func Score(a, b domain.Annotation) int {
	count := 0
	if a.Energy == b.Energy {
		count++
	}

	other := b.GenreSet()
	for g := range a.GenreSet() {
		if _, ok := other[g]; ok {
			count++
		}
	}

	return count
}
