package features

import (
	"math/rand/v2"
	"path/filepath"
	"strings"

	"github.com/jaki95/tracksim/internal/domain"
)

// ClassesFromFileName reads class flags from a name like "[hd] Artist - Title.mp3":
// the first space-separated token minus its first character.
func ClassesFromFileName(name string) []bool {
	token, _, _ := strings.Cut(filepath.Base(name), " ")
	if token != "" {
		token = token[1:]
	}

	classes := make([]bool, len(domain.Genres))
	for i, g := range domain.Genres {
		classes[i] = strings.Contains(token, g.String())
	}
	return classes
}

// SampleFiles picks n names at random, reproducibly for a given seed. The
// whole slice is shuffled when n is out of range.
func SampleFiles(names []string, n int, seed uint64) []string {
	rng := rand.New(rand.NewPCG(seed, seed))

	out := make([]string, len(names))
	for i, j := range rng.Perm(len(names)) {
		out[i] = names[j]
	}
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// ClassRows returns id and class flags for each name, with no features.
func ClassRows(names []string) []domain.FeatureRow {
	rows := make([]domain.FeatureRow, 0, len(names))
	for _, name := range names {
		rows = append(rows, domain.FeatureRow{ID: name, Classes: ClassesFromFileName(name), Vector: []float64{}})
	}
	return rows
}
