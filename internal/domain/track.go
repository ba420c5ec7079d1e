package domain

// Genre is a single-letter class tag carried in a track comment.
type Genre string

// Genres is the fixed genre alphabet, in the canonical column order used by
// feature tables.
var Genres = []Genre{"h", "o", "d", "a", "t", "g", "e", "b", "f", "i", "r"}

// String returns the genre letter.
func (g Genre) String() string {
	return string(g)
}

// Valid reports whether g belongs to the alphabet.
func (g Genre) Valid() bool {
	return GenreIndex(g) >= 0
}

// GenreIndex returns the column index of g in Genres, or -1.
func GenreIndex(g Genre) int {
	for i, known := range Genres {
		if known == g {
			return i
		}
	}
	return -1
}

// TaggedTrack is a track as found on disk, before its comment is parsed.
type TaggedTrack struct {
	ID         string `json:"id"`
	Comment    string `json:"comment,omitempty"`
	HasComment bool   `json:"has_comment"`
}

// Annotation is the parsed energy level and genre tags of a track.
type Annotation struct {
	TrackID string  `json:"track_id"`
	Energy  int     `json:"energy"`
	Genres  []Genre `json:"genres"`
}

// GenreSet returns the distinct genres of the annotation.
func (a Annotation) GenreSet() map[Genre]struct{} {
	set := make(map[Genre]struct{}, len(a.Genres))
	for _, g := range a.Genres {
		set[g] = struct{}{}
	}
	return set
}
