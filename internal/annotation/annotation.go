// Package annotation parses the class comments embedded in audio files.
//
// A class comment has the form "<energy>,<genre>[;<genre>]*", e.g. "2,e;d"
// for energy 2 tagged electro and disco. Energy is a single digit and every
// genre is a letter of domain.Genres.
package annotation

import (
	"errors"
	"fmt"

	"github.com/jaki95/tracksim/internal/domain"
)

// ErrMalformedAnnotation is returned for comments outside the class grammar.
var ErrMalformedAnnotation = errors.New("malformed annotation")

// Parse parses a class comment into an annotation for trackID.
func Parse(trackID, comment string) (domain.Annotation, error) {
	if len(comment) < 3 {
		return domain.Annotation{}, malformed(comment, len(comment), "too short")
	}

	energy := comment[0]
	if energy < '0' || energy > '9' {
		return domain.Annotation{}, malformed(comment, 0, "energy must be a digit")
	}
	if comment[1] != ',' {
		return domain.Annotation{}, malformed(comment, 1, "expected ','")
	}

	// genres alternate with ';' separators: odd offsets from 2 are separators
	genres := make([]domain.Genre, 0, (len(comment)-1)/2)
	for i := 2; i < len(comment); i++ {
		c := comment[i]
		if (i-2)%2 == 1 {
			if c != ';' {
				return domain.Annotation{}, malformed(comment, i, "expected ';'")
			}
			if i == len(comment)-1 {
				return domain.Annotation{}, malformed(comment, i, "trailing ';'")
			}
			continue
		}

		g := domain.Genre(comment[i : i+1])
		if !g.Valid() {
			return domain.Annotation{}, malformed(comment, i, fmt.Sprintf("unknown genre %q", c))
		}
		genres = append(genres, g)
	}

	return domain.Annotation{
		TrackID: trackID,
		Energy:  int(energy - '0'),
		Genres:  genres,
	}, nil
}

// IsClassComment reports whether comment follows the class comment grammar.
func IsClassComment(comment string) bool {
	_, err := Parse("", comment)
	return err == nil
}

// FindClassComment returns the first class comment among comments.
func FindClassComment(comments []string) (string, bool) {
	for _, c := range comments {
		if IsClassComment(c) {
			return c, true
		}
	}
	return "", false
}

func malformed(comment string, pos int, reason string) error {
	return fmt.Errorf("%w: %q at offset %d: %s", ErrMalformedAnnotation, comment, pos, reason)
}
