package annotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaki95/tracksim/internal/domain"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		comment    string
		wantEnergy int
		wantGenres []domain.Genre
		wantErr    bool
	}{
		{
			name:       "single genre",
			comment:    "2,e",
			wantEnergy: 2,
			wantGenres: []domain.Genre{"e"},
		},
		{
			name:       "several genres",
			comment:    "3,h;o;d",
			wantEnergy: 3,
			wantGenres: []domain.Genre{"h", "o", "d"},
		},
		{
			name:       "every letter of the alphabet",
			comment:    "0,h;o;d;a;t;g;e;b;f;i;r",
			wantEnergy: 0,
			wantGenres: domain.Genres,
		},
		{
			name:       "repeated genre is kept",
			comment:    "9,e;e",
			wantEnergy: 9,
			wantGenres: []domain.Genre{"e", "e"},
		},
		{name: "empty", comment: "", wantErr: true},
		{name: "energy only", comment: "2,", wantErr: true},
		{name: "legacy semicolon form", comment: "2;e;d", wantErr: true},
		{name: "two digit energy", comment: "12,e", wantErr: true},
		{name: "unknown genre", comment: "2,x", wantErr: true},
		{name: "upper case genre", comment: "2,E", wantErr: true},
		{name: "trailing separator", comment: "2,e;", wantErr: true},
		{name: "missing separator", comment: "2,ed", wantErr: true},
		{name: "double separator", comment: "2,e;;d", wantErr: true},
		{name: "surrounding text", comment: "2,e rip", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse("track.mp3", tt.comment)

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedAnnotation)
				assert.False(t, IsClassComment(tt.comment))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "track.mp3", got.TrackID)
			assert.Equal(t, tt.wantEnergy, got.Energy)
			assert.Equal(t, tt.wantGenres, got.Genres)
			assert.True(t, IsClassComment(tt.comment))
		})
	}
}

func TestFindClassComment(t *testing.T) {
	comment, ok := FindClassComment([]string{"ripped by someone", "4,t;g", "2,e"})
	assert.True(t, ok)
	assert.Equal(t, "4,t;g", comment)

	_, ok = FindClassComment([]string{"nothing here"})
	assert.False(t, ok)

	_, ok = FindClassComment(nil)
	assert.False(t, ok)
}
