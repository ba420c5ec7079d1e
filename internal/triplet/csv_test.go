package triplet

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaki95/tracksim/internal/domain"
)

func TestWriteTriplets(t *testing.T) {
	var buf bytes.Buffer
	err := WriteTriplets(&buf, []domain.Triplet{
		{Anchor: "a.mp3", Positive: "b.mp3", Negative: "c.mp3"},
		{Anchor: "dir/with,comma.mp3", Positive: "a.mp3", Negative: "b.mp3"},
	})
	require.NoError(t, err)

	assert.Equal(t, "anchor,positive,negative\n"+
		"a.mp3,b.mp3,c.mp3\n"+
		"\"dir/with,comma.mp3\",a.mp3,b.mp3\n", buf.String())

	back, err := ReadTriplets(&buf)
	require.NoError(t, err)
	assert.Len(t, back, 2)
	assert.Equal(t, "dir/with,comma.mp3", back[1].Anchor)
}

func TestReadTripletsErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "wrong header", input: "left,right,similar\na,b,1\n"},
		{name: "short row", input: "anchor,positive,negative\na,b\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadTriplets(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestWriteTrainingPairs(t *testing.T) {
	var buf bytes.Buffer
	err := WriteTrainingPairs(&buf, TrainingPairs([]domain.Triplet{
		{Anchor: "a", Positive: "b", Negative: "c"},
	}))
	require.NoError(t, err)

	assert.Equal(t, "left,right,similar\na,b,1\na,c,0\n", buf.String())
}
