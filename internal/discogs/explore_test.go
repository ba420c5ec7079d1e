package discogs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExplore(t *testing.T) {
	input := `<releases><release id="1" status="Accepted"><title>Stockholm</title></release></releases>`

	var out strings.Builder
	require.NoError(t, Explore(strings.NewReader(input), &out, 100))

	assert.Equal(t, `<releases>
  <release id="1" status="Accepted">
    <title>
      "Stockholm"
    </title>
  </release>
</releases>
`, out.String())
}

func TestExploreLimit(t *testing.T) {
	var out strings.Builder
	require.NoError(t, Explore(strings.NewReader(sampleDump), &out, 3))

	assert.Equal(t, "<releases>\n  <release id=\"1\" status=\"Accepted\">\n    <artists>\n", out.String())
}

func TestExploreInvalidXML(t *testing.T) {
	var out strings.Builder
	err := Explore(strings.NewReader("<a><b></a>"), &out, 10)
	assert.Error(t, err)
}
