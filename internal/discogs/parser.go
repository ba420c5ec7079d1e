package discogs

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jaki95/tracksim/internal/logging"
)

const logEvery = 10_000

// Parse streams r and calls fn for every <release> element, one at a time.
// It returns the number of releases handed to fn. An error from fn stops the
// parse.
func Parse(ctx context.Context, r io.Reader, fn func(*Release) error) (int, error) {
	dec := xml.NewDecoder(r)
	start := time.Now()
	count := 0

	for {
		if err := ctx.Err(); err != nil {
			return count, err
		}

		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return count, fmt.Errorf("xml error at offset %d: %w", dec.InputOffset(), err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "release" {
			continue
		}

		var rel Release
		if err := dec.DecodeElement(&rel, &se); err != nil {
			return count, fmt.Errorf("failed to decode release at offset %d: %w", dec.InputOffset(), err)
		}
		if err := fn(&rel); err != nil {
			return count, fmt.Errorf("release %d: %w", rel.ID, err)
		}

		count++
		if count%logEvery == 0 {
			logging.Info().Int("records", count).Dur("elapsed", time.Since(start)).Msg("Checked releases")
		}
	}

	logging.Info().Int("records", count).Dur("elapsed", time.Since(start)).Msg("Finished parsing releases")
	return count, nil
}
