package downloader

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
)

// Source is one row of a sources table.
type Source struct {
	ID  string
	URL string
}

// ReadSources reads an id,url table with a header row. Columns may appear in
// any order; rows repeating an earlier id are dropped. Ids name the downloaded
// files, so an id that is empty or is not a plain file name is an error.
func ReadSources(r io.Reader) ([]Source, error) {
	cr := csv.NewReader(r)

	head, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("sources table is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read sources header: %w", err)
	}

	idCol := slices.Index(head, "id")
	urlCol := slices.Index(head, "url")
	if idCol < 0 || urlCol < 0 {
		return nil, fmt.Errorf("sources header must have id and url columns, got %v", head)
	}

	seen := make(map[string]struct{})
	var sources []Source
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		id := rec[idCol]
		if err := checkName(id); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		sources = append(sources, Source{ID: id, URL: rec[urlCol]})
	}
	return sources, nil
}

// checkName rejects names that would not stay inside the download folder.
func checkName(name string) error {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
