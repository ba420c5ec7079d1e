package discogs

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Explore prints the first limit start and end events of an XML document,
// indented by depth, with attributes and non-blank text.
func Explore(r io.Reader, w io.Writer, limit int) error {
	dec := xml.NewDecoder(r)
	depth := 0
	events := 0

	for events < limit {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("xml error at offset %d: %w", dec.InputOffset(), err)
		}

		indent := strings.Repeat("  ", depth)
		switch t := tok.(type) {
		case xml.StartElement:
			if _, err := fmt.Fprintf(w, "%s<%s%s>\n", indent, t.Name.Local, formatAttrs(t.Attr)); err != nil {
				return err
			}
			depth++
			events++
		case xml.EndElement:
			depth--
			events++
			if _, err := fmt.Fprintf(w, "%s</%s>\n", strings.Repeat("  ", depth), t.Name.Local); err != nil {
				return err
			}
		case xml.CharData:
			if text := strings.TrimSpace(string(t)); text != "" {
				if _, err := fmt.Fprintf(w, "%s%q\n", indent, text); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func formatAttrs(attrs []xml.Attr) string {
	if len(attrs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(attrs))
	for _, a := range attrs {
		parts = append(parts, fmt.Sprintf("%s=%q", a.Name.Local, a.Value))
	}
	sort.Strings(parts)
	return " " + strings.Join(parts, " ")
}
