package annotation

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dhowden/tag"
)

// CommentReader returns the free-text comments embedded in an audio file.
type CommentReader interface {
	ReadComments(path string) ([]string, error)
}

var ErrInvalidAIFF = errors.New("invalid aiff file")

// FileReader reads comments from ID3v2 tags (mp3, aiff) and from the
// comment field of other tagged formats.
type FileReader struct{}

func NewFileReader() *FileReader {
	return &FileReader{}
}

func (r *FileReader) ReadComments(path string) ([]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return readTagged(path, tag.ReadFrom)
	case ".aif", ".aiff":
		return readTagged(path, readAIFFTags)
	case ".flac", ".m4a", ".ogg":
		return readTagged(path, tag.ReadFrom)
	default:
		return nil, nil
	}
}

func readTagged(path string, read func(io.ReadSeeker) (tag.Metadata, error)) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	m, err := read(f)
	if errors.Is(err, tag.ErrNoTagsFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read tags of %s: %w", path, err)
	}

	return comments(m), nil
}

// comments collects every COMM frame. Repeated frames are keyed COMM,
// COMM_0, COMM_1, ... so sorting the keys keeps file order.
func comments(m tag.Metadata) []string {
	raw := m.Raw()
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []string
	for _, k := range keys {
		if c, ok := raw[k].(*tag.Comm); ok && c.Text != "" {
			out = append(out, c.Text)
		}
	}

	if len(out) == 0 && m.Comment() != "" {
		out = append(out, m.Comment())
	}
	return out
}

// readAIFFTags locates the "ID3 " chunk of an AIFF/AIFC container and decodes
// it as an ID3v2 tag.
func readAIFFTags(r io.ReadSeeker) (tag.Metadata, error) {
	var header [12]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAIFF, err)
	}
	if string(header[0:4]) != "FORM" {
		return nil, fmt.Errorf("%w: missing FORM header", ErrInvalidAIFF)
	}
	if form := string(header[8:12]); form != "AIFF" && form != "AIFC" {
		return nil, fmt.Errorf("%w: unexpected form type %q", ErrInvalidAIFF, form)
	}

	offset := int64(len(header))
	for {
		var chunk [8]byte
		if _, err := io.ReadFull(r, chunk[:]); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, tag.ErrNoTagsFound
			}
			return nil, err
		}
		offset += int64(len(chunk))

		id := string(chunk[0:4])
		size := int64(binary.BigEndian.Uint32(chunk[4:8]))

		if strings.EqualFold(id, "ID3 ") {
			return tag.ReadID3v2Tags(io.NewSectionReader(readerAt{r}, offset, size))
		}

		// chunks are padded to an even length
		skip := size + size%2
		if _, err := r.Seek(skip, io.SeekCurrent); err != nil {
			return nil, err
		}
		offset += skip
	}
}

// readerAt adapts the sequential reader so the tag chunk can be read as a
// section without disturbing the chunk walk.
type readerAt struct {
	rs io.ReadSeeker
}

func (ra readerAt) ReadAt(p []byte, off int64) (int, error) {
	if _, err := ra.rs.Seek(off, io.SeekStart); err != nil {
		return 0, err
	}
	return io.ReadFull(ra.rs, p)
}
