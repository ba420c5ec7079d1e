package downloader

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/jaki95/tracksim/internal/logging"
)

const defaultExtension = ".mp3"

var audioExtensions = map[string]string{
	"audio/mpeg":   ".mp3",
	"audio/mp3":    ".mp3",
	"audio/flac":   ".flac",
	"audio/x-flac": ".flac",
	"audio/wav":    ".wav",
	"audio/x-wav":  ".wav",
	"audio/aiff":   ".aiff",
	"audio/x-aiff": ".aiff",
	"audio/ogg":    ".ogg",
	"audio/mp4":    ".m4a",
	"audio/x-m4a":  ".m4a",
}

// HTTPDownloader handles downloading from plain HTTP URLs
type HTTPDownloader struct {
	client *http.Client
}

var _ Downloader = (*HTTPDownloader)(nil)

// NewHTTPDownloader creates a new HTTP downloader. A zero timeout means none.
func NewHTTPDownloader(timeout time.Duration) *HTTPDownloader {
	return &HTTPDownloader{client: &http.Client{Timeout: timeout}}
}

// Download writes the body of downloadURL to outputDir/name plus an extension
// taken from the Content-Type, or the URL path when that is not an audio type.
// name must be a plain file name.
func (d *HTTPDownloader) Download(ctx context.Context, downloadURL, outputDir, name string) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	// Set user agent
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}

	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	outputPath := filepath.Join(outputDir, name+extension(resp.Header.Get("Content-Type"), downloadURL))
	outFile, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}

	bytesWritten, err := io.Copy(outFile, resp.Body)
	if closeErr := outFile.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(outputPath)
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	if bytesWritten == 0 {
		os.Remove(outputPath)
		return "", ErrEmptyDownload
	}

	if err := validateAudioFile(outputPath); err != nil {
		os.Remove(outputPath)
		return "", err
	}

	logging.Debug().Str("path", outputPath).Int64("size", bytesWritten).Msg("Downloaded audio file")
	return outputPath, nil
}

func extension(contentType, downloadURL string) string {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		if ext, ok := audioExtensions[mediaType]; ok {
			return ext
		}
	}

	if u, err := url.Parse(downloadURL); err == nil {
		if ext := strings.ToLower(path.Ext(u.Path)); ext != "" && len(ext) <= 5 {
			return ext
		}
	}

	return defaultExtension
}

// validateAudioFile rejects files that are clearly HTML or an error page.
// Unknown signatures pass with a warning.
func validateAudioFile(filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file for validation: %w", err)
	}
	defer file.Close()

	// Read first 512 bytes to check file signature
	buffer := make([]byte, 512)
	n, err := io.ReadFull(file, buffer)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return fmt.Errorf("failed to read file header: %w", err)
	}
	header := buffer[:n]

	switch {
	case n >= 2 && header[0] == 0xFF && (header[1]&0xE0) == 0xE0: // MP3 frame
		return nil
	case n >= 3 && string(header[:3]) == "ID3":
		return nil
	case n >= 4 && (string(header[:4]) == "RIFF" || string(header[:4]) == "fLaC" ||
		string(header[:4]) == "OggS" || string(header[:4]) == "FORM"):
		return nil
	case n >= 8 && string(header[4:8]) == "ftyp": // M4A/MP4
		return nil
	}

	headerStr := strings.ToLower(string(header[:min(n, 100)]))
	if strings.Contains(headerStr, "<html") || strings.Contains(headerStr, "<!doctype") {
		return fmt.Errorf("%w: looks like HTML", ErrNotAudio)
	}

	logging.Warn().Str("path", filePath).Hex("header", header[:min(n, 16)]).Msg("Could not verify audio file format, keeping it")
	return nil
}
