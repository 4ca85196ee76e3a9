package appstore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Compression detection is metadata-driven: a payload counts as gzipped
// when its URL carries the suffix or the response declares the media type.
// Payload bytes are never sniffed, so a response with neither signal is
// written verbatim even if it is secretly compressed.
const (
	gzipSuffix    = ".gz"
	gzipMediaType = "application/gzip"
)

// SelectPrimarySegment picks the segment to materialize from a result set:
// the first segment carrying a download URL. Remaining segments are ignored;
// multi-segment instances are not concatenated.
func SelectPrimarySegment(segments []Segment) (Segment, bool) {
	for _, segment := range segments {
		if segment.URL != "" {
			return segment, true
		}
	}

	return Segment{}, false
}

// DownloadSegment fetches a segment and writes exactly one local file at
// destPath, reversing gzip compression when the URL suffix or Content-Type
// header declares it. The intermediate .gz sibling never survives a
// successful call.
func (c *Client) DownloadSegment(ctx context.Context, segment Segment, destPath string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, segment.URL, nil)
	if err != nil {
		return "", fmt.Errorf("build download request: %w", err)
	}

	resp, err := c.downloads.Do(req)
	if err != nil {
		return "", fmt.Errorf("download segment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)

		return "", &RemoteError{Status: resp.StatusCode, Body: string(body)}
	}

	gzipped := strings.HasSuffix(segment.URL, gzipSuffix) ||
		resp.Header.Get("Content-Type") == gzipMediaType

	if !gzipped {
		if err := writeFile(destPath, resp.Body); err != nil {
			return "", err
		}

		return destPath, nil
	}

	if err := decompressToFile(resp.Body, destPath); err != nil {
		return "", err
	}

	return destPath, nil
}

// DownloadInstance materializes the primary segment of an instance into
// destDir under filename. Returns ErrNoSegments when the instance has
// nothing to download; no placeholder file is written.
func (c *Client) DownloadInstance(ctx context.Context, instanceID, destDir, filename string) (string, error) {
	segments, err := c.ListSegments(ctx, instanceID)
	if err != nil {
		return "", err
	}

	segment, ok := SelectPrimarySegment(segments)
	if !ok {
		return "", ErrNoSegments
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	return c.DownloadSegment(ctx, segment, filepath.Join(destDir, filename))
}

// decompressToFile saves the compressed payload next to destPath, streams
// it through gzip into destPath, then removes the intermediate file.
func decompressToFile(payload io.Reader, destPath string) error {
	gzPath := destPath + gzipSuffix

	if err := writeFile(gzPath, payload); err != nil {
		return err
	}

	gzFile, err := os.Open(gzPath)
	if err != nil {
		return fmt.Errorf("open compressed file: %w", err)
	}
	defer gzFile.Close()

	reader, err := gzip.NewReader(gzFile)
	if err != nil {
		return fmt.Errorf("gzip reader: %w", err)
	}
	defer reader.Close()

	if err := writeFile(destPath, reader); err != nil {
		return err
	}

	if err := os.Remove(gzPath); err != nil {
		return fmt.Errorf("remove compressed file: %w", err)
	}

	return nil
}

func writeFile(path string, content io.Reader) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if _, err := io.Copy(out, content); err != nil {
		out.Close()

		return fmt.Errorf("write %s: %w", path, err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	return nil
}
