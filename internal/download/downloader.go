package download

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"

	"podscribe/internal/logging"
	"podscribe/internal/services"
)

// HTTPDoer describes the HTTP client used for audio downloads.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Downloader fetches remote audio into a staging directory.
type Downloader struct {
	client HTTPDoer
	logger *slog.Logger
	// Quiet suppresses the terminal progress bar.
	Quiet bool
}

// NewDownloader builds a downloader. A nil client falls back to a default
// http.Client without a global timeout so long episodes are not cut off;
// cancellation comes from the request context.
func NewDownloader(client HTTPDoer, logger *slog.Logger) *Downloader {
	if client == nil {
		client = &http.Client{}
	}
	return &Downloader{
		client: client,
		logger: logging.NewComponentLogger(logger, "download"),
	}
}

// acceptableContentType reports whether the response looks like audio. Some
// podcast CDNs serve octet-stream or omit the header entirely, so only
// clearly wrong types (HTML error pages and the like) are rejected.
func acceptableContentType(contentType string) bool {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if contentType == "" {
		return true
	}
	if idx := strings.IndexByte(contentType, ';'); idx >= 0 {
		contentType = strings.TrimSpace(contentType[:idx])
	}
	switch {
	case strings.HasPrefix(contentType, "audio/"),
		strings.HasPrefix(contentType, "video/"),
		contentType == "application/octet-stream",
		contentType == "binary/octet-stream":
		return true
	default:
		return false
	}
}

// Fetch downloads rawURL into stagingDir and returns the owned asset. On any
// failure the partial file is removed before returning.
func (d *Downloader) Fetch(ctx context.Context, rawURL, stagingDir string) (*Asset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, services.Wrap(services.ErrFetch, "acquire", "build request", rawURL, err)
	}

	start := time.Now()
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrFetch, "acquire", "request", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, services.Wrap(services.ErrFetch, "acquire", "request",
			fmt.Sprintf("%s returned %d", rawURL, resp.StatusCode), nil)
	}
	if contentType := resp.Header.Get("Content-Type"); !acceptableContentType(contentType) {
		return nil, services.Wrap(services.ErrFetch, "acquire", "response",
			fmt.Sprintf("%s is not audio (content-type %s)", rawURL, contentType), nil)
	}

	if err := os.MkdirAll(stagingDir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrFetch, "acquire", "staging dir", stagingDir, err)
	}

	destination := filepath.Join(stagingDir, tempName(rawURL))
	file, err := os.OpenFile(destination, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return nil, services.Wrap(services.ErrFetch, "acquire", "create file", destination, err)
	}

	var sink io.Writer = file
	if !d.Quiet {
		bar := progressbar.DefaultBytes(resp.ContentLength, "downloading episode")
		sink = io.MultiWriter(file, bar)
	}

	written, copyErr := io.Copy(sink, resp.Body)
	closeErr := file.Close()
	if copyErr != nil || closeErr != nil {
		_ = os.Remove(destination)
		err := copyErr
		if err == nil {
			err = closeErr
		}
		return nil, services.Wrap(services.ErrFetch, "acquire", "download", rawURL, err)
	}

	if d.logger != nil {
		d.logger.Info("episode downloaded",
			logging.String("url", rawURL),
			logging.String("destination", destination),
			logging.Float64("size_mb", float64(written)/1_048_576),
			logging.Duration("elapsed", time.Since(start)),
		)
	}
	return &Asset{Path: destination, owned: true}, nil
}

// tempName derives a unique staging filename that keeps the URL's extension
// so downstream tools can sniff the container format.
func tempName(rawURL string) string {
	ext := ".mp3"
	if parsed, err := url.Parse(rawURL); err == nil {
		if candidate := strings.ToLower(path.Ext(parsed.Path)); candidate != "" && len(candidate) <= 8 {
			ext = candidate
		}
	}
	return "episode-" + uuid.NewString() + ext
}
