package whisper

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"podscribe/internal/logging"
	"podscribe/internal/services"
)

// HTTPDoer describes the HTTP client used for weight downloads.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Cache stores model weight files on disk, shared across runs and processes.
type Cache struct {
	dir     string
	baseURL string
	client  HTTPDoer
	logger  *slog.Logger
}

// NewCache builds a weight cache rooted at dir, downloading missing weights
// from baseURL (the public ggml registry by default).
func NewCache(dir, baseURL string, client HTTPDoer, logger *slog.Logger) *Cache {
	if client == nil {
		client = &http.Client{}
	}
	return &Cache{
		dir:     dir,
		baseURL: baseURL,
		client:  client,
		logger:  logging.NewComponentLogger(logger, "modelcache"),
	}
}

// Path returns where the tier's weights live once cached.
func (c *Cache) Path(tier Tier) string {
	return filepath.Join(c.dir, tier.WeightFile())
}

// Cached reports whether the tier's weights are already present.
func (c *Cache) Cached(tier Tier) bool {
	info, err := os.Stat(c.Path(tier))
	return err == nil && info.Size() > 0
}

// Ensure returns the local path to the tier's weights, downloading them on
// first use. A file lock guards population so concurrent processes do not
// clobber each other's downloads; the loser of the race re-checks the cache
// after acquiring the lock.
func (c *Cache) Ensure(ctx context.Context, tier Tier) (string, error) {
	destination := c.Path(tier)
	if c.Cached(tier) {
		if c.logger != nil {
			c.logger.Debug("model cache hit", logging.String("tier", string(tier)), logging.String("path", destination))
		}
		return destination, nil
	}

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return "", services.Wrap(services.ErrModelLoad, "model", "cache dir", c.dir, err)
	}

	lock := flock.New(destination + ".lock")
	locked, err := lock.TryLockContext(ctx, 500*time.Millisecond)
	if err != nil {
		return "", services.Wrap(services.ErrModelLoad, "model", "lock", destination, err)
	}
	if !locked {
		return "", services.Wrap(services.ErrModelLoad, "model", "lock", "could not acquire model cache lock", nil)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	// Another process may have finished the download while we waited.
	if c.Cached(tier) {
		return destination, nil
	}

	if err := c.download(ctx, tier, destination); err != nil {
		return "", err
	}
	return destination, nil
}

func (c *Cache) download(ctx context.Context, tier Tier, destination string) error {
	source := c.baseURL + "/" + tier.WeightFile()
	if c.logger != nil {
		c.logger.Info("downloading model weights",
			logging.String("tier", string(tier)),
			logging.String("url", source),
			logging.String("approx_size", tier.ApproxSize()),
		)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return services.Wrap(services.ErrModelLoad, "model", "build request", source, err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return services.Wrap(services.ErrModelLoad, "model", "download", source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return services.Wrap(services.ErrModelLoad, "model", "download",
			fmt.Sprintf("%s returned %d", source, resp.StatusCode), nil)
	}

	partial := destination + ".partial"
	file, err := os.OpenFile(partial, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return services.Wrap(services.ErrModelLoad, "model", "create file", partial, err)
	}

	written, copyErr := io.Copy(file, resp.Body)
	closeErr := file.Close()
	if copyErr != nil || closeErr != nil {
		_ = os.Remove(partial)
		err := copyErr
		if err == nil {
			err = closeErr
		}
		return services.Wrap(services.ErrModelLoad, "model", "download", source, err)
	}
	if resp.ContentLength > 0 && written != resp.ContentLength {
		_ = os.Remove(partial)
		return services.Wrap(services.ErrModelLoad, "model", "download",
			fmt.Sprintf("incomplete download: %d of %d bytes", written, resp.ContentLength), nil)
	}

	if err := os.Rename(partial, destination); err != nil {
		_ = os.Remove(partial)
		return services.Wrap(services.ErrModelLoad, "model", "finalize", destination, err)
	}
	return nil
}
