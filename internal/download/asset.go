package download

import (
	"net/url"
	"os"
	"strings"

	"podscribe/internal/services"
)

// Asset is a locally materialized audio file. Assets backed by a download own
// their file and remove it on Cleanup; assets pointing at caller-supplied
// local paths never delete anything.
type Asset struct {
	Path     string
	owned    bool
	retained bool
}

// Retain marks a downloaded asset to be kept after the run.
func (a *Asset) Retain() {
	if a != nil {
		a.retained = true
	}
}

// Retained reports whether the asset will survive Cleanup.
func (a *Asset) Retained() bool {
	return a != nil && (a.retained || !a.owned)
}

// Cleanup removes the file for owned, non-retained assets. Safe to call more
// than once and on nil assets.
func (a *Asset) Cleanup() error {
	if a == nil || !a.owned || a.retained || a.Path == "" {
		return nil
	}
	err := os.Remove(a.Path)
	a.Path = ""
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// IsRemote reports whether the media reference is an http(s) URL rather than
// a local path.
func IsRemote(reference string) bool {
	parsed, err := url.Parse(strings.TrimSpace(reference))
	if err != nil {
		return false
	}
	return parsed.Scheme == "http" || parsed.Scheme == "https"
}

// LocalAsset validates that reference exists on disk and wraps it as an
// unowned asset. Missing or directory paths fail with a not-found error.
func LocalAsset(reference string) (*Asset, error) {
	info, err := os.Stat(reference)
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, "acquire", "stat", reference, err)
	}
	if info.IsDir() {
		return nil, services.Wrap(services.ErrNotFound, "acquire", "stat", reference+" is a directory, not an audio file", nil)
	}
	return &Asset{Path: reference}, nil
}
