package download_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"podscribe/internal/download"
	"podscribe/internal/services"
)

func newQuietDownloader(client download.HTTPDoer) *download.Downloader {
	d := download.NewDownloader(client, nil)
	d.Quiet = true
	return d
}

func TestFetchWritesAudioToStagingDir(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("fake mp3 bytes"))
	}))
	defer server.Close()

	staging := t.TempDir()
	asset, err := newQuietDownloader(server.Client()).Fetch(context.Background(), server.URL+"/show/ep1.mp3", staging)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	defer asset.Cleanup()

	if filepath.Dir(asset.Path) != staging {
		t.Fatalf("asset outside staging dir: %q", asset.Path)
	}
	if !strings.HasSuffix(asset.Path, ".mp3") {
		t.Fatalf("expected .mp3 extension, got %q", asset.Path)
	}
	data, err := os.ReadFile(asset.Path)
	if err != nil {
		t.Fatalf("read asset: %v", err)
	}
	if string(data) != "fake mp3 bytes" {
		t.Fatalf("unexpected contents: %q", data)
	}

	if err := asset.Cleanup(); err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}
	entries, _ := os.ReadDir(staging)
	if len(entries) != 0 {
		t.Fatalf("expected staging dir to be empty after cleanup, found %d entries", len(entries))
	}
}

func TestFetch404IsFetchErrorWithoutOrphans(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	staging := t.TempDir()
	_, err := newQuietDownloader(server.Client()).Fetch(context.Background(), server.URL+"/missing.mp3", staging)
	if !errors.Is(err, services.ErrFetch) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	entries, _ := os.ReadDir(staging)
	if len(entries) != 0 {
		t.Fatalf("expected no orphaned files, found %d", len(entries))
	}
}

func TestFetchRejectsHTMLResponses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html>login required</html>"))
	}))
	defer server.Close()

	staging := t.TempDir()
	_, err := newQuietDownloader(server.Client()).Fetch(context.Background(), server.URL+"/ep.mp3", staging)
	if !errors.Is(err, services.ErrFetch) {
		t.Fatalf("expected fetch error for html response, got %v", err)
	}
	entries, _ := os.ReadDir(staging)
	if len(entries) != 0 {
		t.Fatalf("expected no orphaned files, found %d", len(entries))
	}
}

func TestFetchAcceptsOctetStream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write([]byte("bytes"))
	}))
	defer server.Close()

	asset, err := newQuietDownloader(server.Client()).Fetch(context.Background(), server.URL+"/ep.m4a", t.TempDir())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	defer asset.Cleanup()
	if !strings.HasSuffix(asset.Path, ".m4a") {
		t.Fatalf("expected .m4a extension, got %q", asset.Path)
	}
}

func TestLocalAssetMissingPathIsNotFound(t *testing.T) {
	_, err := download.LocalAsset(filepath.Join(t.TempDir(), "absent.mp3"))
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestLocalAssetNeverDeletesCallerFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.wav")
	if err := os.WriteFile(path, []byte("wav"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	asset, err := download.LocalAsset(path)
	if err != nil {
		t.Fatalf("LocalAsset failed: %v", err)
	}
	if !asset.Retained() {
		t.Fatal("local assets should report retained")
	}
	if err := asset.Cleanup(); err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("local input was deleted: %v", err)
	}
}

func TestRetainKeepsDownloadedAsset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("bytes"))
	}))
	defer server.Close()

	staging := t.TempDir()
	asset, err := newQuietDownloader(server.Client()).Fetch(context.Background(), server.URL+"/ep.mp3", staging)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	asset.Retain()
	path := asset.Path
	if err := asset.Cleanup(); err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("retained asset was deleted: %v", err)
	}
}

func TestIsRemote(t *testing.T) {
	cases := []struct {
		ref  string
		want bool
	}{
		{"https://example.com/ep.mp3", true},
		{"http://example.com/ep.mp3", true},
		{"/home/user/ep.mp3", false},
		{"ep.mp3", false},
		{"ftp://example.com/ep.mp3", false},
	}
	for _, tc := range cases {
		if got := download.IsRemote(tc.ref); got != tc.want {
			t.Fatalf("IsRemote(%q) = %v, want %v", tc.ref, got, tc.want)
		}
	}
}
