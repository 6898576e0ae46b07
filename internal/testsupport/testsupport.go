// Package testsupport provides shared helpers for package tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"podscribe/internal/config"
)

// ConfigOption mutates a test configuration before it is returned.
type ConfigOption func(*config.Config)

// NewConfig returns a configuration rooted in per-test temporary directories.
// Notifications are disabled and history is enabled by default.
func NewConfig(t *testing.T, opts ...ConfigOption) *config.Config {
	t.Helper()

	root := t.TempDir()
	cfg := &config.Config{
		Paths: config.Paths{
			OutputDir:     filepath.Join(root, "transcripts"),
			StagingDir:    filepath.Join(root, "staging"),
			LogDir:        filepath.Join(root, "logs"),
			ModelCacheDir: filepath.Join(root, "models"),
		},
		PodcastIndex: config.PodcastIndex{
			BaseURL:        "https://api.podcastindex.org/api/1.0",
			RequestTimeout: 5,
			MaxResults:     10,
			MaxEpisodes:    20,
		},
		Whisper: config.Whisper{
			Binary:          "whisper-cli",
			FFmpegBinary:    "ffmpeg",
			Model:           "base",
			Device:          "cpu",
			DownloadBaseURL: "https://huggingface.co/ggerganov/whisper.cpp/resolve/main",
			DownloadTimeout: 5,
		},
		Output:  config.Output{Format: "text"},
		History: config.History{Enabled: true},
		Logging: config.Logging{Format: "console", Level: "info"},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return cfg
}

// WithAPICredentials sets Podcast Index credentials on the test config.
func WithAPICredentials(key, secret string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.PodcastIndex.APIKey = key
		cfg.PodcastIndex.APISecret = secret
	}
}
