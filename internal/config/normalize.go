package config

import (
	"os"
	"strings"
)

// normalize applies environment overrides and expands all path fields.
func (c *Config) normalize() error {
	if key := strings.TrimSpace(os.Getenv("PODCAST_INDEX_API_KEY")); key != "" {
		c.PodcastIndex.APIKey = key
	}
	if secret := strings.TrimSpace(os.Getenv("PODCAST_INDEX_API_SECRET")); secret != "" {
		c.PodcastIndex.APISecret = secret
	}
	if device := strings.TrimSpace(os.Getenv("PODSCRIBE_DEVICE")); device != "" {
		c.Whisper.Device = device
	}

	for _, field := range []*string{
		&c.Paths.OutputDir,
		&c.Paths.StagingDir,
		&c.Paths.LogDir,
		&c.Paths.ModelCacheDir,
	} {
		expanded, err := ExpandPath(strings.TrimSpace(*field))
		if err != nil {
			return err
		}
		*field = expanded
	}

	c.PodcastIndex.BaseURL = strings.TrimRight(strings.TrimSpace(c.PodcastIndex.BaseURL), "/")
	c.Whisper.Model = strings.ToLower(strings.TrimSpace(c.Whisper.Model))
	c.Whisper.Device = strings.ToLower(strings.TrimSpace(c.Whisper.Device))
	c.Whisper.DownloadBaseURL = strings.TrimRight(strings.TrimSpace(c.Whisper.DownloadBaseURL), "/")
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))

	if c.PodcastIndex.RequestTimeout <= 0 {
		c.PodcastIndex.RequestTimeout = defaultIndexTimeout
	}
	if c.PodcastIndex.MaxResults <= 0 {
		c.PodcastIndex.MaxResults = defaultIndexMaxResults
	}
	if c.PodcastIndex.MaxEpisodes <= 0 {
		c.PodcastIndex.MaxEpisodes = defaultIndexMaxEps
	}
	if c.Whisper.DownloadTimeout <= 0 {
		c.Whisper.DownloadTimeout = defaultModelTimeout
	}
	if strings.TrimSpace(c.Whisper.Binary) == "" {
		c.Whisper.Binary = defaultWhisperBinary
	}
	if strings.TrimSpace(c.Whisper.FFmpegBinary) == "" {
		c.Whisper.FFmpegBinary = defaultFFmpegBinary
	}
	return nil
}
