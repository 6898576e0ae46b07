package config

const (
	defaultOutputDir       = "~/transcripts"
	defaultStagingDir      = "~/.local/share/podscribe/staging"
	defaultLogDir          = "~/.local/share/podscribe/logs"
	defaultModelCacheDir   = "~/.cache/podscribe/models"
	defaultIndexBaseURL    = "https://api.podcastindex.org/api/1.0"
	defaultIndexTimeout    = 10
	defaultIndexMaxResults = 5
	defaultIndexMaxEps     = 5
	defaultWhisperBinary   = "whisper-cli"
	defaultFFmpegBinary    = "ffmpeg"
	defaultModelTier       = "base"
	defaultDevice          = "auto"
	defaultModelBaseURL    = "https://huggingface.co/ggerganov/whisper.cpp/resolve/main"
	defaultModelTimeout    = 600
	defaultOutputFormat    = "text"
	defaultNotifyTimeout   = 10
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir:     defaultOutputDir,
			StagingDir:    defaultStagingDir,
			LogDir:        defaultLogDir,
			ModelCacheDir: defaultModelCacheDir,
		},
		PodcastIndex: PodcastIndex{
			BaseURL:        defaultIndexBaseURL,
			RequestTimeout: defaultIndexTimeout,
			MaxResults:     defaultIndexMaxResults,
			MaxEpisodes:    defaultIndexMaxEps,
		},
		Whisper: Whisper{
			Binary:          defaultWhisperBinary,
			FFmpegBinary:    defaultFFmpegBinary,
			Model:           defaultModelTier,
			Device:          defaultDevice,
			DownloadBaseURL: defaultModelBaseURL,
			DownloadTimeout: defaultModelTimeout,
		},
		Output: Output{
			Format: defaultOutputFormat,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
		},
		History: History{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
