package config

import (
	"errors"
	"fmt"
)

var validOutputFormats = map[string]struct{}{
	"text": {},
	"srt":  {},
	"json": {},
}

var validDevices = map[string]struct{}{
	"auto":  {},
	"cpu":   {},
	"cuda":  {},
	"metal": {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateWhisper(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	if c.Paths.StagingDir == "" {
		return errors.New("paths.staging_dir must be set")
	}
	if c.Paths.ModelCacheDir == "" {
		return errors.New("paths.model_cache_dir must be set")
	}
	return nil
}

func (c *Config) validateWhisper() error {
	if c.Whisper.Model == "" {
		return errors.New("whisper.model must be set")
	}
	if _, ok := validDevices[c.Whisper.Device]; !ok {
		return fmt.Errorf("whisper.device must be one of auto, cpu, cuda, metal (got %q)", c.Whisper.Device)
	}
	if c.Whisper.Threads < 0 {
		return errors.New("whisper.threads must not be negative")
	}
	if c.Whisper.DownloadBaseURL == "" {
		return errors.New("whisper.download_base_url must be set")
	}
	return nil
}

func (c *Config) validateOutput() error {
	if _, ok := validOutputFormats[c.Output.Format]; !ok {
		return fmt.Errorf("output.format must be one of text, srt, json (got %q)", c.Output.Format)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json (got %q)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error (got %q)", c.Logging.Level)
	}
	return nil
}
