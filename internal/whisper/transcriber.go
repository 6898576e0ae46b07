package whisper

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"podscribe/internal/config"
	"podscribe/internal/logging"
	"podscribe/internal/services"
	"podscribe/internal/transcript"
)

// Transcriber invokes whisper-cli on prepared audio.
type Transcriber struct {
	binary   string
	device   string
	language string
	threads  int
	run      CommandRunner
	logger   *slog.Logger
}

// NewTranscriber builds a transcriber from configuration. The runner may be
// replaced by tests; a nil runner gets a tool runner logging under cfg's log
// directory.
func NewTranscriber(cfg *config.Config, run CommandRunner, logger *slog.Logger) *Transcriber {
	if run == nil {
		run = NewToolRunner(cfg.Paths.LogDir)
	}
	return &Transcriber{
		binary:   cfg.Whisper.Binary,
		device:   cfg.Whisper.Device,
		language: strings.TrimSpace(cfg.Whisper.Language),
		threads:  cfg.Whisper.Threads,
		run:      run,
		logger:   logging.NewComponentLogger(logger, "whisper"),
	}
}

// Transcribe runs the model over wavPath and returns ordered segments. The
// whisper-cli JSON report is written next to the wav and removed afterwards.
func (t *Transcriber) Transcribe(ctx context.Context, modelPath, wavPath string) (*transcript.Result, error) {
	outputPrefix := strings.TrimSuffix(wavPath, filepath.Ext(wavPath))
	reportPath := outputPrefix + ".json"
	defer os.Remove(reportPath)

	args := t.buildArgs(modelPath, wavPath, outputPrefix)

	start := time.Now()
	if err := t.run(ctx, t.binary, args...); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, services.Wrap(services.ErrTranscription, "transcribe", "whisper", "model invocation failed", err)
	}

	result, err := loadResult(reportPath)
	if err != nil {
		return nil, err
	}
	result.Normalize()

	if t.logger != nil {
		t.logger.Info("transcription finished",
			logging.String("model", filepath.Base(modelPath)),
			logging.Int("segments", len(result.Segments)),
			logging.String("language", result.Language),
			logging.Duration("elapsed", time.Since(start)),
		)
	}
	return result, nil
}

func (t *Transcriber) buildArgs(modelPath, wavPath, outputPrefix string) []string {
	args := []string{
		"-m", modelPath,
		"-f", wavPath,
		"-oj",
		"-of", outputPrefix,
		"-np",
	}
	if t.language != "" {
		args = append(args, "-l", t.language)
	}
	if t.threads > 0 {
		args = append(args, "-t", strconv.Itoa(t.threads))
	}
	// whisper-cli uses the GPU whenever its build supports one; "cpu" forces
	// it off. cuda/metal selection beyond that is a build/driver concern.
	if t.device == "cpu" {
		args = append(args, "-ng")
	}
	return args
}
