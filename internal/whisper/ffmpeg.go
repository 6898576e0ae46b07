package whisper

import (
	"context"
	"errors"

	"podscribe/internal/services"
)

// PrepareAudio converts source into the 16 kHz mono 16-bit PCM wav that
// whisper.cpp expects, writing to destination.
func PrepareAudio(ctx context.Context, run CommandRunner, ffmpegBinary, source, destination string) error {
	if run == nil {
		return services.Wrap(services.ErrTranscription, "prepare", "ffmpeg", "no command runner configured", nil)
	}
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		destination,
	}
	if err := run(ctx, ffmpegBinary, args...); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return services.Wrap(services.ErrTranscription, "prepare", "ffmpeg", "failed to convert audio to 16kHz mono wav", err)
	}
	return nil
}
