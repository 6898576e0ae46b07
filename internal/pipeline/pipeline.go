package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"podscribe/internal/config"
	"podscribe/internal/download"
	"podscribe/internal/fileutil"
	"podscribe/internal/history"
	"podscribe/internal/logging"
	"podscribe/internal/notifications"
	"podscribe/internal/transcript"
	"podscribe/internal/whisper"
)

// Request describes a single transcription run.
type Request struct {
	// Reference is a local file path or an HTTP(S) URL to the episode audio.
	Reference string
	// Tier selects the model weights.
	Tier whisper.Tier
	// OutputPath overrides the derived transcript location when non-empty.
	OutputPath string
	// Format selects the transcript rendering.
	Format transcript.Format
	// KeepAudio retains downloaded audio in the staging directory.
	KeepAudio bool
	// Quiet suppresses download progress output.
	Quiet bool
}

// Outcome reports where the transcript landed and what the model produced.
type Outcome struct {
	TranscriptPath string
	ModelPath      string
	Result         *transcript.Result
	Elapsed        time.Duration
}

// Pipeline wires the acquisition, model, and persistence stages together.
// Fields are exported so tests can substitute collaborators.
type Pipeline struct {
	Downloader  *download.Downloader
	Cache       *whisper.Cache
	Transcriber *whisper.Transcriber
	Runner      whisper.CommandRunner
	History     *history.Store
	Notifier    notifications.Service

	cfg    *config.Config
	logger *slog.Logger
}

// New builds a pipeline from configuration. The history store is optional;
// pass nil to skip run recording.
func New(cfg *config.Config, store *history.Store, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	runner := whisper.NewToolRunner(cfg.Paths.LogDir)
	return &Pipeline{
		Downloader:  download.NewDownloader(nil, logger),
		Cache:       whisper.NewCache(cfg.Paths.ModelCacheDir, cfg.Whisper.DownloadBaseURL, nil, logger),
		Transcriber: whisper.NewTranscriber(cfg, runner, logger),
		Runner:      runner,
		History:     store,
		Notifier:    notifications.NewService(cfg),
		cfg:         cfg,
		logger:      logging.NewComponentLogger(logger, "pipeline"),
	}
}

// Run executes one transcription end to end. On failure no transcript file
// is written and any staged temporary audio is removed.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Outcome, error) {
	started := time.Now()
	outcome, err := p.run(ctx, req)
	if err != nil {
		p.logger.Error("transcription failed",
			logging.String("reference", req.Reference),
			logging.Error(err))
		if notifyErr := p.Notifier.NotifyTranscriptionFailed(ctx, req.Reference, err); notifyErr != nil {
			p.logger.Warn("failure notification failed", logging.Error(notifyErr))
		}
		return nil, err
	}
	outcome.Elapsed = time.Since(started)
	p.logger.Info("transcription complete",
		logging.String("reference", req.Reference),
		logging.String("transcript", outcome.TranscriptPath),
		logging.Int("segments", len(outcome.Result.Segments)),
		logging.Duration("elapsed", outcome.Elapsed))
	if notifyErr := p.Notifier.NotifyTranscriptionCompleted(ctx, req.Reference, outcome.TranscriptPath); notifyErr != nil {
		p.logger.Warn("completion notification failed", logging.Error(notifyErr))
	}
	return outcome, nil
}

func (p *Pipeline) run(ctx context.Context, req Request) (*Outcome, error) {
	asset, err := p.acquire(ctx, req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cleanupErr := asset.Cleanup(); cleanupErr != nil {
			p.logger.Warn("staged audio cleanup failed", logging.Error(cleanupErr))
		}
	}()
	if req.KeepAudio {
		asset.Retain()
	}

	modelPath, err := p.Cache.Ensure(ctx, req.Tier)
	if err != nil {
		return nil, err
	}

	wavPath := filepath.Join(p.cfg.Paths.StagingDir, fmt.Sprintf("audio-%s.wav", uuid.NewString()))
	if err := whisper.PrepareAudio(ctx, p.Runner, p.cfg.Whisper.FFmpegBinary, asset.Path, wavPath); err != nil {
		return nil, err
	}
	defer os.Remove(wavPath)

	result, err := p.Transcriber.Transcribe(ctx, modelPath, wavPath)
	if err != nil {
		return nil, err
	}

	outputPath := req.OutputPath
	if outputPath == "" {
		outputPath = transcript.DerivePath(p.cfg.Paths.OutputDir, req.Reference, req.Format)
	}
	rendered, err := result.Render(req.Format)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	if err := fileutil.WriteFileAtomic(outputPath, rendered, 0o644); err != nil {
		return nil, fmt.Errorf("writing transcript: %w", err)
	}

	p.record(ctx, req, outputPath, result)

	return &Outcome{
		TranscriptPath: outputPath,
		ModelPath:      modelPath,
		Result:         result,
	}, nil
}

func (p *Pipeline) acquire(ctx context.Context, req Request) (*download.Asset, error) {
	if download.IsRemote(req.Reference) {
		p.Downloader.Quiet = req.Quiet
		return p.Downloader.Fetch(ctx, req.Reference, p.cfg.Paths.StagingDir)
	}
	return download.LocalAsset(req.Reference)
}

// record stores the run in history. Failures are logged and do not fail the
// run; the transcript is already on disk.
func (p *Pipeline) record(ctx context.Context, req Request, outputPath string, result *transcript.Result) {
	if p.History == nil || !p.cfg.History.Enabled {
		return
	}
	entry := history.Entry{
		Reference:      req.Reference,
		ModelTier:      string(req.Tier),
		TranscriptPath: outputPath,
		Format:         string(req.Format),
		Language:       result.Language,
		AudioSeconds:   result.Duration().Seconds(),
		SegmentCount:   len(result.Segments),
	}
	if _, err := p.History.Record(ctx, entry); err != nil {
		p.logger.Warn("history record failed", logging.Error(err))
	}
}
