package pipeline

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"podscribe/internal/history"
	"podscribe/internal/logging"
	"podscribe/internal/services"
	"podscribe/internal/testsupport"
	"podscribe/internal/transcript"
	"podscribe/internal/whisper"
)

const fakeReport = `{
  "result": {"language": "en"},
  "transcription": [
    {"offsets": {"from": 4000, "to": 7500}, "text": " and welcome back."},
    {"offsets": {"from": 0, "to": 4000}, "text": " Hello everyone"}
  ]
}`

// fakeRunner stands in for ffmpeg and whisper-cli. ffmpeg invocations write
// the destination wav; whisper invocations write a report next to it.
func fakeRunner(t *testing.T) whisper.CommandRunner {
	t.Helper()
	return func(ctx context.Context, name string, args ...string) error {
		switch name {
		case "ffmpeg":
			dest := args[len(args)-1]
			return os.WriteFile(dest, []byte("RIFF"), 0o644)
		case "whisper-cli":
			prefix := ""
			for i, arg := range args {
				if arg == "-of" && i+1 < len(args) {
					prefix = args[i+1]
				}
			}
			if prefix == "" {
				t.Fatal("whisper-cli invoked without -of")
			}
			return os.WriteFile(prefix+".json", []byte(fakeReport), 0o644)
		default:
			t.Fatalf("unexpected tool %q", name)
			return nil
		}
	}
}

func newTestPipeline(t *testing.T, store *history.Store) *Pipeline {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	p := New(cfg, store, logging.NewNop())
	p.Runner = fakeRunner(t)
	p.Transcriber = whisper.NewTranscriber(cfg, p.Runner, logging.NewNop())
	// Pre-populate weights so Ensure never reaches the network.
	tier := whisper.Tier("base")
	if err := os.WriteFile(filepath.Join(cfg.Paths.ModelCacheDir, tier.WeightFile()), []byte("ggml"), 0o644); err != nil {
		t.Fatalf("seed model cache: %v", err)
	}
	return p
}

func writeLocalAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "episode one.mp3")
	if err := os.WriteFile(path, []byte("ID3"), 0o644); err != nil {
		t.Fatalf("write audio: %v", err)
	}
	return path
}

func TestRunLocalFileProducesOrderedTranscript(t *testing.T) {
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	defer store.Close()

	p := newTestPipeline(t, store)
	audio := writeLocalAudio(t)

	outcome, err := p.Run(context.Background(), Request{
		Reference: audio,
		Tier:      whisper.Tier("base"),
		Format:    transcript.FormatText,
		Quiet:     true,
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	data, err := os.ReadFile(outcome.TranscriptPath)
	if err != nil {
		t.Fatalf("read transcript: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "Hello everyone") || !strings.Contains(content, "and welcome back.") {
		t.Fatalf("transcript missing text: %q", content)
	}
	if strings.Index(content, "Hello everyone") > strings.Index(content, "and welcome back.") {
		t.Fatal("segments not ordered by start time")
	}
	if len(outcome.Result.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(outcome.Result.Segments))
	}
	if outcome.Result.Language != "en" {
		t.Fatalf("unexpected language %q", outcome.Result.Language)
	}

	entries, err := store.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(entries))
	}
	if entries[0].Reference != audio || entries[0].SegmentCount != 2 {
		t.Fatalf("unexpected history entry %+v", entries[0])
	}
}

func TestRunMissingLocalFileIsNotFound(t *testing.T) {
	p := newTestPipeline(t, nil)

	_, err := p.Run(context.Background(), Request{
		Reference: filepath.Join(t.TempDir(), "absent.mp3"),
		Tier:      whisper.Tier("base"),
		Format:    transcript.FormatText,
		Quiet:     true,
	})
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestRunRemote404IsFetchErrorAndLeavesNoTemp(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	p := newTestPipeline(t, nil)

	_, err := p.Run(context.Background(), Request{
		Reference: server.URL + "/gone.mp3",
		Tier:      whisper.Tier("base"),
		Format:    transcript.FormatText,
		Quiet:     true,
	})
	if !errors.Is(err, services.ErrFetch) {
		t.Fatalf("expected fetch error, got %v", err)
	}

	cfg := p.cfg
	entries, readErr := os.ReadDir(cfg.Paths.StagingDir)
	if readErr != nil {
		t.Fatalf("read staging dir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Fatalf("staging dir not empty after failed fetch: %d entries", len(entries))
	}
}

func TestRunTranscriptionFailurePersistsNothing(t *testing.T) {
	p := newTestPipeline(t, nil)
	cfg := p.cfg
	failing := whisper.CommandRunner(func(ctx context.Context, name string, args ...string) error {
		if name == "ffmpeg" {
			return os.WriteFile(args[len(args)-1], []byte("RIFF"), 0o644)
		}
		return errors.New("whisper crashed")
	})
	p.Runner = failing
	p.Transcriber = whisper.NewTranscriber(cfg, failing, logging.NewNop())

	_, err := p.Run(context.Background(), Request{
		Reference: writeLocalAudio(t),
		Tier:      whisper.Tier("base"),
		Format:    transcript.FormatText,
		Quiet:     true,
	})
	if !errors.Is(err, services.ErrTranscription) {
		t.Fatalf("expected transcription error, got %v", err)
	}

	entries, readErr := os.ReadDir(cfg.Paths.OutputDir)
	if readErr != nil {
		t.Fatalf("read output dir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Fatalf("output dir not empty after failure: %d entries", len(entries))
	}
	staged, readErr := os.ReadDir(cfg.Paths.StagingDir)
	if readErr != nil {
		t.Fatalf("read staging dir: %v", readErr)
	}
	if len(staged) != 0 {
		t.Fatalf("staging dir not empty after failure: %d entries", len(staged))
	}
}

func TestRunExplicitOutputPath(t *testing.T) {
	p := newTestPipeline(t, nil)
	target := filepath.Join(t.TempDir(), "custom", "episode.srt")

	outcome, err := p.Run(context.Background(), Request{
		Reference:  writeLocalAudio(t),
		Tier:       whisper.Tier("base"),
		OutputPath: target,
		Format:     transcript.FormatSRT,
		Quiet:      true,
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if outcome.TranscriptPath != target {
		t.Fatalf("expected %s, got %s", target, outcome.TranscriptPath)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read transcript: %v", err)
	}
	if !strings.Contains(string(data), "-->") {
		t.Fatalf("expected SRT timing lines, got %q", string(data))
	}
}
