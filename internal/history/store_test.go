package history_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"podscribe/internal/history"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndList(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	first, err := store.Record(ctx, history.Entry{
		Reference:      "https://example.com/ep1.mp3",
		ModelTier:      "tiny",
		TranscriptPath: "/transcripts/ep1.txt",
		Format:         "text",
		Language:       "en",
		AudioSeconds:   1800,
		SegmentCount:   120,
		CreatedAt:      time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if first.ID == 0 {
		t.Fatal("expected assigned ID")
	}

	_, err = store.Record(ctx, history.Entry{
		Reference:      "/home/user/ep2.wav",
		ModelTier:      "base",
		TranscriptPath: "/transcripts/ep2.srt",
		Format:         "srt",
		CreatedAt:      time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("second Record failed: %v", err)
	}

	entries, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Reference != "/home/user/ep2.wav" {
		t.Fatalf("expected newest first, got %q", entries[0].Reference)
	}
	if entries[1].ModelTier != "tiny" || entries[1].SegmentCount != 120 {
		t.Fatalf("unexpected entry: %+v", entries[1])
	}
	if !entries[1].CreatedAt.Equal(time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("created_at did not round-trip: %v", entries[1].CreatedAt)
	}
}

func TestListHonorsLimit(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := store.Record(ctx, history.Entry{
			Reference:      "ref",
			ModelTier:      "tiny",
			TranscriptPath: "/t.txt",
			Format:         "text",
		})
		if err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	entries, err := store.List(ctx, 3)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.db")

	store, err := history.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := store.Record(context.Background(), history.Entry{
		Reference: "ref", ModelTier: "tiny", TranscriptPath: "/t.txt", Format: "text",
	}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := history.Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	entries, err := reopened.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected persisted entry, got %d", len(entries))
	}
}
