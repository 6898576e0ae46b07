package whisper

import (
	"encoding/json"
	"os"
	"time"

	"podscribe/internal/services"
	"podscribe/internal/transcript"
)

// whisper-cli -oj report layout. Offsets are milliseconds from audio start.
type reportSegment struct {
	Text    string `json:"text"`
	Offsets struct {
		From int64 `json:"from"`
		To   int64 `json:"to"`
	} `json:"offsets"`
}

type report struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Transcription []reportSegment `json:"transcription"`
}

func loadResult(path string) (*transcript.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrTranscription, "transcribe", "read report", path, err)
	}

	var payload report
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, services.Wrap(services.ErrTranscription, "transcribe", "parse report", "invalid whisper JSON", err)
	}

	result := &transcript.Result{
		Language: payload.Result.Language,
		Segments: make([]transcript.Segment, 0, len(payload.Transcription)),
	}
	for _, seg := range payload.Transcription {
		result.Segments = append(result.Segments, transcript.Segment{
			Start: time.Duration(seg.Offsets.From) * time.Millisecond,
			End:   time.Duration(seg.Offsets.To) * time.Millisecond,
			Text:  seg.Text,
		})
	}
	return result, nil
}
