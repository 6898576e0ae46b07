package transcript

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Format selects a transcript serialization.
type Format string

const (
	FormatText Format = "text"
	FormatSRT  Format = "srt"
	FormatJSON Format = "json"
)

// ParseFormat validates a format token from config or flags.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case FormatText:
		return FormatText, nil
	case FormatSRT:
		return FormatSRT, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown transcript format %q (expected text, srt, or json)", value)
	}
}

// Extension returns the file extension for the format, with leading dot.
func (f Format) Extension() string {
	switch f {
	case FormatSRT:
		return ".srt"
	case FormatJSON:
		return ".json"
	default:
		return ".txt"
	}
}

// Render serializes the result in the given format.
func (r *Result) Render(format Format) ([]byte, error) {
	switch format {
	case FormatText:
		return r.renderText(), nil
	case FormatSRT:
		return r.renderSRT(), nil
	case FormatJSON:
		return json.MarshalIndent(r, "", "  ")
	default:
		return nil, fmt.Errorf("unknown transcript format %q", format)
	}
}

// renderText produces one line per segment, prefixed with a wall-clock
// timestamp, matching the shape of a readable podcast transcript.
func (r *Result) renderText() []byte {
	var b strings.Builder
	for _, seg := range r.Segments {
		if seg.Text == "" {
			continue
		}
		b.WriteString("[")
		b.WriteString(formatClock(seg.Start))
		b.WriteString("] ")
		b.WriteString(seg.Text)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

func (r *Result) renderSRT() []byte {
	var b strings.Builder
	index := 1
	for _, seg := range r.Segments {
		if seg.Text == "" {
			continue
		}
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n", index, formatSRTClock(seg.Start), formatSRTClock(seg.End), seg.Text)
		index++
	}
	return []byte(b.String())
}
