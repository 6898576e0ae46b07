package transcript

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Segment is one timestamped span of recognized speech.
type Segment struct {
	Start time.Duration `json:"start"`
	End   time.Duration `json:"end"`
	Text  string        `json:"text"`
}

// Result is the complete output of one model run over one audio asset. It is
// not mutated after creation.
type Result struct {
	Segments []Segment `json:"segments"`
	Language string    `json:"language,omitempty"`
}

// Normalize sorts segments by non-decreasing start time and trims segment
// text. Models emit ordered output already; sorting keeps the persisted
// contract independent of that.
func (r *Result) Normalize() {
	sort.SliceStable(r.Segments, func(i, j int) bool {
		return r.Segments[i].Start < r.Segments[j].Start
	})
	for i := range r.Segments {
		r.Segments[i].Text = strings.TrimSpace(r.Segments[i].Text)
	}
}

// Text returns the concatenated transcript without timestamps.
func (r *Result) Text() string {
	parts := make([]string, 0, len(r.Segments))
	for _, seg := range r.Segments {
		if seg.Text == "" {
			continue
		}
		parts = append(parts, seg.Text)
	}
	return strings.Join(parts, " ")
}

// Duration returns the end timestamp of the final segment.
func (r *Result) Duration() time.Duration {
	if len(r.Segments) == 0 {
		return 0
	}
	return r.Segments[len(r.Segments)-1].End
}

// Empty reports whether the result carries no usable text.
func (r *Result) Empty() bool {
	for _, seg := range r.Segments {
		if strings.TrimSpace(seg.Text) != "" {
			return false
		}
	}
	return true
}

func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func formatSRTClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := int(d.Milliseconds()) % 1000
	return fmt.Sprintf("%s,%03d", formatClock(d), ms)
}
