package transcript

import (
	"fmt"
	"math"
	"strings"
)

// SpeakerLabels builds display labels for speakers in first-appearance
// order: "Speaker 1", "Speaker 2", and so on. The returned map is built
// once per call and read-only thereafter.
func SpeakerLabels(speakers []string) map[string]string {
	labels := make(map[string]string, len(speakers))
	for i, spk := range speakers {
		labels[spk] = fmt.Sprintf("Speaker %d", i+1)
	}
	return labels
}

// FormatTimestamp renders seconds as HH:MM:SS.mmm with zero padding.
// The millisecond suffix is the fractional remainder rounded to the
// nearest millisecond. Non-positive or non-finite input renders as
// 00:00:00.000.
func FormatTimestamp(seconds float64) string {
	if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return "00:00:00.000"
	}
	whole := int(seconds)
	ms := int(math.Round((seconds - float64(whole)) * 1000))
	if ms >= 1000 {
		whole++
		ms -= 1000
	}
	h := whole / 3600
	m := (whole % 3600) / 60
	s := whole % 60
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}

// Render formats turns as a human-readable transcript block, one line per
// turn:
//
//	[HH:MM:SS.mmm - HH:MM:SS.mmm] Speaker 1: hello there
//
// Speakers missing from the label map fall back to their raw speaker ID.
func Render(turns []Turn, labels map[string]string) string {
	lines := make([]string, 0, len(turns))
	for _, t := range turns {
		label, ok := labels[t.SpeakerID]
		if !ok {
			label = t.SpeakerID
		}
		lines = append(lines, fmt.Sprintf("[%s - %s] %s: %s",
			FormatTimestamp(t.Start),
			FormatTimestamp(t.End),
			label,
			strings.TrimSpace(t.Text),
		))
	}
	return strings.Join(lines, "\n")
}
