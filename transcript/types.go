package transcript

import "encoding/json"

// WordType values emitted by diarizing speech-to-text services. Anything
// other than a word (audio events, spacing markers) is dropped during
// normalization; an absent type is treated as a word.
const WordTypeWord = "word"

// Word is a single timestamped word event from a speech-to-text service.
type Word struct {
	// SpeakerID is the diarized speaker identifier (e.g. "speaker_0").
	SpeakerID string `json:"speaker_id,omitempty"`
	// Start is the word start time in seconds.
	Start float64 `json:"start"`
	// End is the word end time in seconds.
	End float64 `json:"end"`
	// Text is the word text.
	Text string `json:"text"`
	// Type tags non-word events (e.g. "audio_event"). Empty means word.
	Type string `json:"type,omitempty"`
}

// UnmarshalJSON decodes a word event tolerantly: upstream services
// occasionally emit timestamps as strings or null, which are coerced to 0.
func (w *Word) UnmarshalJSON(data []byte) error {
	var raw struct {
		SpeakerID string          `json:"speaker_id"`
		Start     json.RawMessage `json:"start"`
		End       json.RawMessage `json:"end"`
		Text      string          `json:"text"`
		Type      string          `json:"type"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	w.SpeakerID = raw.SpeakerID
	w.Start = coerceFloat(raw.Start)
	w.End = coerceFloat(raw.End)
	w.Text = raw.Text
	w.Type = raw.Type
	return nil
}

// coerceFloat parses a raw JSON value as a float64, accepting quoted
// numbers and returning 0 for anything unparseable.
func coerceFloat(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if err := json.Unmarshal([]byte(s), &f); err == nil {
			return f
		}
	}
	return 0
}

// Turn is a maximal run of consecutive words from one speaker, merged
// into one text span. Immutable once appended to a Grouping.
type Turn struct {
	// SpeakerID is the diarized speaker identifier for this turn.
	SpeakerID string `json:"speaker_id"`
	// Start is the turn start time in seconds.
	Start float64 `json:"start"`
	// End is the turn end time in seconds.
	End float64 `json:"end"`
	// Text is the space-joined text of the turn's words.
	Text string `json:"text"`
}

// Grouping is the result of merging a word stream into speaker turns.
type Grouping struct {
	// Turns holds the merged speaker turns in time order.
	Turns []Turn `json:"turns"`
	// Speakers lists distinct speaker IDs in first-appearance order.
	Speakers []string `json:"speakers"`
	// Duration is the maximum end timestamp observed across all words.
	Duration float64 `json:"duration"`
}
