package transcript

import "sort"

// DefaultSpeakerID is assigned to word events that arrive without a
// diarized speaker identifier.
const DefaultSpeakerID = "speaker_1"

// Normalize filters and orders a raw word-event stream for grouping.
//
// Events whose type is present and not "word" are dropped. Missing speaker
// IDs default to DefaultSpeakerID and a missing end timestamp defaults to
// the start (zero-length word). The surviving events are stable-sorted
// ascending by (start, end), so events sharing identical timestamps keep
// their arrival order.
//
// Normalize never fails and is idempotent: re-running it on its own output
// yields the same sequence.
func Normalize(words []Word) []Word {
	out := make([]Word, 0, len(words))
	for _, w := range words {
		if w.Type != "" && w.Type != WordTypeWord {
			continue
		}
		if w.SpeakerID == "" {
			w.SpeakerID = DefaultSpeakerID
		}
		if w.End == 0 {
			w.End = w.Start
		}
		out = append(out, w)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].End < out[j].End
	})
	return out
}
