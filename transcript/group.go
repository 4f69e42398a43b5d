package transcript

import "strings"

// Group merges a normalized word stream into speaker turns.
//
// Words are accumulated into a single current turn: a word from the same
// speaker extends the turn's end and appends its text; a speaker change
// flushes the turn and starts a new one. Whitespace-only words never start
// or extend a turn but still advance the observed duration. The distinct
// speaker list records each speaker once, in order of first appearance,
// including speakers that only produced whitespace.
//
// Callers should pass the output of Normalize; Group assumes words arrive
// in time order.
func Group(words []Word) Grouping {
	g := Grouping{
		Turns:    []Turn{},
		Speakers: []string{},
	}

	var curr *Turn
	seen := make(map[string]bool)

	for _, w := range words {
		if !seen[w.SpeakerID] {
			seen[w.SpeakerID] = true
			g.Speakers = append(g.Speakers, w.SpeakerID)
		}

		text := strings.TrimSpace(w.Text)
		if text == "" {
			if w.End > g.Duration {
				g.Duration = w.End
			}
			continue
		}

		switch {
		case curr == nil:
			curr = &Turn{SpeakerID: w.SpeakerID, Start: w.Start, End: w.End, Text: text}
		case w.SpeakerID == curr.SpeakerID:
			curr.End = w.End
			curr.Text += " " + text
		default:
			g.Turns = append(g.Turns, *curr)
			curr = &Turn{SpeakerID: w.SpeakerID, Start: w.Start, End: w.End, Text: text}
		}

		if w.End > g.Duration {
			g.Duration = w.End
		}
	}

	if curr != nil {
		g.Turns = append(g.Turns, *curr)
	}
	return g
}
