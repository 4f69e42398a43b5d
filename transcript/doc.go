// Package transcript turns raw timestamped word events from a diarizing
// speech-to-text service into speaker turns and a rendered, timestamped
// transcript block.
//
// The pipeline is Normalize -> Group -> Render:
//
//	words := transcript.Normalize(raw)
//	grouping := transcript.Group(words)
//	labels := transcript.SpeakerLabels(grouping.Speakers)
//	block := transcript.Render(grouping.Turns, labels)
package transcript
