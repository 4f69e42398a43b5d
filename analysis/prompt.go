package analysis

import (
	"strings"
)

// SystemPrompt is the framing instruction sent as the system message for
// every analysis request.
const SystemPrompt = "You are an expert conversation analyst for customer support calls. " +
	"Return responses STRICTLY as a single JSON object following the provided schema. " +
	"Do not include any additional commentary or markdown."

// PromptInput holds the rendered transcript material the user prompt is
// built from.
type PromptInput struct {
	// Filename is the original upload filename.
	Filename string
	// Duration is the call duration rendered as HH:MM:SS.mmm.
	Duration string
	// Transcript is the rendered, speaker-labeled transcript block.
	Transcript string
}

// BuildUserPrompt assembles the user prompt: call metadata, the rendered
// transcript, the analysis goals, and the schema template the model must
// match.
func BuildUserPrompt(in PromptInput, schema SchemaVersion) string {
	var b strings.Builder
	b.WriteString("Analyze the following diarized transcript from a call.\n\n")
	b.WriteString("Filename: " + in.Filename + "\n")
	b.WriteString("Duration: " + in.Duration + "\n\n")
	b.WriteString("Transcript (with timestamps and speakers):\n")
	b.WriteString(in.Transcript + "\n\n")
	b.WriteString("Perform the analysis with the following goals:\n")
	for _, goal := range schema.Goals {
		b.WriteString("- " + goal + "\n")
	}
	b.WriteString("\nOutput must STRICTLY match the JSON schema below. Do not include any text outside the JSON object.\n\n")
	b.WriteString(strings.TrimSpace(schema.Template))
	return b.String()
}
