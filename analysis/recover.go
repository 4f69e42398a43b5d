package analysis

import (
	"encoding/json"
	"strings"
)

// RawResponseKey holds the unparsed model output when JSON recovery
// fails entirely.
const RawResponseKey = "raw_response"

// RecoverJSON parses model output that should be a single JSON object
// but may be wrapped in prose or markdown. Recovery proceeds in order:
// a direct parse of the whole text, then a parse of the substring
// between the first '{' and the last '}', and finally a degraded result
// that wraps the raw text. The boolean reports whether a real object
// was recovered.
func RecoverJSON(text string) (Result, bool) {
	trimmed := strings.TrimSpace(text)

	var obj map[string]any
	if err := json.Unmarshal([]byte(trimmed), &obj); err == nil && obj != nil {
		return Result(obj), true
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start >= 0 && end > start {
		candidate := trimmed[start : end+1]
		obj = nil
		if err := json.Unmarshal([]byte(candidate), &obj); err == nil && obj != nil {
			return Result(obj), true
		}
	}

	return Result{RawResponseKey: text}, false
}
