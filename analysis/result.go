package analysis

// Result is a parsed analysis object. It stays schemaless because the
// model's output keys depend on the schema version in the prompt and
// downstream consumers read it as JSON.
type Result map[string]any

// Degraded reports whether the result is a raw-text fallback produced
// when JSON recovery failed.
func (r Result) Degraded() bool {
	_, ok := r[RawResponseKey]
	return ok
}

// Sanitize removes the schema version's deprecated keys and fills in
// the default narrative when the model omitted it. Degraded results are
// returned unchanged.
func (r Result) Sanitize(schema SchemaVersion) Result {
	if r == nil || r.Degraded() {
		return r
	}
	for _, key := range schema.DeprecatedKeys {
		delete(r, key)
	}
	// An empty or null narrative counts as omitted, not just a missing
	// key. Schema-constrained models sometimes emit "" for the field.
	if v, ok := r[SentimentAnalysisKey]; !ok || v == "" || v == nil {
		r[SentimentAnalysisKey] = DefaultSentimentAnalysis
	}
	return r
}
