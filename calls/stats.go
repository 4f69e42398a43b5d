package calls

import "math"

// Distribution is one bucket of a categorical breakdown.
type Distribution struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Statistics summarizes a batch of analyzed calls.
type Statistics struct {
	TotalFiles               int                     `json:"total_files"`
	SentimentDistribution    map[string]Distribution `json:"sentiment_distribution,omitempty"`
	SatisfactionDistribution map[string]Distribution `json:"satisfaction_distribution,omitempty"`
	Message                  string                  `json:"message,omitempty"`
}

// ComputeStatistics builds sentiment and satisfaction breakdowns over a
// batch of results. Percentages are rounded to one decimal place.
func ComputeStatistics(records []CallRecord) Statistics {
	total := len(records)
	if total == 0 {
		return Statistics{TotalFiles: 0, Message: "No files processed successfully"}
	}

	sentiments := make(map[string]int)
	satisfactions := make(map[string]int)
	for _, r := range records {
		sentiments[string(r.Sentiment)]++
		satisfactions[string(r.Satisfaction)]++
	}

	return Statistics{
		TotalFiles:               total,
		SentimentDistribution:    distribution(sentiments, total),
		SatisfactionDistribution: distribution(satisfactions, total),
	}
}

func distribution(counts map[string]int, total int) map[string]Distribution {
	out := make(map[string]Distribution, len(counts))
	for k, c := range counts {
		out[k] = Distribution{
			Count:      c,
			Percentage: math.Round(float64(c)/float64(total)*1000) / 10,
		}
	}
	return out
}
