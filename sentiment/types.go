package sentiment

// Label is a coarse sentiment classification of a transcription.
type Label string

// Sentiment labels produced by the text-sentiment model.
const (
	Positive Label = "POSITIVE"
	Negative Label = "NEGATIVE"
	Neutral  Label = "NEUTRAL"
)

// Satisfaction is a coarse customer-satisfaction category derived from
// sentiment and confidence.
type Satisfaction string

// Satisfaction categories.
const (
	Satisfied    Satisfaction = "Satisfied"
	Dissatisfied Satisfaction = "Dissatisfied"
	NeutralSat   Satisfaction = "Neutral"
)

// Result is the output of a text-sentiment call.
type Result struct {
	// Sentiment is the coarse sentiment label.
	Sentiment Label `json:"sentiment"`
	// Score is the model confidence in [0, 1].
	Score float64 `json:"score"`
}

// Request holds parameters for a text-sentiment call.
type Request struct {
	// Text is the transcription to classify.
	Text string `json:"text"`
}
