package sentiment

// satisfactionThreshold is the minimum confidence for a non-neutral
// satisfaction verdict. The comparison is strict: a score of exactly 0.7
// classifies as Neutral.
const satisfactionThreshold = 0.7

// ClassifySatisfaction maps a sentiment label and confidence score to a
// customer-satisfaction category. It is a pure, total function.
func ClassifySatisfaction(label Label, score float64) Satisfaction {
	switch {
	case label == Positive && score > satisfactionThreshold:
		return Satisfied
	case label == Negative && score > satisfactionThreshold:
		return Dissatisfied
	default:
		return NeutralSat
	}
}

// starLabels maps the sentiment model's star-rating output to coarse
// labels. Unknown labels pass through unchanged via MapStarLabel.
var starLabels = map[string]Label{
	"1 star":  Negative,
	"2 stars": Negative,
	"3 stars": Neutral,
	"4 stars": Positive,
	"5 stars": Positive,
}

// MapStarLabel converts a star-rating label (e.g. "4 stars") to a coarse
// sentiment label. Labels that are not star ratings are returned as-is.
func MapStarLabel(raw string) Label {
	if l, ok := starLabels[raw]; ok {
		return l
	}
	return Label(raw)
}
