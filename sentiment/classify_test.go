package sentiment

import "testing"

func TestClassifySatisfaction(t *testing.T) {
	tests := []struct {
		name  string
		label Label
		score float64
		want  Satisfaction
	}{
		{"positive high confidence", Positive, 0.89, Satisfied},
		{"negative high confidence", Negative, 0.92, Dissatisfied},
		{"neutral high confidence", Neutral, 0.99, NeutralSat},
		{"positive low confidence", Positive, 0.5, NeutralSat},
		{"negative low confidence", Negative, 0.3, NeutralSat},
		{"positive at boundary", Positive, 0.70, NeutralSat},
		{"negative at boundary", Negative, 0.70, NeutralSat},
		{"positive just above boundary", Positive, 0.71, Satisfied},
		{"negative just above boundary", Negative, 0.71, Dissatisfied},
		{"zero score", Positive, 0, NeutralSat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifySatisfaction(tt.label, tt.score); got != tt.want {
				t.Errorf("ClassifySatisfaction(%s, %v) = %s, want %s", tt.label, tt.score, got, tt.want)
			}
		})
	}
}

func TestMapStarLabel(t *testing.T) {
	tests := []struct {
		raw  string
		want Label
	}{
		{"1 star", Negative},
		{"2 stars", Negative},
		{"3 stars", Neutral},
		{"4 stars", Positive},
		{"5 stars", Positive},
		{"POSITIVE", Positive},
		{"something else", Label("something else")},
	}
	for _, tt := range tests {
		if got := MapStarLabel(tt.raw); got != tt.want {
			t.Errorf("MapStarLabel(%q) = %s, want %s", tt.raw, got, tt.want)
		}
	}
}
