package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/callsight/calls"
)

// ModelInfo describes one model backing a pipeline stage.
type ModelInfo struct {
	Model       string `json:"model"`
	Type        string `json:"type"`
	Language    string `json:"language"`
	Description string `json:"description"`
}

// modelsResponse is the /models/info payload.
type modelsResponse struct {
	SpeechRecognition ModelInfo           `json:"speech_recognition"`
	SentimentAnalysis ModelInfo           `json:"sentiment_analysis"`
	SupportedFormats  []string            `json:"supported_formats"`
	Classifications   map[string][]string `json:"classifications"`
}

// modeler is implemented by providers that expose their model identifier.
type modeler interface {
	Model() string
}

// ModelsInfo reports the models behind the local pipeline, the accepted
// upload formats, and the classification vocabularies.
func (h *Handler) ModelsInfo(c *gin.Context) {
	resp := modelsResponse{
		SpeechRecognition: ModelInfo{
			Type:        "Wav2Vec 2.0",
			Language:    "English",
			Description: "Large Wav2Vec 2.0 model for English speech recognition",
		},
		SentimentAnalysis: ModelInfo{
			Type:        "BERT",
			Language:    "Multilingual",
			Description: "Multilingual BERT for sentiment analysis (1-5 stars)",
		},
		SupportedFormats: calls.SupportedExtensions,
		Classifications: map[string][]string{
			"sentiments":   {"POSITIVE", "NEGATIVE", "NEUTRAL"},
			"satisfaction": {"Satisfied", "Dissatisfied", "Neutral"},
		},
	}
	if m, ok := h.deps.LocalSTT.(modeler); ok {
		resp.SpeechRecognition.Model = m.Model()
	}
	if m, ok := h.deps.Sentiment.(modeler); ok {
		resp.SentimentAnalysis.Model = m.Model()
	}

	c.JSON(http.StatusOK, resp)
}
