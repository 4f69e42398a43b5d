package api

import (
	"fmt"
	"math"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skillsenselab/callsight/calls"
	apperrors "github.com/skillsenselab/callsight/errors"
	"github.com/skillsenselab/callsight/sentiment"
	"github.com/skillsenselab/callsight/server"
	"github.com/skillsenselab/callsight/util"
)

// sentimentResponse is the single-file local pipeline response.
type sentimentResponse struct {
	Success      bool          `json:"success"`
	Data         sentimentData `json:"data"`
	ProcessingID string        `json:"processing_id"`
}

// sentimentData is the per-file payload of the local pipeline.
type sentimentData struct {
	Filename        string                 `json:"filename"`
	Transcription   string                 `json:"transcription"`
	Sentiment       sentiment.Label        `json:"sentiment"`
	ConfidenceScore float64                `json:"confidence_score"`
	Satisfaction    sentiment.Satisfaction `json:"satisfaction"`
}

// batchEntry is one result of the local batch endpoint. Failed entries
// carry filename and error only.
type batchEntry struct {
	Filename        string                 `json:"filename"`
	Transcription   string                 `json:"transcription,omitempty"`
	Sentiment       sentiment.Label        `json:"sentiment,omitempty"`
	ConfidenceScore *float64               `json:"confidence_score,omitempty"`
	Satisfaction    sentiment.Satisfaction `json:"satisfaction,omitempty"`
	Error           string                 `json:"error,omitempty"`
	Success         bool                   `json:"success"`
}

// batchResponse is the local batch endpoint response.
type batchResponse struct {
	Success        bool             `json:"success"`
	BatchID        string           `json:"batch_id"`
	Statistics     calls.Statistics `json:"statistics"`
	Results        []batchEntry     `json:"results"`
	ProcessedFiles int              `json:"processed_files"`
	TotalUploaded  int              `json:"total_uploaded"`
}

// Sentiment runs the local pipeline over a single uploaded file.
func (h *Handler) Sentiment(c *gin.Context) {
	ctx := c.Request.Context()

	fh, err := c.FormFile("audio")
	if err != nil {
		server.RespondWithError(c, apperrors.MissingField("audio"))
		return
	}
	name := clientFilename(fh)
	if !calls.SupportedExtension(fh.Filename) {
		ext := strings.ToLower(filepath.Ext(fh.Filename))
		server.RespondWithError(c, apperrors.UnsupportedFormat(ext, calls.SupportedExtensions))
		return
	}

	id := uuid.NewString()
	path, cleanup, err := saveUpload(c, fh, id)
	if err != nil {
		server.RespondWithError(c, apperrors.Internal(err))
		return
	}
	defer cleanup()

	record, err := h.deps.Local.AnalyzeCall(ctx, path)
	if err != nil {
		h.log.WithError(err).Error("local analysis failed", map[string]any{"file": name})
		server.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, sentimentResponse{
		Success: true,
		Data: sentimentData{
			Filename:        name,
			Transcription:   record.Transcription,
			Sentiment:       record.Sentiment,
			ConfidenceScore: roundScore(record.Score),
			Satisfaction:    record.Satisfaction,
		},
		ProcessingID: id,
	})
}

// SentimentBatch runs the local pipeline over many uploaded files and
// returns per-file results plus sentiment and satisfaction
// distributions over the successful ones.
func (h *Handler) SentimentBatch(c *gin.Context) {
	ctx := c.Request.Context()

	form, err := c.MultipartForm()
	if err != nil {
		server.RespondWithError(c, apperrors.InvalidInput("audio", "expected multipart form data").WithCause(err))
		return
	}
	uploads := form.File["audio"]
	if len(uploads) == 0 {
		server.RespondWithError(c, apperrors.MissingField("audio"))
		return
	}

	batchID := uuid.NewString()
	log := h.log.WithContext(ctx).WithFields(map[string]any{"batch_id": batchID})
	log.Info("batch sentiment request received", map[string]any{"files": len(uploads)})

	entries := make([]batchEntry, 0, len(uploads))
	records := make([]calls.CallRecord, 0, len(uploads))
	for i, fh := range uploads {
		name := clientFilename(fh)
		if !calls.SupportedExtension(fh.Filename) {
			ext := strings.ToLower(filepath.Ext(fh.Filename))
			entries = append(entries, batchEntry{
				Filename: name,
				Error:    apperrors.UnsupportedFormat(ext, calls.SupportedExtensions).Message,
			})
			continue
		}

		path, cleanup, err := saveUpload(c, fh, batchEntryID(batchID, i))
		if err != nil {
			log.WithError(err).Error("upload save failed", map[string]any{"file": name})
			entries = append(entries, batchEntry{Filename: name, Error: apperrors.Internal(err).Message})
			continue
		}

		record, err := h.deps.Local.AnalyzeCall(ctx, path)
		cleanup()
		if err != nil {
			log.WithError(err).Error("local analysis failed", map[string]any{"file": name})
			entries = append(entries, batchEntry{Filename: name, Error: err.Error()})
			continue
		}

		entries = append(entries, batchEntry{
			Filename:        name,
			Transcription:   record.Transcription,
			Sentiment:       record.Sentiment,
			ConfidenceScore: util.Ptr(roundScore(record.Score)),
			Satisfaction:    record.Satisfaction,
			Success:         true,
		})
		records = append(records, *record)
	}

	c.JSON(http.StatusOK, batchResponse{
		Success:        true,
		BatchID:        batchID,
		Statistics:     calls.ComputeStatistics(records),
		Results:        entries,
		ProcessedFiles: len(records),
		TotalUploaded:  len(uploads),
	})
}

func batchEntryID(batchID string, i int) string {
	return fmt.Sprintf("%s_%d", batchID, i)
}

// roundScore rounds a confidence score to three decimal places for the
// response payload.
func roundScore(s float64) float64 {
	return math.Round(s*1000) / 1000
}
