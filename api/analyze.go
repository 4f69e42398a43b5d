package api

import (
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skillsenselab/callsight/analysis"
	"github.com/skillsenselab/callsight/calls"
	apperrors "github.com/skillsenselab/callsight/errors"
	"github.com/skillsenselab/callsight/server"
)

// Analyze runs the cloud pipeline over one or many uploaded files and
// returns the per-file results. A failure on one file never discards
// the batch; the failed entry carries the error message.
func (h *Handler) Analyze(c *gin.Context) {
	ctx := c.Request.Context()

	// Both cloud credentials must be present before any file is touched.
	if !h.deps.Generator.IsAvailable(ctx) {
		server.RespondWithError(c, apperrors.MissingCredential("OpenAI", "OPENAI_API_KEY"))
		return
	}
	if !h.deps.CloudSTT.IsAvailable(ctx) {
		server.RespondWithError(c, apperrors.MissingCredential("ElevenLabs", "ELEVENLABS_API_KEY"))
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		server.RespondWithError(c, apperrors.InvalidInput("files", "expected multipart form data").WithCause(err))
		return
	}
	uploads := form.File["files"]
	if len(uploads) == 0 {
		server.RespondWithError(c, apperrors.MissingField("files"))
		return
	}

	h.log.WithContext(ctx).Info("analyze request received", map[string]any{"files": len(uploads)})

	batch := &analysis.BatchResult{Results: make([]analysis.FileAnalysis, 0, len(uploads))}
	for _, fh := range uploads {
		name := clientFilename(fh)
		if !calls.SupportedExtension(fh.Filename) {
			ext := strings.ToLower(filepath.Ext(fh.Filename))
			appErr := apperrors.UnsupportedFormat(ext, calls.SupportedExtensions)
			batch.Results = append(batch.Results, failedEntry(name, appErr.Message))
			continue
		}

		id := uuid.NewString()
		path, cleanup, err := saveUpload(c, fh, id)
		if err != nil {
			h.log.WithError(err).Error("upload save failed", map[string]any{"file": name})
			batch.Results = append(batch.Results, failedEntry(name, apperrors.Internal(err).Message))
			continue
		}

		fa, err := h.deps.Analyzer.AnalyzeFile(ctx, id, analysis.FileInput{
			Path:        path,
			Filename:    name,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
		})
		cleanup()
		if err != nil {
			h.log.WithError(err).Error("file analysis failed", map[string]any{"file": name})
		}
		batch.Results = append(batch.Results, *fa)
	}
	batch.TotalProcessed = len(batch.Results)

	c.JSON(http.StatusOK, batch)
}

// failedEntry builds the error-shaped per-file result for files that
// never reached the pipeline.
func failedEntry(filename, message string) analysis.FileAnalysis {
	now := time.Now()
	return analysis.FileAnalysis{
		Filename: filename,
		Date:     now.Format("2006-01-02"),
		Time:     now.Format("15:04:05"),
		Status:   analysis.StatusFailed,
		Error:    message,
	}
}
