// Package calls implements the local call-analysis pipeline: transcribe
// a recording, classify the transcription's sentiment, and derive a
// customer-satisfaction verdict from the sentiment score.
package calls

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/skillsenselab/callsight/logger"
	"github.com/skillsenselab/callsight/observability"
	"github.com/skillsenselab/callsight/resilience"
	"github.com/skillsenselab/callsight/sentiment"
	"github.com/skillsenselab/callsight/stt"
	"github.com/skillsenselab/callsight/util"
)

// maxConcurrentCalls caps in-flight pipeline runs. The sidecars load one
// model instance each, so unbounded concurrent uploads would queue inside
// them and time out instead of being rejected up front.
const maxConcurrentCalls = 4

// SupportedExtensions are the audio file extensions accepted for
// analysis, lowercase with the leading dot.
var SupportedExtensions = []string{".wav", ".mp3", ".m4a", ".flac"}

// SupportedExtension reports whether the filename has an accepted audio
// extension. The comparison is case-insensitive.
func SupportedExtension(filename string) bool {
	return util.Contains(SupportedExtensions, strings.ToLower(filepath.Ext(filename)))
}

// CallRecord is the result of analyzing one recording.
type CallRecord struct {
	File          string                 `json:"file"`
	Transcription string                 `json:"transcription"`
	Sentiment     sentiment.Label        `json:"sentiment"`
	Score         float64                `json:"score"`
	Satisfaction  sentiment.Satisfaction `json:"satisfaction"`
}

// LocalAnalyzer chains a transcription backend and a sentiment backend
// into the complete local pipeline.
type LocalAnalyzer struct {
	stt       stt.Provider
	sentiment sentiment.Provider
	log       *logger.Logger
	bulkhead  *resilience.Bulkhead
}

// NewLocalAnalyzer creates a LocalAnalyzer over the given backends.
func NewLocalAnalyzer(sttProvider stt.Provider, sentimentProvider sentiment.Provider, log *logger.Logger) *LocalAnalyzer {
	if log == nil {
		log = logger.NewDefault("calls")
	}
	return &LocalAnalyzer{
		stt:       sttProvider,
		sentiment: sentimentProvider,
		log:       log.WithComponent("local-analyzer"),
		bulkhead: resilience.NewBulkhead(resilience.BulkheadConfig{
			Name:          "local-pipeline",
			MaxConcurrent: maxConcurrentCalls,
			MaxWait:       10 * time.Second,
		}),
	}
}

// AnalyzeCall runs the full local pipeline for one audio file. Runs
// beyond the concurrency cap wait up to the bulkhead's limit for a slot.
func (a *LocalAnalyzer) AnalyzeCall(ctx context.Context, audioPath string) (*CallRecord, error) {
	return resilience.ExecuteWithResult(a.bulkhead, ctx, func() (*CallRecord, error) {
		return a.analyze(ctx, audioPath)
	})
}

func (a *LocalAnalyzer) analyze(ctx context.Context, audioPath string) (*CallRecord, error) {
	ctx, span := observability.StartSpan(ctx, "calls.analyze")
	defer span.End()

	file := filepath.Base(audioPath)
	log := a.log.WithContext(ctx).WithFields(map[string]any{"file": file})
	observability.SetSpanAttribute(ctx, "file.name", file)

	log.Info("transcribing audio")
	sttResp, err := a.stt.Transcribe(ctx, stt.Request{AudioPath: audioPath, Filename: file})
	if err != nil {
		observability.SetSpanError(ctx, err)
		return nil, err
	}

	log.Info("classifying sentiment")
	sentResp, err := a.sentiment.Analyze(ctx, sentiment.Request{Text: sttResp.Text})
	if err != nil {
		observability.SetSpanError(ctx, err)
		return nil, err
	}

	record := &CallRecord{
		File:          file,
		Transcription: sttResp.Text,
		Sentiment:     sentResp.Sentiment,
		Score:         sentResp.Score,
		Satisfaction:  sentiment.ClassifySatisfaction(sentResp.Sentiment, sentResp.Score),
	}
	log.Info("call analyzed", map[string]any{
		"sentiment":    string(record.Sentiment),
		"satisfaction": string(record.Satisfaction),
	})
	return record, nil
}

// AnalyzeDir analyzes every supported audio file in a directory in
// lexical order. A failure on one file never aborts the run; the failed
// file is logged and skipped.
func (a *LocalAnalyzer) AnalyzeDir(ctx context.Context, dir string) ([]CallRecord, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !SupportedExtension(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	records := make([]CallRecord, 0, len(names))
	for _, name := range names {
		record, err := a.AnalyzeCall(ctx, filepath.Join(dir, name))
		if err != nil {
			a.log.WithError(err).Error("skipping file", map[string]any{"file": name})
			continue
		}
		records = append(records, *record)
	}
	return records, nil
}
