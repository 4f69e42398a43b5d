// Package analysis orchestrates the cloud call-analysis pipeline:
// diarized transcription, prompt assembly against a versioned output
// schema, schema-constrained generation, and tolerant JSON recovery.
package analysis

import (
	"context"
	goerrors "errors"
	"time"

	apperrors "github.com/skillsenselab/callsight/errors"
	"github.com/skillsenselab/callsight/llm"
	"github.com/skillsenselab/callsight/logger"
	"github.com/skillsenselab/callsight/observability"
	"github.com/skillsenselab/callsight/resilience"
	"github.com/skillsenselab/callsight/stt"
	"github.com/skillsenselab/callsight/transcript"
)

// Status tracks a file's progress through the analysis pipeline.
type Status string

const (
	StatusPending       Status = "PENDING"
	StatusTranscribing  Status = "TRANSCRIBING"
	StatusPrompting     Status = "PROMPTING"
	StatusAwaitingModel Status = "AWAITING_MODEL"
	StatusParsing       Status = "PARSING"
	StatusDone          Status = "DONE"
	// StatusDegraded means the model replied but its output could not be
	// parsed as JSON; the raw text is preserved in the analysis.
	StatusDegraded Status = "DEGRADED"
	StatusFailed   Status = "FAILED"
)

// FileInput identifies one uploaded audio file to analyze.
type FileInput struct {
	// Path is the local path of the saved upload.
	Path string
	// Filename is the original upload filename.
	Filename string
	// ContentType is the upload's MIME type, if known.
	ContentType string
	// Size is the upload size in bytes.
	Size int64
}

// FileAnalysis is the per-file result of the analysis pipeline. Failed
// files carry an error message instead of a transcription and analysis.
type FileAnalysis struct {
	ID            string `json:"id"`
	Filename      string `json:"filename"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Status        Status `json:"status"`
	AudioLength   string `json:"audio_length,omitempty"`
	FileSize      int64  `json:"file_size,omitempty"`
	Transcription string `json:"transcription,omitempty"`
	Analysis      Result `json:"analysis,omitempty"`
	Error         string `json:"error,omitempty"`
}

// BatchResult aggregates the per-file results of one analysis request.
type BatchResult struct {
	Results        []FileAnalysis `json:"results"`
	TotalProcessed int            `json:"total_processed"`
}

// Options configures an Analyzer.
type Options struct {
	// Schema is the output schema version; defaults to SchemaCore.
	Schema SchemaVersion
	// Model overrides the generation backend's default model.
	Model string
	// ReasoningEffort is the generation reasoning hint (default "low").
	ReasoningEffort string
	// Verbosity is the generation verbosity hint (default "low").
	Verbosity string
	// Retry controls retries of transient upstream failures. Zero value
	// means no retries.
	Retry resilience.RetryConfig
}

// Analyzer runs the transcription-then-generation pipeline for call
// recordings.
type Analyzer struct {
	stt  stt.Provider
	llm  llm.Provider
	opts Options
	log  *logger.Logger

	sttBreaker *resilience.CircuitBreaker
	llmBreaker *resilience.CircuitBreaker
}

// NewAnalyzer creates an Analyzer over the given transcription and
// generation backends. Each backend sits behind its own circuit breaker
// so a failing upstream fails fast instead of burning the retry budget
// on every file in a batch.
func NewAnalyzer(sttProvider stt.Provider, llmProvider llm.Provider, opts Options, log *logger.Logger) *Analyzer {
	if opts.Schema.Name == "" {
		opts.Schema = SchemaCore
	}
	if opts.ReasoningEffort == "" {
		opts.ReasoningEffort = "low"
	}
	if opts.Verbosity == "" {
		opts.Verbosity = "low"
	}
	if log == nil {
		log = logger.NewDefault("analysis")
	}
	return &Analyzer{
		stt:        sttProvider,
		llm:        llmProvider,
		opts:       opts,
		log:        log.WithComponent("analyzer"),
		sttBreaker: resilience.NewCircuitBreaker(resilience.DefaultCircuitBreakerConfig(sttProvider.Name())),
		llmBreaker: resilience.NewCircuitBreaker(resilience.DefaultCircuitBreakerConfig(llmProvider.Name())),
	}
}

// AnalyzeFile runs the full pipeline for one file. On failure the
// returned FileAnalysis records the terminal status and the error is
// also returned, already classified as an application error.
func (a *Analyzer) AnalyzeFile(ctx context.Context, id string, in FileInput) (*FileAnalysis, error) {
	ctx, span := observability.StartSpan(ctx, "analysis.file")
	defer span.End()
	observability.SetSpanAttribute(ctx, "file.name", in.Filename)

	now := time.Now()
	fa := &FileAnalysis{
		ID:       id,
		Filename: in.Filename,
		Date:     now.Format("2006-01-02"),
		Time:     now.Format("15:04:05"),
		Status:   StatusPending,
		FileSize: in.Size,
	}
	log := a.log.WithContext(ctx).WithFields(map[string]any{"file": in.Filename, "id": id})

	fa.Status = StatusTranscribing
	log.Info("transcribing audio")
	sttResp, err := a.transcribe(ctx, in)
	if err != nil {
		return a.fail(fa, log, err, a.stt.Name())
	}

	fa.Status = StatusPrompting
	fa.Transcription = sttResp.Text
	grouping := transcript.Group(transcript.Normalize(sttResp.Words))
	labels := transcript.SpeakerLabels(grouping.Speakers)
	fa.AudioLength = transcript.FormatTimestamp(grouping.Duration)

	prompt := BuildUserPrompt(PromptInput{
		Filename:   in.Filename,
		Duration:   fa.AudioLength,
		Transcript: transcript.Render(grouping.Turns, labels),
	}, a.opts.Schema)

	fa.Status = StatusAwaitingModel
	log.Info("requesting analysis", map[string]any{"schema": a.opts.Schema.Name})
	completion, err := a.complete(ctx, prompt)
	if err != nil {
		return a.fail(fa, log, err, a.llm.Name())
	}

	fa.Status = StatusParsing
	result, parsed := RecoverJSON(completion.Content)
	fa.Analysis = result.Sanitize(a.opts.Schema)
	if parsed {
		fa.Status = StatusDone
		log.Info("analysis complete")
	} else {
		fa.Status = StatusDegraded
		log.Warn("model output was not valid JSON, returning raw response")
	}
	return fa, nil
}

// AnalyzeBatch runs the pipeline for each file in order. A failure on
// one file never aborts the batch; the failed entry carries the error.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, ids []string, files []FileInput) *BatchResult {
	batch := &BatchResult{Results: make([]FileAnalysis, 0, len(files))}
	for i, in := range files {
		id := ""
		if i < len(ids) {
			id = ids[i]
		}
		fa, err := a.AnalyzeFile(ctx, id, in)
		if err != nil {
			a.log.WithError(err).Error("file analysis failed", map[string]any{"file": in.Filename})
		}
		batch.Results = append(batch.Results, *fa)
	}
	batch.TotalProcessed = len(batch.Results)
	return batch
}

func (a *Analyzer) transcribe(ctx context.Context, in FileInput) (*stt.Response, error) {
	ctx, span := observability.StartSpan(ctx, "analysis.transcribe")
	defer span.End()
	var resp *stt.Response
	err := a.sttBreaker.Execute(func() error {
		var callErr error
		resp, callErr = withRetry(ctx, a.opts.Retry, func() (*stt.Response, error) {
			return a.stt.Transcribe(ctx, stt.Request{
				AudioPath:   in.Path,
				Filename:    in.Filename,
				ContentType: in.ContentType,
			})
		})
		return callErr
	})
	if err != nil {
		observability.SetSpanError(ctx, err)
	}
	return resp, err
}

func (a *Analyzer) complete(ctx context.Context, prompt string) (*llm.CompletionResponse, error) {
	ctx, span := observability.StartSpan(ctx, "analysis.complete")
	defer span.End()
	var resp *llm.CompletionResponse
	err := a.llmBreaker.Execute(func() error {
		var callErr error
		resp, callErr = withRetry(ctx, a.opts.Retry, func() (*llm.CompletionResponse, error) {
			return a.llm.Complete(ctx, llm.CompletionRequest{
				Model:           a.opts.Model,
				SystemPrompt:    SystemPrompt,
				Messages:        []llm.Message{{Role: "user", Content: prompt}},
				ReasoningEffort: a.opts.ReasoningEffort,
				Verbosity:       a.opts.Verbosity,
			})
		})
		return callErr
	})
	if err != nil {
		observability.SetSpanError(ctx, err)
	}
	return resp, err
}

// withRetry runs an upstream call under the configured retry policy.
// Missing configuration is never retried.
func withRetry[T any](ctx context.Context, cfg resilience.RetryConfig, fn func() (T, error)) (T, error) {
	if cfg.MaxAttempts <= 1 {
		return fn()
	}
	if cfg.RetryIf == nil {
		cfg.RetryIf = func(err error) bool {
			if goerrors.Is(err, stt.ErrNotConfigured) || goerrors.Is(err, llm.ErrNotConfigured) {
				return false
			}
			return resilience.DefaultRetryIf(err)
		}
	}
	return resilience.Retry(ctx, cfg, fn)
}

// fail records the terminal FAILED state and classifies the error.
func (a *Analyzer) fail(fa *FileAnalysis, log *logger.Logger, err error, service string) (*FileAnalysis, error) {
	appErr := classifyError(err, service)
	fa.Status = StatusFailed
	fa.Error = appErr.Message
	log.WithError(err).Error("pipeline stage failed", map[string]any{"status": string(fa.Status)})
	return fa, appErr
}

// classifyError maps backend errors onto the application error taxonomy.
// Missing configuration is distinguished from upstream failures so
// clients can tell a deployment problem from a transient one.
func classifyError(err error, service string) *apperrors.AppError {
	if appErr, ok := apperrors.AsAppError(err); ok {
		return appErr
	}
	if goerrors.Is(err, stt.ErrNotConfigured) || goerrors.Is(err, llm.ErrNotConfigured) {
		return apperrors.MissingCredential(service, credentialEnvVar(service)).WithCause(err)
	}
	if goerrors.Is(err, resilience.ErrCircuitOpen) {
		return apperrors.ServiceUnavailable(service).WithCause(err)
	}
	if goerrors.Is(err, context.DeadlineExceeded) {
		return apperrors.Timeout(service).WithCause(err)
	}
	return apperrors.ExternalServiceError(service, err)
}

func credentialEnvVar(service string) string {
	switch service {
	case "elevenlabs":
		return "ELEVENLABS_API_KEY"
	case "openai":
		return "OPENAI_API_KEY"
	default:
		return "API_KEY"
	}
}
