package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	apperrors "github.com/skillsenselab/callsight/errors"
	"github.com/skillsenselab/callsight/llm"
	"github.com/skillsenselab/callsight/resilience"
	"github.com/skillsenselab/callsight/stt"
	"github.com/skillsenselab/callsight/transcript"
)

func TestRecoverJSON(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		parsed bool
		want   map[string]any
	}{
		{
			name:   "clean object",
			input:  `{"summary": "ok"}`,
			parsed: true,
			want:   map[string]any{"summary": "ok"},
		},
		{
			name:   "object wrapped in prose",
			input:  "Sure! Here is the result: {\"a\": 1} hope that helps",
			parsed: true,
			want:   map[string]any{"a": float64(1)},
		},
		{
			name:   "markdown fence",
			input:  "```json\n{\"a\": 1}\n```",
			parsed: true,
			want:   map[string]any{"a": float64(1)},
		},
		{
			name:   "nested braces survive substring recovery",
			input:  "prefix {\"outer\": {\"inner\": true}} suffix",
			parsed: true,
			want:   map[string]any{"outer": map[string]any{"inner": true}},
		},
		{
			name:   "no json at all",
			input:  "I could not analyze this call.",
			parsed: false,
		},
		{
			name:   "unbalanced braces",
			input:  "{\"a\": 1",
			parsed: false,
		},
		{
			name:   "json array is not an object",
			input:  `[1, 2, 3]`,
			parsed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, parsed := RecoverJSON(tt.input)
			if parsed != tt.parsed {
				t.Fatalf("parsed = %v, want %v", parsed, tt.parsed)
			}
			if !tt.parsed {
				if got[RawResponseKey] != tt.input {
					t.Errorf("raw_response = %q, want original text", got[RawResponseKey])
				}
				return
			}
			for k, want := range tt.want {
				gotV, ok := got[k]
				if !ok {
					t.Fatalf("missing key %q in %v", k, got)
				}
				switch want := want.(type) {
				case map[string]any:
					if _, ok := gotV.(map[string]any); !ok {
						t.Errorf("key %q = %T, want object", k, gotV)
					}
				default:
					if gotV != want {
						t.Errorf("key %q = %v, want %v", k, gotV, want)
					}
				}
			}
		})
	}
}

func TestSanitizeStripsDeprecatedKeys(t *testing.T) {
	r := Result{
		"summary":           "fine",
		"per_turn":          []any{"a"},
		"compliance_flags":  []any{},
		"escalation_risk":   "high",
		"escalation_reason": "angry customer",
	}
	r = r.Sanitize(SchemaCore)

	for _, k := range SchemaCore.DeprecatedKeys {
		if _, ok := r[k]; ok {
			t.Errorf("deprecated key %q not stripped", k)
		}
	}
	if r["summary"] != "fine" {
		t.Errorf("summary changed: %v", r["summary"])
	}
	if r[SentimentAnalysisKey] != DefaultSentimentAnalysis {
		t.Errorf("missing sentiment_analysis default, got %v", r[SentimentAnalysisKey])
	}
}

func TestSanitizeKeepsExistingNarrative(t *testing.T) {
	r := Result{SentimentAnalysisKey: "customer was frustrated early on"}
	r = r.Sanitize(SchemaCore)
	if r[SentimentAnalysisKey] != "customer was frustrated early on" {
		t.Errorf("narrative overwritten: %v", r[SentimentAnalysisKey])
	}
}

func TestSanitizeTreatsEmptyNarrativeAsOmitted(t *testing.T) {
	for name, value := range map[string]any{"empty string": "", "null": nil} {
		r := Result{SentimentAnalysisKey: value}
		r = r.Sanitize(SchemaCore)
		if r[SentimentAnalysisKey] != DefaultSentimentAnalysis {
			t.Errorf("%s narrative not defaulted, got %v", name, r[SentimentAnalysisKey])
		}
	}
}

func TestSanitizeLeavesDegradedResultAlone(t *testing.T) {
	r := Result{RawResponseKey: "not json"}
	r = r.Sanitize(SchemaCore)
	if len(r) != 1 || r[RawResponseKey] != "not json" {
		t.Errorf("degraded result modified: %v", r)
	}
	if !r.Degraded() {
		t.Error("Degraded() = false, want true")
	}
}

func TestBuildUserPrompt(t *testing.T) {
	prompt := BuildUserPrompt(PromptInput{
		Filename:   "call.wav",
		Duration:   "00:01:30.000",
		Transcript: "[00:00:00.000 - 00:00:01.000] Speaker 1: hello",
	}, SchemaCore)

	for _, want := range []string{
		"Filename: call.wav",
		"Duration: 00:01:30.000",
		"Speaker 1: hello",
		"Return ONLY a JSON object",
		"agent_improvement_opportunities",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if strings.HasSuffix(prompt, "\n") {
		t.Error("prompt should end with the trimmed schema template")
	}
}

func TestSchemaVersions(t *testing.T) {
	if _, ok := Schemas[SchemaCore.Name]; !ok {
		t.Error("core schema not registered")
	}
	if _, ok := Schemas[SchemaExtended.Name]; !ok {
		t.Error("extended schema not registered")
	}
	if !strings.Contains(SchemaExtended.Template, "win_back_strategy") {
		t.Error("extended template missing win_back_strategy")
	}
	if strings.Contains(SchemaCore.Template, "win_back_strategy") {
		t.Error("core template should not include win_back_strategy")
	}
}

// --- fakes ---

type fakeSTT struct {
	resp  *stt.Response
	err   error
	calls int
}

func (f *fakeSTT) Name() string                       { return "fake-stt" }
func (f *fakeSTT) IsAvailable(_ context.Context) bool { return f.err == nil }

func (f *fakeSTT) Transcribe(_ context.Context, _ stt.Request) (*stt.Response, error) {
	f.calls++
	return f.resp, f.err
}

type fakeLLM struct {
	content    string
	err        error
	lastPrompt string
}

func (f *fakeLLM) Name() string                       { return "fake-llm" }
func (f *fakeLLM) IsAvailable(_ context.Context) bool { return f.err == nil }

func (f *fakeLLM) Complete(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if len(req.Messages) > 0 {
		f.lastPrompt = req.Messages[len(req.Messages)-1].Content
	}
	if f.err != nil {
		return nil, f.err
	}
	return &llm.CompletionResponse{Content: f.content}, nil
}

func testWords() []transcript.Word {
	return []transcript.Word{
		{SpeakerID: "spk_a", Start: 0, End: 0.5, Text: "hello", Type: "word"},
		{SpeakerID: "spk_b", Start: 0.6, End: 1.2, Text: "hi", Type: "word"},
	}
}

func TestAnalyzeFileDone(t *testing.T) {
	sttP := &fakeSTT{resp: &stt.Response{Text: "hello hi", Words: testWords()}}
	llmP := &fakeLLM{content: `{"summary": "short call", "per_turn": []}`}
	a := NewAnalyzer(sttP, llmP, Options{}, nil)

	fa, err := a.AnalyzeFile(context.Background(), "id-1", FileInput{
		Path: "/tmp/x.wav", Filename: "x.wav", Size: 123,
	})
	if err != nil {
		t.Fatalf("AnalyzeFile: %v", err)
	}
	if fa.Status != StatusDone {
		t.Errorf("status = %s, want %s", fa.Status, StatusDone)
	}
	if fa.Transcription != "hello hi" {
		t.Errorf("transcription = %q", fa.Transcription)
	}
	if fa.AudioLength != "00:00:01.200" {
		t.Errorf("audio_length = %q", fa.AudioLength)
	}
	if fa.Analysis["summary"] != "short call" {
		t.Errorf("analysis = %v", fa.Analysis)
	}
	if _, ok := fa.Analysis["per_turn"]; ok {
		t.Error("per_turn not stripped from analysis")
	}
	if !strings.Contains(llmP.lastPrompt, "Speaker 1: hello") {
		t.Errorf("prompt missing rendered transcript: %q", llmP.lastPrompt)
	}
}

func TestAnalyzeFileDegraded(t *testing.T) {
	sttP := &fakeSTT{resp: &stt.Response{Text: "hello", Words: testWords()}}
	llmP := &fakeLLM{content: "I cannot produce JSON today."}
	a := NewAnalyzer(sttP, llmP, Options{}, nil)

	fa, err := a.AnalyzeFile(context.Background(), "id-2", FileInput{Path: "/tmp/x.wav", Filename: "x.wav"})
	if err != nil {
		t.Fatalf("AnalyzeFile: %v", err)
	}
	if fa.Status != StatusDegraded {
		t.Errorf("status = %s, want %s", fa.Status, StatusDegraded)
	}
	if fa.Analysis[RawResponseKey] != "I cannot produce JSON today." {
		t.Errorf("raw_response = %v", fa.Analysis[RawResponseKey])
	}
}

func TestAnalyzeFileMissingCredential(t *testing.T) {
	sttP := &fakeSTT{err: stt.ErrNotConfigured}
	a := NewAnalyzer(sttP, &fakeLLM{}, Options{}, nil)

	fa, err := a.AnalyzeFile(context.Background(), "id-3", FileInput{Path: "/tmp/x.wav", Filename: "x.wav"})
	if err == nil {
		t.Fatal("expected error")
	}
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.ErrCodeMissingCredential {
		t.Fatalf("error = %v, want MISSING_CREDENTIAL", err)
	}
	if fa.Status != StatusFailed {
		t.Errorf("status = %s, want %s", fa.Status, StatusFailed)
	}
}

func TestAnalyzeFileUpstreamFailure(t *testing.T) {
	sttP := &fakeSTT{resp: &stt.Response{Text: "hello", Words: testWords()}}
	llmP := &fakeLLM{err: errors.New("status 500")}
	a := NewAnalyzer(sttP, llmP, Options{}, nil)

	fa, err := a.AnalyzeFile(context.Background(), "id-4", FileInput{Path: "/tmp/x.wav", Filename: "x.wav"})
	if err == nil {
		t.Fatal("expected error")
	}
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.ErrCodeExternalService {
		t.Fatalf("error = %v, want EXTERNAL_SERVICE_ERROR", err)
	}
	if !appErr.Retryable {
		t.Error("upstream failure should be retryable")
	}
	if fa.Status != StatusFailed {
		t.Errorf("status = %s, want %s", fa.Status, StatusFailed)
	}
}

func TestAnalyzeFileBreakerOpensAfterRepeatedFailures(t *testing.T) {
	sttP := &fakeSTT{err: errors.New("status 502")}
	a := NewAnalyzer(sttP, &fakeLLM{}, Options{}, nil)

	in := FileInput{Path: "/tmp/x.wav", Filename: "x.wav"}
	for i := 0; i < 5; i++ {
		if _, err := a.AnalyzeFile(context.Background(), "id", in); err == nil {
			t.Fatal("expected error")
		}
	}
	made := sttP.calls

	_, err := a.AnalyzeFile(context.Background(), "id", in)
	if err == nil {
		t.Fatal("expected error")
	}
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.ErrCodeServiceUnavailable {
		t.Fatalf("error = %v, want SERVICE_UNAVAILABLE", err)
	}
	if sttP.calls != made {
		t.Errorf("provider called %d more times after breaker opened", sttP.calls-made)
	}
}

func TestAnalyzeBatchIsolatesFailures(t *testing.T) {
	calls := 0
	sttP := &sequencedSTT{
		responses: []func() (*stt.Response, error){
			func() (*stt.Response, error) { return &stt.Response{Text: "ok", Words: testWords()}, nil },
			func() (*stt.Response, error) { return nil, errors.New("boom") },
		},
		calls: &calls,
	}
	llmP := &fakeLLM{content: `{"summary": "s"}`}
	a := NewAnalyzer(sttP, llmP, Options{}, nil)

	batch := a.AnalyzeBatch(context.Background(), []string{"a", "b"}, []FileInput{
		{Path: "/tmp/1.wav", Filename: "1.wav"},
		{Path: "/tmp/2.wav", Filename: "2.wav"},
	})
	if batch.TotalProcessed != 2 {
		t.Fatalf("total_processed = %d, want 2", batch.TotalProcessed)
	}
	if batch.Results[0].Status != StatusDone {
		t.Errorf("first file status = %s, want DONE", batch.Results[0].Status)
	}
	if batch.Results[1].Status != StatusFailed {
		t.Errorf("second file status = %s, want FAILED", batch.Results[1].Status)
	}
	if batch.Results[1].Error == "" {
		t.Error("failed entry missing error message")
	}
}

func TestAnalyzeFileRetriesTransientFailure(t *testing.T) {
	calls := 0
	sttP := &sequencedSTT{
		responses: []func() (*stt.Response, error){
			func() (*stt.Response, error) { return nil, errors.New("status 503") },
			func() (*stt.Response, error) { return &stt.Response{Text: "ok", Words: testWords()}, nil },
		},
		calls: &calls,
	}
	llmP := &fakeLLM{content: `{"summary": "s"}`}
	a := NewAnalyzer(sttP, llmP, Options{
		Retry: resilience.RetryConfig{MaxAttempts: 2, InitialBackoff: time.Millisecond},
	}, nil)

	fa, err := a.AnalyzeFile(context.Background(), "id-5", FileInput{Path: "/tmp/x.wav", Filename: "x.wav"})
	if err != nil {
		t.Fatalf("AnalyzeFile: %v", err)
	}
	if fa.Status != StatusDone {
		t.Errorf("status = %s, want DONE", fa.Status)
	}
	if calls != 2 {
		t.Errorf("transcribe calls = %d, want 2", calls)
	}
}

func TestAnalyzeFileDoesNotRetryMissingCredential(t *testing.T) {
	calls := 0
	sttP := &sequencedSTT{
		responses: []func() (*stt.Response, error){
			func() (*stt.Response, error) { return nil, stt.ErrNotConfigured },
			func() (*stt.Response, error) { return &stt.Response{Text: "ok"}, nil },
		},
		calls: &calls,
	}
	a := NewAnalyzer(sttP, &fakeLLM{}, Options{
		Retry: resilience.RetryConfig{MaxAttempts: 3, InitialBackoff: time.Millisecond},
	}, nil)

	if _, err := a.AnalyzeFile(context.Background(), "id-6", FileInput{Path: "/tmp/x.wav", Filename: "x.wav"}); err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("transcribe calls = %d, want 1 (no retry on missing credential)", calls)
	}
}

type sequencedSTT struct {
	responses []func() (*stt.Response, error)
	calls     *int
}

func (s *sequencedSTT) Name() string                       { return "fake-stt" }
func (s *sequencedSTT) IsAvailable(_ context.Context) bool { return true }

func (s *sequencedSTT) Transcribe(_ context.Context, _ stt.Request) (*stt.Response, error) {
	i := *s.calls
	*s.calls++
	return s.responses[i]()
}
