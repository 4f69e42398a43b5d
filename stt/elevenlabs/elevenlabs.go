// Package elevenlabs implements stt.Provider using the ElevenLabs
// Speech-to-Text Convert API with word-level timestamps and speaker
// diarization enabled.
package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/skillsenselab/callsight/provider"
	"github.com/skillsenselab/callsight/stt"
	"github.com/skillsenselab/callsight/transcript"
)

const (
	// ProviderName is the registered name for the ElevenLabs provider.
	ProviderName = "elevenlabs"

	defaultBaseURL = "https://api.elevenlabs.io"
	defaultModelID = "scribe_v1"
	defaultTimeout = 120 * time.Second

	sttPath = "/v1/speech-to-text"
)

// ErrMissingAPIKey is returned when a transcription is attempted without
// a configured API key. It wraps stt.ErrNotConfigured so callers can map
// it to a configuration error rather than an upstream failure.
var ErrMissingAPIKey = fmt.Errorf("%w: elevenlabs api key", stt.ErrNotConfigured)

// Config holds configuration for the ElevenLabs transcription provider.
type Config struct {
	APIKey  string        `json:"api_key" yaml:"api_key" mapstructure:"api_key"`
	BaseURL string        `json:"base_url" yaml:"base_url" mapstructure:"base_url"`
	ModelID string        `json:"model_id" yaml:"model_id" mapstructure:"model_id"`
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// Provider implements stt.Provider using the ElevenLabs REST API.
type Provider struct {
	cfg    Config
	client *http.Client
}

// NewProvider creates a new ElevenLabs transcription provider.
func NewProvider(cfg Config) *Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.ModelID == "" {
		cfg.ModelID = defaultModelID
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Provider{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Factory returns a provider.Factory that creates ElevenLabs Provider
// instances from a generic config map.
func Factory() provider.Factory[stt.Provider] {
	return func(cfg map[string]any) (stt.Provider, error) {
		ec := Config{}
		if v, ok := cfg["api_key"].(string); ok {
			ec.APIKey = v
		}
		if v, ok := cfg["base_url"].(string); ok {
			ec.BaseURL = v
		}
		if v, ok := cfg["model_id"].(string); ok {
			ec.ModelID = v
		}
		if v, ok := cfg["timeout"].(time.Duration); ok {
			ec.Timeout = v
		}
		return NewProvider(ec), nil
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether the provider has a credential configured.
// The ElevenLabs API has no unauthenticated health endpoint, so presence
// of the key is the readiness signal.
func (p *Provider) IsAvailable(_ context.Context) bool {
	return p.cfg.APIKey != ""
}

// Transcribe sends an audio file to the ElevenLabs speech-to-text API and
// returns the transcription with word-level timestamps and diarization.
// Speaker count and language are left to auto-detection unless set on the
// request.
func (p *Provider) Transcribe(ctx context.Context, req stt.Request) (*stt.Response, error) {
	if p.cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	audioData, err := os.ReadFile(req.AudioPath)
	if err != nil {
		return nil, fmt.Errorf("read audio file: %w", err)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	filename := req.Filename
	if filename == "" {
		filename = "audio_file"
	}
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(audioData); err != nil {
		return nil, fmt.Errorf("write audio data: %w", err)
	}

	_ = writer.WriteField("model_id", p.cfg.ModelID)
	_ = writer.WriteField("diarize", "true")
	_ = writer.WriteField("timestamps_granularity", "word")
	_ = writer.WriteField("tag_audio_events", "true")
	if req.NumSpeakers > 0 {
		_ = writer.WriteField("num_speakers", strconv.Itoa(req.NumSpeakers))
	}
	if req.Language != "" {
		_ = writer.WriteField("language_code", req.Language)
	}
	writer.Close()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.BaseURL+sttPath, &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	httpReq.Header.Set("xi-api-key", p.cfg.APIKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("speech-to-text request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("speech-to-text error (status %d): %s", resp.StatusCode, string(body))
	}

	var result scribeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode speech-to-text response: %w", err)
	}

	return &stt.Response{
		Text:     result.Text,
		Words:    result.Words,
		Language: result.LanguageCode,
	}, nil
}

// --- internal ElevenLabs API response types ---

type scribeResponse struct {
	Text         string            `json:"text"`
	Words        []transcript.Word `json:"words"`
	LanguageCode string            `json:"language_code"`
}
