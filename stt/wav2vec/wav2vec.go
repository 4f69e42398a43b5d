// Package wav2vec implements stt.Provider using a Wav2Vec 2.0 HTTP
// sidecar for the local analysis pipeline. The sidecar exposes /health
// and /transcribe and returns plain text with no diarization.
package wav2vec

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"time"

	"github.com/skillsenselab/callsight/provider"
	"github.com/skillsenselab/callsight/stt"
)

const (
	// ProviderName is the registered name for the Wav2Vec provider.
	ProviderName = "wav2vec"

	defaultURL     = "http://localhost:8387"
	defaultModel   = "facebook/wav2vec2-large-960h-lv60-self"
	defaultTimeout = 120 * time.Second
)

// Config holds configuration for the Wav2Vec transcription provider.
type Config struct {
	URL     string        `json:"url" yaml:"url" mapstructure:"url"`
	Model   string        `json:"model" yaml:"model" mapstructure:"model"`
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// Provider implements stt.Provider using a Wav2Vec 2.0 HTTP sidecar.
type Provider struct {
	cfg    Config
	client *http.Client
}

// NewProvider creates a new Wav2Vec transcription provider.
func NewProvider(cfg Config) *Provider {
	if cfg.URL == "" {
		cfg.URL = defaultURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
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

// Factory returns a provider.Factory that creates Wav2Vec Provider
// instances from a generic config map.
func Factory() provider.Factory[stt.Provider] {
	return func(cfg map[string]any) (stt.Provider, error) {
		wc := Config{}
		if v, ok := cfg["url"].(string); ok {
			wc.URL = v
		}
		if v, ok := cfg["model"].(string); ok {
			wc.Model = v
		}
		if v, ok := cfg["timeout"].(time.Duration); ok {
			wc.Timeout = v
		}
		return NewProvider(wc), nil
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// Model returns the model identifier the sidecar is asked to run.
func (p *Provider) Model() string { return p.cfg.Model }

// IsAvailable checks if the Wav2Vec sidecar is reachable.
func (p *Provider) IsAvailable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.URL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Transcribe sends an audio file to the Wav2Vec sidecar and returns the
// transcription text.
func (p *Provider) Transcribe(ctx context.Context, req stt.Request) (*stt.Response, error) {
	audioData, err := os.ReadFile(req.AudioPath)
	if err != nil {
		return nil, fmt.Errorf("read audio file: %w", err)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("audio", "audio.wav")
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(audioData); err != nil {
		return nil, fmt.Errorf("write audio data: %w", err)
	}

	_ = writer.WriteField("model", p.cfg.Model)
	if req.Language != "" {
		_ = writer.WriteField("language", req.Language)
	}
	writer.Close()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.URL+"/transcribe", &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("wav2vec request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("wav2vec error (status %d): %s", resp.StatusCode, string(body))
	}

	var result wav2vecResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode wav2vec response: %w", err)
	}

	return &stt.Response{
		Text:     result.Text,
		Language: result.Language,
	}, nil
}

// --- internal Wav2Vec sidecar response types ---

type wav2vecResponse struct {
	Text     string `json:"text"`
	Language string `json:"language,omitempty"`
}
