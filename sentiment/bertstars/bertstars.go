// Package bertstars implements sentiment.Provider using a multilingual
// BERT star-rating HTTP sidecar. The sidecar returns labels like
// "4 stars" with a confidence score; the provider maps them to coarse
// POSITIVE/NEGATIVE/NEUTRAL labels.
package bertstars

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/skillsenselab/callsight/provider"
	"github.com/skillsenselab/callsight/sentiment"
)

const (
	// ProviderName is the registered name for the BERT stars provider.
	ProviderName = "bertstars"

	defaultURL     = "http://localhost:8388"
	defaultModel   = "nlptown/bert-base-multilingual-uncased-sentiment"
	defaultTimeout = 30 * time.Second
)

// Config holds configuration for the BERT stars sentiment provider.
type Config struct {
	URL     string        `json:"url" yaml:"url" mapstructure:"url"`
	Model   string        `json:"model" yaml:"model" mapstructure:"model"`
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// Provider implements sentiment.Provider using the star-rating sidecar.
type Provider struct {
	cfg    Config
	client *http.Client
}

// NewProvider creates a new BERT stars sentiment provider.
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

// Factory returns a provider.Factory that creates BERT stars Provider
// instances from a generic config map.
func Factory() provider.Factory[sentiment.Provider] {
	return func(cfg map[string]any) (sentiment.Provider, error) {
		bc := Config{}
		if v, ok := cfg["url"].(string); ok {
			bc.URL = v
		}
		if v, ok := cfg["model"].(string); ok {
			bc.Model = v
		}
		if v, ok := cfg["timeout"].(time.Duration); ok {
			bc.Timeout = v
		}
		return NewProvider(bc), nil
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// Model returns the model identifier the sidecar is asked to run.
func (p *Provider) Model() string { return p.cfg.Model }

// IsAvailable checks if the sentiment sidecar is reachable.
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

// Analyze classifies the sentiment of a transcription. Empty text is
// classified NEUTRAL with zero confidence without calling the sidecar.
func (p *Provider) Analyze(ctx context.Context, req sentiment.Request) (*sentiment.Result, error) {
	if req.Text == "" {
		return &sentiment.Result{Sentiment: sentiment.Neutral, Score: 0.0}, nil
	}

	body, err := json.Marshal(starsRequest{Text: req.Text, Model: p.cfg.Model})
	if err != nil {
		return nil, fmt.Errorf("marshal sentiment request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.URL+"/classify", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sentiment request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("sentiment error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result starsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode sentiment response: %w", err)
	}

	return &sentiment.Result{
		Sentiment: sentiment.MapStarLabel(result.Label),
		Score:     result.Score,
	}, nil
}

// --- internal sidecar API types ---

type starsRequest struct {
	Text  string `json:"text"`
	Model string `json:"model,omitempty"`
}

type starsResponse struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}
