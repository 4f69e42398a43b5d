// Package openai implements llm.Provider using the OpenAI Responses API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/skillsenselab/callsight/llm"
	"github.com/skillsenselab/callsight/provider"
)

const (
	// ProviderName is the registered name for the OpenAI provider.
	ProviderName = "openai"

	defaultBaseURL = "https://api.openai.com"
	defaultModel   = "gpt-5"
	defaultTimeout = 120 * time.Second

	responsesPath = "/v1/responses"
)

// ErrMissingAPIKey is returned when a completion is attempted without a
// configured API key. It wraps llm.ErrNotConfigured so callers can map
// it to a configuration error rather than an upstream failure.
var ErrMissingAPIKey = fmt.Errorf("%w: openai api key", llm.ErrNotConfigured)

// ErrEmptyResponse is returned when the API responds successfully but
// contains no output text.
var ErrEmptyResponse = errors.New("openai: empty response")

// Config holds configuration for the OpenAI generation provider.
type Config struct {
	APIKey  string        `json:"api_key" yaml:"api_key" mapstructure:"api_key"`
	BaseURL string        `json:"base_url" yaml:"base_url" mapstructure:"base_url"`
	Model   string        `json:"model" yaml:"model" mapstructure:"model"`
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// Provider implements llm.Provider using the OpenAI Responses API.
type Provider struct {
	cfg    Config
	client *http.Client
}

// NewProvider creates a new OpenAI generation provider.
func NewProvider(cfg Config) *Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
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

// Factory returns a provider.Factory that creates OpenAI Provider
// instances from a generic config map.
func Factory() provider.Factory[llm.Provider] {
	return func(cfg map[string]any) (llm.Provider, error) {
		oc := Config{}
		if v, ok := cfg["api_key"].(string); ok {
			oc.APIKey = v
		}
		if v, ok := cfg["base_url"].(string); ok {
			oc.BaseURL = v
		}
		if v, ok := cfg["model"].(string); ok {
			oc.Model = v
		}
		if v, ok := cfg["timeout"].(time.Duration); ok {
			oc.Timeout = v
		}
		return NewProvider(oc), nil
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether the provider has a credential configured.
func (p *Provider) IsAvailable(_ context.Context) bool {
	return p.cfg.APIKey != ""
}

// Complete sends a completion request to the Responses API and returns
// the concatenated output text.
func (p *Provider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if p.cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	apiReq := p.buildRequest(req)
	body, err := json.Marshal(apiReq)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.BaseURL+responsesPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("responses request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("responses error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result responsesResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode responses response: %w", err)
	}

	text := result.outputText()
	if text == "" {
		return nil, ErrEmptyResponse
	}

	return &llm.CompletionResponse{
		Content: text,
		Model:   result.Model,
		Usage: llm.Usage{
			PromptTokens:     result.Usage.InputTokens,
			CompletionTokens: result.Usage.OutputTokens,
			TotalTokens:      result.Usage.TotalTokens,
		},
	}, nil
}

// --- internal OpenAI Responses API types ---

type responsesRequest struct {
	Model     string             `json:"model"`
	Input     []responsesMessage `json:"input"`
	Reasoning *reasoningOpts     `json:"reasoning,omitempty"`
	Text      *textOpts          `json:"text,omitempty"`
	MaxTokens int                `json:"max_output_tokens,omitempty"`
}

type responsesMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type reasoningOpts struct {
	Effort string `json:"effort"`
}

type textOpts struct {
	Verbosity string `json:"verbosity"`
}

type responsesResponse struct {
	Model  string           `json:"model"`
	Output []responseOutput `json:"output"`
	Usage  responsesUsage   `json:"usage"`
}

type responseOutput struct {
	Type    string            `json:"type"`
	Content []responseContent `json:"content"`
}

type responseContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type responsesUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

func (p *Provider) buildRequest(req llm.CompletionRequest) responsesRequest {
	model := req.Model
	if model == "" {
		model = p.cfg.Model
	}

	input := make([]responsesMessage, 0, len(req.Messages)+1)
	if req.SystemPrompt != "" {
		input = append(input, responsesMessage{Role: "system", Content: req.SystemPrompt})
	}
	for _, m := range req.Messages {
		input = append(input, responsesMessage{Role: m.Role, Content: m.Content})
	}

	apiReq := responsesRequest{
		Model:     model,
		Input:     input,
		MaxTokens: req.MaxTokens,
	}
	if req.ReasoningEffort != "" {
		apiReq.Reasoning = &reasoningOpts{Effort: req.ReasoningEffort}
	}
	if req.Verbosity != "" {
		apiReq.Text = &textOpts{Verbosity: req.Verbosity}
	}
	return apiReq
}

// outputText joins the text parts of every output message, matching the
// SDK's output_text convenience accessor.
func (r *responsesResponse) outputText() string {
	var parts []string
	for _, item := range r.Output {
		for _, c := range item.Content {
			if c.Text != "" {
				parts = append(parts, c.Text)
			}
		}
	}
	return strings.Join(parts, "\n")
}
