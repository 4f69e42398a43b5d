// Package app assembles the callsight service: the typed configuration
// and the construction of the providers and pipelines behind the HTTP
// API and the CLI.
package app

import (
	"fmt"
	"os"
	"time"

	"github.com/skillsenselab/callsight/analysis"
	"github.com/skillsenselab/callsight/config"
	"github.com/skillsenselab/callsight/llm/openai"
	"github.com/skillsenselab/callsight/resilience"
	"github.com/skillsenselab/callsight/sentiment/bertstars"
	"github.com/skillsenselab/callsight/server"
	"github.com/skillsenselab/callsight/stt/elevenlabs"
	"github.com/skillsenselab/callsight/stt/wav2vec"
	"github.com/skillsenselab/callsight/validation"
)

// ServiceName is the configured service identity.
const ServiceName = "callsight"

// Config is the full service configuration, loaded from config.yml,
// .env, and environment variables.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server     server.Config     `yaml:"server" mapstructure:"server"`
	ElevenLabs elevenlabs.Config `yaml:"elevenlabs" mapstructure:"elevenlabs"`
	OpenAI     openai.Config     `yaml:"openai" mapstructure:"openai"`
	Wav2Vec    wav2vec.Config    `yaml:"wav2vec" mapstructure:"wav2vec"`
	Sentiment  bertstars.Config  `yaml:"sentiment" mapstructure:"sentiment"`
	Analysis   AnalysisConfig    `yaml:"analysis" mapstructure:"analysis"`
	Tracing    TracingConfig     `yaml:"tracing" mapstructure:"tracing"`
}

// AnalysisConfig tunes the cloud analysis orchestrator.
type AnalysisConfig struct {
	// Schema selects the output schema version by name.
	Schema string `yaml:"schema" mapstructure:"schema" json:"schema" validate:"omitempty,oneof=core-v1 extended-v1"`
	// Model overrides the generation backend's default model.
	Model string `yaml:"model" mapstructure:"model" json:"model"`
	// ReasoningEffort is the generation reasoning hint.
	ReasoningEffort string `yaml:"reasoning_effort" mapstructure:"reasoning_effort" json:"reasoning_effort" validate:"omitempty,oneof=low medium high"`
	// Verbosity is the generation verbosity hint.
	Verbosity string `yaml:"verbosity" mapstructure:"verbosity" json:"verbosity" validate:"omitempty,oneof=low medium high"`
	// RetryAttempts is the total attempt count for transient upstream
	// failures; values <= 1 disable retries.
	RetryAttempts int `yaml:"retry_attempts" mapstructure:"retry_attempts" json:"retry_attempts"`
	// RetryBackoff is the initial backoff between retries.
	RetryBackoff time.Duration `yaml:"retry_backoff" mapstructure:"retry_backoff" json:"retry_backoff"`
}

// TracingConfig enables OpenTelemetry export.
type TracingConfig struct {
	Enabled    bool    `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string  `yaml:"endpoint" mapstructure:"endpoint"`
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
}

// ApplyDefaults fills unset fields. Cloud credentials fall back to the
// conventional environment variables.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = ServiceName
	}
	if c.Version == "" {
		c.Version = "1.0.0"
	}
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()

	if c.ElevenLabs.APIKey == "" {
		c.ElevenLabs.APIKey = os.Getenv("ELEVENLABS_API_KEY")
	}
	if c.OpenAI.APIKey == "" {
		c.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	if c.Analysis.Schema == "" {
		c.Analysis.Schema = analysis.SchemaCore.Name
	}
	if c.Tracing.Endpoint == "" {
		c.Tracing.Endpoint = "localhost:4318"
	}
	if c.Tracing.SampleRate == 0 {
		c.Tracing.SampleRate = 1.0
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := validation.Validate(c.Analysis); err != nil {
		return fmt.Errorf("config.analysis: %w", err)
	}
	if _, ok := analysis.Schemas[c.Analysis.Schema]; !ok {
		return fmt.Errorf("config.analysis.schema: unknown schema %q", c.Analysis.Schema)
	}
	return nil
}

// AnalyzerOptions converts the analysis section into orchestrator options.
func (c *Config) AnalyzerOptions() analysis.Options {
	return analysis.Options{
		Schema:          analysis.Schemas[c.Analysis.Schema],
		Model:           c.Analysis.Model,
		ReasoningEffort: c.Analysis.ReasoningEffort,
		Verbosity:       c.Analysis.Verbosity,
		Retry: resilience.RetryConfig{
			MaxAttempts:    c.Analysis.RetryAttempts,
			InitialBackoff: c.Analysis.RetryBackoff,
		},
	}
}
