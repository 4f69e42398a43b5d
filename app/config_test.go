package app

import (
	"testing"
	"time"

	"github.com/skillsenselab/callsight/analysis"
)

func TestConfigApplyDefaults(t *testing.T) {
	t.Setenv("ELEVENLABS_API_KEY", "el-key")
	t.Setenv("OPENAI_API_KEY", "oa-key")

	cfg := &Config{}
	cfg.ApplyDefaults()

	if cfg.Name != ServiceName {
		t.Errorf("Name = %q, want %q", cfg.Name, ServiceName)
	}
	if cfg.ElevenLabs.APIKey != "el-key" {
		t.Errorf("ElevenLabs.APIKey = %q, want env fallback", cfg.ElevenLabs.APIKey)
	}
	if cfg.OpenAI.APIKey != "oa-key" {
		t.Errorf("OpenAI.APIKey = %q, want env fallback", cfg.OpenAI.APIKey)
	}
	if cfg.Analysis.Schema != analysis.SchemaCore.Name {
		t.Errorf("Analysis.Schema = %q, want %q", cfg.Analysis.Schema, analysis.SchemaCore.Name)
	}
}

func TestConfigExplicitKeyWinsOverEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-key")

	cfg := &Config{}
	cfg.OpenAI.APIKey = "file-key"
	cfg.ApplyDefaults()

	if cfg.OpenAI.APIKey != "file-key" {
		t.Errorf("OpenAI.APIKey = %q, want file-key", cfg.OpenAI.APIKey)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults pass", func(c *Config) {}, false},
		{"extended schema", func(c *Config) { c.Analysis.Schema = "extended-v1" }, false},
		{"unknown schema", func(c *Config) { c.Analysis.Schema = "v99" }, true},
		{"bad reasoning effort", func(c *Config) { c.Analysis.ReasoningEffort = "max" }, true},
		{"bad verbosity", func(c *Config) { c.Analysis.Verbosity = "loud" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.ApplyDefaults()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAnalyzerOptions(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()
	cfg.Analysis.Schema = "extended-v1"
	cfg.Analysis.Model = "gpt-5-mini"
	cfg.Analysis.RetryAttempts = 3
	cfg.Analysis.RetryBackoff = 2 * time.Second

	opts := cfg.AnalyzerOptions()
	if opts.Schema.Name != "extended-v1" {
		t.Errorf("Schema.Name = %q, want extended-v1", opts.Schema.Name)
	}
	if opts.Model != "gpt-5-mini" {
		t.Errorf("Model = %q, want gpt-5-mini", opts.Model)
	}
	if opts.Retry.MaxAttempts != 3 {
		t.Errorf("Retry.MaxAttempts = %d, want 3", opts.Retry.MaxAttempts)
	}
	if opts.Retry.InitialBackoff != 2*time.Second {
		t.Errorf("Retry.InitialBackoff = %v, want 2s", opts.Retry.InitialBackoff)
	}
}
