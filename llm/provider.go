// Package llm defines the generation provider interface and common types
// for the large-language-model backends used by the analysis orchestrator.
package llm

import (
	"context"
	"errors"

	"github.com/skillsenselab/callsight/provider"
)

// ErrNotConfigured is wrapped by backends when a completion is attempted
// without required configuration (e.g. a missing credential).
var ErrNotConfigured = errors.New("llm: provider not configured")

// Provider is the interface that generation backends must implement.
type Provider interface {
	provider.Provider // embeds Name() and IsAvailable()

	// Complete sends a completion request and returns the full response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}

// NewRegistry creates a provider registry for generation backends.
func NewRegistry() *provider.Registry[Provider] {
	return provider.NewRegistry[Provider]()
}
