package sentiment

import (
	"context"

	"github.com/skillsenselab/callsight/provider"
)

// Provider is the interface that text-sentiment backends must implement.
type Provider interface {
	provider.Provider // embeds Name() and IsAvailable()

	// Analyze classifies the sentiment of a transcription.
	Analyze(ctx context.Context, req Request) (*Result, error)
}

// NewRegistry creates a provider registry for text-sentiment backends.
func NewRegistry() *provider.Registry[Provider] {
	return provider.NewRegistry[Provider]()
}
