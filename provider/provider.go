// Package provider defines the pluggable-backend pattern used for the
// speech-to-text, text-sentiment, and generative-analysis services: a
// small base interface plus a generic registry of named factories.
package provider

import "context"

// Provider is the base interface all service backends must implement.
type Provider interface {
	// Name returns the backend's unique name.
	Name() string
	// IsAvailable reports whether the backend is ready to handle requests.
	IsAvailable(ctx context.Context) bool
}

// Factory creates a provider instance from a generic config map.
type Factory[T Provider] func(cfg map[string]any) (T, error)
